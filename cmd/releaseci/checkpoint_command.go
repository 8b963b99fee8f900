package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/scope"
)

func newCheckpointCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoint",
		Short: "Halt the current job when the active release is unchanged",
		Long: `Compare the baseline and target revisions and decide whether the job for
the active release should run.

Changes outside the releases directory run every release job. Otherwise the
job runs only when its own release directory changed; when it did not, the CI
agent is asked to halt the job and the command still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.Context())
			if err != nil {
				return err
			}
			repo, err := ctx.openRepo(cmd.Context())
			if err != nil {
				return err
			}

			halter := scope.NewCommandHalter(ctx.executor(), cfg.HaltCommand)
			evaluator := scope.New(cfg.ScopeConfig(), changeSource(repo), halter, scope.WithLogger(ctx.logger()))

			res, err := evaluator.Evaluate(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Decision {
			case scope.GlobalScope:
				fmt.Fprintf(out, "%s: shared files changed, running %s\n", res.Decision, res.Reference)
			default:
				fmt.Fprintf(out, "%s: %s\n", res.Decision, res.Dir)
			}
			return nil
		},
	}
}
