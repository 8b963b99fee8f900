package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/drift"
)

func newCheckConfigurationCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check_configuration",
		Short: "Fail when the committed pipeline configuration is out of date",
		Long: `Regenerate and validate the pipeline configuration, write it over the
committed copy and fail when git reports the output directory as modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := ctx.newChecker(cmd.Context())
			if err != nil {
				return err
			}

			res, err := checker.Check(cmd.Context())
			out := cmd.OutOrStdout()
			if res != nil && res.Decision == drift.Drifted {
				for _, f := range res.Changed {
					fmt.Fprintf(out, "modified: %s\n", f)
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Generated configuration is up to date.")
			return nil
		},
	}
}
