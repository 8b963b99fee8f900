package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "releaseci",
		Short: "Release-scoped CI helper",
		Long: `releaseci maps release references to release directories, skips CI jobs
for releases untouched by the current change, and regenerates the CI
pipeline configuration from per-release templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.stderr = cmd.ErrOrStderr()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.repo, "repo", "C", ".", "Repository root")
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file relative to the repository root (default .releaseci.cue when present)")
	rootCmd.PersistentFlags().StringVar(&flags.baseline, "baseline", "", "Baseline revision (overrides config and RELEASECI_BASELINE)")
	rootCmd.PersistentFlags().StringVar(&flags.target, "target", "", "Target revision (overrides config and RELEASECI_TARGET)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newActivatePathCommand(ctx))
	rootCmd.AddCommand(newCheckpointCommand(ctx))
	rootCmd.AddCommand(newGetChangesCommand(ctx))
	rootCmd.AddCommand(newUpdateCommand(ctx))
	rootCmd.AddCommand(newCheckConfigurationCommand(ctx))

	return rootCmd
}
