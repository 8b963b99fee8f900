package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

func newActivatePathCommand(ctx *commandContext) *cobra.Command {
	var ref string
	var label bool
	var short bool

	cmd := &cobra.Command{
		Use:   "activate_path",
		Short: "Print the activation script path of the active release",
		Long: `Print <releasesDir>/<name>/<number>/<flavor>/activate for the active release.

The active release is taken from --ref, else CIRCLE_TAG, else CIRCLE_JOB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.Context())
			if err != nil {
				return err
			}

			reference := strings.TrimSpace(ref)
			if reference == "" {
				reference, err = cfg.ScopeConfig().ActiveReference()
				if err != nil {
					return err
				}
			}

			parsed, err := release.Parse(reference)
			if err != nil {
				return err
			}
			path := parsed.Path()
			if v := parsed.SemVer(); v != nil {
				ctx.logger().Debug("ignoring version suffix", "reference", reference, "version", v.String())
			}

			out := cmd.OutOrStdout()
			switch {
			case label:
				fmt.Fprintln(out, path.Label())
			case short:
				fmt.Fprintln(out, release.Encode(path))
			default:
				fmt.Fprintln(out, path.ActivateUnder(cfg.ReleasesDir))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Release reference to resolve instead of the environment")
	cmd.Flags().BoolVar(&label, "label", false, "Print the dotted-dashed release label instead of the path")
	cmd.Flags().BoolVar(&short, "short", false, "Print the canonical compact reference instead of the path")
	cmd.MarkFlagsMutuallyExclusive("label", "short")

	return cmd
}
