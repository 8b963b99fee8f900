package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/assembler"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Regenerate the CI pipeline configuration",
		Long: `Render every release through the changed or unchanged templates, splice
the fragments into the master template, validate the result and write it to
the configured output path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := ctx.newChecker(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				res, err := checker.Generate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(out, res.Config)
				return nil
			}

			res, err := checker.Regenerate(cmd.Context())
			if err != nil {
				return err
			}
			printReleaseSummary(out, res.Releases)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the configuration instead of writing it")

	return cmd
}

func printReleaseSummary(out io.Writer, entries []assembler.ReleaseEntry) {
	rows := make([][]string, 0, len(entries))
	changed := 0
	for _, e := range entries {
		template := "unchanged"
		if e.Changed {
			template = "changed"
			changed++
		}
		rows = append(rows, []string{e.Label, e.Path.String(), template, strings.Join(e.Reasons, ", ")})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Release", "Path", "Template", "Reasons"}, rows, nil))
	fmt.Fprintf(out, "%d of %d releases changed\n", changed, len(entries))
}
