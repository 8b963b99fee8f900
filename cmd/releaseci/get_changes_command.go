package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/assembler"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/git"
)

func newGetChangesCommand(ctx *commandContext) *cobra.Command {
	var releases bool
	var patch bool
	var prefixes []string

	cmd := &cobra.Command{
		Use:   "get_changes",
		Short: "List files changed between the baseline and target revisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.Context())
			if err != nil {
				return err
			}
			repo, err := ctx.openRepo(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			filters := prefixFilters(prefixes)

			if patch {
				text, err := repo.Diff(cmd.Context(), cfg.Baseline, cfg.Target, filters...)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text.Text)
				return nil
			}

			changes, err := ctx.queryChanges(cmd.Context(), cfg, repo, filters...)
			if err != nil {
				return err
			}

			if !releases {
				for _, p := range changes.Paths() {
					fmt.Fprintln(out, p)
				}
				return nil
			}

			paths, err := assembler.Discover(ctx.filesystem(), cfg.ReleasesDir)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(paths))
			for _, p := range paths {
				reasons := assembler.Relevance(changes, cfg.ReleasesDir, p)
				rows = append(rows, []string{p.Label(), yesNo(len(reasons) > 0), strings.Join(reasons, ", ")})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Release", "Changed", "Reasons"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&releases, "releases", false, "Show which releases the changes select")
	cmd.Flags().BoolVar(&patch, "patch", false, "Print the unified diff instead of file names")
	cmd.Flags().StringSliceVar(&prefixes, "path", nil, "Only report changes under these path prefixes (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("releases", "patch")
	cmd.MarkFlagsMutuallyExclusive("releases", "path")

	return cmd
}

// prefixFilters selects changes under any of the given prefixes. No prefixes
// means no filtering.
func prefixFilters(prefixes []string) []git.ChangeFilter {
	var filters []git.ChangeFilter
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			filters = append(filters, git.PathPrefixFilter(p))
		}
	}
	if len(filters) == 0 {
		return nil
	}
	return []git.ChangeFilter{git.OrFilter(filters...)}
}
