package git

import (
	"context"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// PatchText represents unified diff text between two revisions.
type PatchText struct {
	// Text contains the unified diff in string format.
	Text string

	// FileCount indicates the number of files that have changes.
	FileCount int
}

// ChangeFilter is a predicate function for filtering changes in diffs.
// It returns true if the change should be included.
type ChangeFilter func(*object.Change) bool

// ChangedPaths lists every path added, modified or deleted between revisions
// a and b, equivalent to `git diff --name-only a b`. For a rename both the old
// and new names are reported. The result is deduplicated and sorted.
//
// A change must pass ALL filters to be included.
func (r *Repo) ChangedPaths(ctx context.Context, a, b string, filters ...ChangeFilter) ([]string, error) {
	changes, err := r.changes(ctx, a, b, filters)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(changes)*2)
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for name := range seen {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths, nil
}

// Diff computes the unified diff between two revisions.
func (r *Repo) Diff(ctx context.Context, a, b string, filters ...ChangeFilter) (*PatchText, error) {
	changes, err := r.changes(ctx, a, b, filters)
	if err != nil {
		return nil, err
	}

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to generate patch")
	}

	return &PatchText{
		Text:      patch.String(),
		FileCount: len(changes),
	}, nil
}

func (r *Repo) changes(ctx context.Context, a, b string, filters []ChangeFilter) (object.Changes, error) {
	if err := validateDiffInputs(a, b); err != nil {
		return nil, err
	}

	treeA, err := r.getTreeForRevision(a)
	if err != nil {
		return nil, WrapErrorf(err, "failed to get tree for revision %q", a)
	}

	treeB, err := r.getTreeForRevision(b)
	if err != nil {
		return nil, WrapErrorf(err, "failed to get tree for revision %q", b)
	}

	changes, err := treeA.DiffContext(ctx, treeB)
	if err != nil {
		return nil, WrapError(err, "failed to compute changes")
	}

	return applyChangeFilters(changes, filters), nil
}

// validateDiffInputs validates the revision inputs for diff
func validateDiffInputs(a, b string) error {
	if a == "" {
		return WrapError(ErrInvalidRef, "revision 'a' cannot be empty")
	}
	if b == "" {
		return WrapError(ErrInvalidRef, "revision 'b' cannot be empty")
	}
	return nil
}

// resolve resolves rev, falling back to the remote-tracking branch of the same
// name. CI checkouts commonly have origin/master but no local master.
func (r *Repo) resolve(rev string) (*plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return hash, nil
	}

	remoteRef := plumbing.NewRemoteReferenceName(r.options.RemoteName, rev)
	if hash, remoteErr := r.repo.ResolveRevision(plumbing.Revision(remoteRef.String())); remoteErr == nil {
		return hash, nil
	}

	return nil, WrapErrorf(ErrResolveFailed, "%s", rev)
}

// getTreeForRevision resolves a revision and returns its tree
func (r *Repo) getTreeForRevision(rev string) (*object.Tree, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, WrapError(err, "failed to get commit object")
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, WrapError(err, "failed to get tree")
	}

	return tree, nil
}

// applyChangeFilters applies all filters to changes and returns filtered results
func applyChangeFilters(changes object.Changes, filters []ChangeFilter) object.Changes {
	if len(filters) == 0 {
		return changes
	}
	var filtered object.Changes
	for _, change := range changes {
		if shouldIncludeChange(change, filters) {
			filtered = append(filtered, change)
		}
	}
	return filtered
}

// shouldIncludeChange checks if a change passes all filters
func shouldIncludeChange(change *object.Change, filters []ChangeFilter) bool {
	for _, filter := range filters {
		if filter != nil && !filter(change) {
			return false
		}
	}
	return true
}
