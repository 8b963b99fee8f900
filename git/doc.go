// Package git provides a high-level, idiomatic Go wrapper for the read-side
// git queries a release pipeline needs.
//
// The package is a thin facade over go-git that operates exclusively through
// the project's native filesystem abstraction. All operations work with both
// on-disk and in-memory repositories.
//
// # Basic Usage
//
//	fs := billyfs.NewOSFS("/path/to/repo")
//
//	repo, err := git.Open(context.Background(), &git.Options{
//	    FS:      fs,
//	    Workdir: ".",
//	})
//
// # Changed Paths
//
// List every path touched between two revisions, the equivalent of
// `git diff --name-only master HEAD`:
//
//	paths, err := repo.ChangedPaths(ctx, "master", "HEAD")
//
// Revisions that do not resolve locally are retried against the
// remote-tracking branch of the configured remote (origin by default), which
// covers shallow CI checkouts that only carry origin/master.
//
// Restrict the result with filters:
//
//	paths, err := repo.ChangedPaths(ctx, "master", "HEAD",
//	    git.PathPrefixFilter("releases/"))
//
// # Worktree Drift
//
// List tracked files under a directory whose worktree content differs from
// the index, the equivalent of `git diff --name-only -- .circleci`:
//
//	drifted, err := repo.DiffNamesOnly(ctx, ".circleci")
//
// # Error Handling
//
// The package exposes sentinel errors that can be checked with errors.Is:
//
//	if errors.Is(err, git.ErrResolveFailed) {
//	    // baseline or target revision does not exist
//	}
package git
