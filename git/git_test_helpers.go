package git

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/releaseci/fs/billy"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   fs.Filesystem
	ctx  context.Context
}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()

	repo, err := Init(ctx, &Options{FS: memFS, Workdir: "."})
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo: repo,
		fs:   memFS,
		ctx:  ctx,
	}
}

// commitFiles writes files, stages them and commits. It returns the commit hash.
func (tr *testRepo) commitFiles(t *testing.T, msg string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		require.NoError(t, tr.fs.WriteFile(name, []byte(content), 0o644), "failed to write %s", name)
		_, err := tr.repo.worktree.Add(name)
		require.NoError(t, err, "failed to add %s", name)
	}

	return tr.commit(t, msg)
}

// removeFiles deletes files from the worktree and index and commits.
func (tr *testRepo) removeFiles(t *testing.T, msg string, names ...string) string {
	t.Helper()

	for _, name := range names {
		_, err := tr.repo.worktree.Remove(name)
		require.NoError(t, err, "failed to remove %s", name)
	}

	return tr.commit(t, msg)
}

func (tr *testRepo) commit(t *testing.T, msg string) string {
	t.Helper()

	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()}
	hash, err := tr.repo.worktree.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err, "failed to commit")

	return hash.String()
}

// head returns the commit hash HEAD points at.
func (tr *testRepo) head(t *testing.T) string {
	t.Helper()

	ref, err := tr.repo.repo.Head()
	require.NoError(t, err, "failed to resolve HEAD")

	return ref.Hash().String()
}

// createBranch points a local branch at the given commit. It must not be the
// checked-out branch, which later commits would move.
func (tr *testRepo) createBranch(t *testing.T, name, hash string) {
	t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(hash))
	require.NoError(t, tr.repo.repo.Storer.SetReference(ref), "failed to create branch %s", name)
}

// createRemoteBranch points a remote-tracking branch at the given commit.
func (tr *testRepo) createRemoteBranch(t *testing.T, remote, name, hash string) {
	t.Helper()

	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, name), plumbing.NewHash(hash))
	require.NoError(t, tr.repo.repo.Storer.SetReference(ref), "failed to create remote branch %s/%s", remote, name)
}
