package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedPaths(t *testing.T) {
	tr := setupTestRepo(t)
	base := tr.commitFiles(t, "initial", map[string]string{
		"README.md":                      "readme",
		"releases/alpha/1/bare/activate": "echo alpha",
		"tools/ci.sh":                    "echo ci",
	})
	tr.createBranch(t, "base", base)

	tr.commitFiles(t, "change", map[string]string{
		"releases/alpha/1/bare/activate": "echo alpha v2",
		"releases/beta/2/fun/Dockerfile": "FROM scratch",
	})
	tr.removeFiles(t, "remove", "tools/ci.sh")

	paths, err := tr.repo.ChangedPaths(context.Background(), "base", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"releases/alpha/1/bare/activate",
		"releases/beta/2/fun/Dockerfile",
		"tools/ci.sh",
	}, paths)
}

func TestChangedPaths_Filtered(t *testing.T) {
	tr := setupTestRepo(t)
	base := tr.commitFiles(t, "initial", map[string]string{"README.md": "readme"})
	tr.createBranch(t, "base", base)
	tr.commitFiles(t, "change", map[string]string{
		"README.md":                      "readme v2",
		"releases/alpha/1/bare/activate": "echo alpha",
	})

	paths, err := tr.repo.ChangedPaths(context.Background(), "base", "HEAD", PathPrefixFilter("releases/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"releases/alpha/1/bare/activate"}, paths)

	paths, err = tr.repo.ChangedPaths(context.Background(), "base", "HEAD",
		OrFilter(PathPrefixFilter("docs/"), PathPrefixFilter("README")))
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, paths)
}

func TestChangedPaths_SameRevision(t *testing.T) {
	tr := setupTestRepo(t)
	tr.commitFiles(t, "initial", map[string]string{"README.md": "readme"})

	paths, err := tr.repo.ChangedPaths(context.Background(), "HEAD", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestChangedPaths_RemoteFallback(t *testing.T) {
	tr := setupTestRepo(t)
	base := tr.commitFiles(t, "initial", map[string]string{"README.md": "readme"})
	tr.createRemoteBranch(t, DefaultRemoteName, "trunk", base)
	tr.commitFiles(t, "change", map[string]string{"docker/base/Dockerfile": "FROM scratch"})

	paths, err := tr.repo.ChangedPaths(context.Background(), "trunk", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"docker/base/Dockerfile"}, paths)

	// A local branch of the same name takes precedence over the remote one.
	tr.createBranch(t, "trunk", tr.head(t))
	paths, err = tr.repo.ChangedPaths(context.Background(), "trunk", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestChangedPaths_Errors(t *testing.T) {
	tr := setupTestRepo(t)
	tr.commitFiles(t, "initial", map[string]string{"README.md": "readme"})

	_, err := tr.repo.ChangedPaths(context.Background(), "", "HEAD")
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = tr.repo.ChangedPaths(context.Background(), "HEAD", "")
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = tr.repo.ChangedPaths(context.Background(), "does-not-exist", "HEAD")
	assert.ErrorIs(t, err, ErrResolveFailed)
}

func TestDiff(t *testing.T) {
	tr := setupTestRepo(t)
	tr.commitFiles(t, "initial", map[string]string{"test.txt": "initial content"})
	tr.commitFiles(t, "second", map[string]string{
		"test.txt": "modified content",
		"file2.md": "markdown content",
	})

	patch, err := tr.repo.Diff(context.Background(), "HEAD~1", "HEAD", PathPrefixFilter("test"))
	require.NoError(t, err)
	require.NotNil(t, patch)
	assert.Contains(t, patch.Text, "diff --git")
	assert.Contains(t, patch.Text, "test.txt")
	assert.NotContains(t, patch.Text, "file2.md")
	assert.Equal(t, 1, patch.FileCount)
}
