package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billyfs "github.com/input-output-hk/catalyst-forge-libs/releaseci/fs/billy"
)

func TestInit_InMemory(t *testing.T) {
	ctx := context.Background()
	memFS := billyfs.NewInMemoryFS()

	repo, err := Init(ctx, &Options{FS: memFS})
	require.NoError(t, err)
	require.NotNil(t, repo)

	assert.NotNil(t, repo.repo)
	assert.NotNil(t, repo.worktree)
	assert.Equal(t, memFS, repo.fs)

	exists, err := memFS.Exists(".git/HEAD")
	require.NoError(t, err)
	assert.True(t, exists, ".git/HEAD should exist after Init")
}

func TestInit_DefaultOptions(t *testing.T) {
	opts := Options{FS: billyfs.NewInMemoryFS()}

	_, err := Init(context.Background(), &opts)
	require.NoError(t, err)

	assert.Equal(t, DefaultWorkdir, opts.Workdir)
	assert.Equal(t, DefaultStorerCacheSize, opts.StorerCacheSize)
	assert.Equal(t, DefaultRemoteName, opts.RemoteName)
}

func TestInit_InvalidOptions(t *testing.T) {
	_, err := Init(context.Background(), &Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRef)

	_, err = Init(context.Background(), &Options{FS: billyfs.NewInMemoryFS(), StorerCacheSize: -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRef)
}

func TestOpen_ExistingRepository(t *testing.T) {
	ctx := context.Background()
	memFS := billyfs.NewInMemoryFS()

	_, err := Init(ctx, &Options{FS: memFS, Workdir: "."})
	require.NoError(t, err)

	repo, err := Open(ctx, &Options{FS: memFS, Workdir: "."})
	require.NoError(t, err)
	assert.NotNil(t, repo.worktree)
}

func TestOpen_NonExistentRepository(t *testing.T) {
	_, err := Open(context.Background(), &Options{FS: billyfs.NewInMemoryFS()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open repository")
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, &Options{FS: billyfs.NewInMemoryFS()})
	require.ErrorIs(t, err, context.Canceled)
}
