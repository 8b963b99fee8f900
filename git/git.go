package git

import (
	"context"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."

	// DefaultRemoteName is the remote consulted when a revision does not
	// resolve locally.
	DefaultRemoteName = "origin"
)

// Options configures repository discovery/creation and performance.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// RemoteName is the remote used to resolve revisions missing locally.
	// Defaults to DefaultRemoteName.
	RemoteName string
}

// Validate checks that the Options are properly configured.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}

	if o.RemoteName == "" {
		o.RemoteName = DefaultRemoteName
	}
}

// Repo represents a non-bare git repository.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       fs.Filesystem
	options  Options
}

// Init creates a new non-bare repository. It is mainly useful for tests
// working against in-memory filesystems.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	return setup(ctx, opts, func(storage *filesystem.Storage, worktree gobilly.Filesystem) (*git.Repository, error) {
		repo, err := git.Init(storage, worktree)
		if err != nil {
			return nil, WrapError(err, "failed to initialize repository")
		}
		return repo, nil
	})
}

// Open opens an existing non-bare repository rooted at opts.Workdir.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	return setup(ctx, opts, func(storage *filesystem.Storage, worktree gobilly.Filesystem) (*git.Repository, error) {
		repo, err := git.Open(storage, worktree)
		if err != nil {
			return nil, WrapError(err, "failed to open repository")
		}
		return repo, nil
	})
}

type repoFactory func(*filesystem.Storage, gobilly.Filesystem) (*git.Repository, error)

func setup(ctx context.Context, opts *Options, factory repoFactory) (*Repo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	scopedFS, err := fsbridge.Worktree(opts.FS, opts.Workdir)
	if err != nil {
		return nil, WrapError(err, "invalid repository filesystem")
	}

	storage, err := fsbridge.NewStorage(scopedFS, opts.StorerCacheSize)
	if err != nil {
		return nil, WrapError(err, "failed to open object storage")
	}

	repo, err := factory(storage, scopedFS)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &Repo{
		repo:     repo,
		worktree: worktree,
		fs:       opts.FS,
		options:  *opts,
	}, nil
}
