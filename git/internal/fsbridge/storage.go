package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// MinCacheSize is used when a non-positive cache size is requested.
const MinCacheSize = 100

// DotGit is the repository metadata directory inside a worktree.
const DotGit = ".git"

// NewStorage creates git object storage in the .git directory of worktree
// with an LRU object cache of cacheSize entries.
func NewStorage(worktree billy.Filesystem, cacheSize int) (*filesystem.Storage, error) {
	if cacheSize <= 0 {
		cacheSize = MinCacheSize
	}

	dotGit, err := worktree.Chroot(DotGit)
	if err != nil {
		return nil, fmt.Errorf("access %s directory: %w", DotGit, err)
	}

	return filesystem.NewStorage(dotGit, cache.NewObjectLRU(cache.FileSize(cacheSize))), nil
}
