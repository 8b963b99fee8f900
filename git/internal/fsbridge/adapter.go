// Package fsbridge hands go-git the billy filesystems behind a releaseci
// fs.Filesystem: the worktree and the object store under its .git directory.
package fsbridge

import (
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
)

// rawer is implemented by filesystems backed by go-billy, such as fs/billy.FS.
type rawer interface {
	Raw() billy.Filesystem
}

// Worktree returns the go-billy filesystem for workdir inside fsys. Only
// go-billy backed filesystems are accepted; go-git cannot operate on others.
//
//nolint:ireturn // go-git consumes billy.Filesystem
func Worktree(fsys fs.Filesystem, workdir string) (billy.Filesystem, error) {
	r, ok := fsys.(rawer)
	if !ok {
		return nil, fmt.Errorf("repository filesystem %T is not backed by go-billy", fsys)
	}

	if workdir == "" || workdir == "." {
		return r.Raw(), nil
	}

	wt, err := r.Raw().Chroot(workdir)
	if err != nil {
		return nil, fmt.Errorf("chroot to workdir %q: %w", workdir, err)
	}
	return wt, nil
}
