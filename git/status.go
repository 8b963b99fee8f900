package git

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DiffNamesOnly lists tracked files under scope whose worktree content differs
// from the index, equivalent to `git diff --name-only -- <scope>`. Untracked
// files are not reported. An empty scope or "." covers the whole worktree.
func (r *Repo) DiffNamesOnly(ctx context.Context, scope string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := r.worktree.Status()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree status")
	}

	scope = strings.Trim(path.Clean("/"+scope), "/")

	var paths []string
	for name, fileStatus := range status {
		if fileStatus.Worktree == git.Unmodified || fileStatus.Worktree == git.Untracked {
			continue
		}
		if inScope(name, scope) {
			paths = append(paths, name)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func inScope(name, scope string) bool {
	return scope == "" || name == scope || strings.HasPrefix(name, scope+"/")
}
