package assembler

import (
	"path"
	"sort"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

// releaseDepth is the number of directory levels below the releases root:
// name, number and flavor.
const releaseDepth = 3

// Discover lists the release directories exactly three levels below root,
// ordered lexicographically by their relative path. Plain files at any level
// are ignored.
func Discover(fsys fs.ReadFS, root string) ([]release.Path, error) {
	var rels []string
	if err := collect(fsys, root, "", 1, &rels); err != nil {
		return nil, err
	}
	sort.Strings(rels)

	paths := make([]release.Path, 0, len(rels))
	for _, rel := range rels {
		p, err := release.ParsePath(rel)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func collect(fsys fs.ReadFS, root, rel string, depth int, out *[]string) error {
	entries, err := fsys.ReadDir(path.Join(root, rel))
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeTemplateRead, "failed to read releases directory",
			map[string]interface{}{"path": path.Join(root, rel)})
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := path.Join(rel, entry.Name())
		if depth == releaseDepth {
			*out = append(*out, child)
			continue
		}
		if err := collect(fsys, root, child, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}
