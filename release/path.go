package release

import (
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
)

// Path addresses a release directory: releases/<name>/<number>/<flavor>.
type Path struct {
	Name   string
	Number string
	Flavor string
}

// Segments returns the non-empty path segments below Root.
func (p Path) Segments() []string {
	segs := make([]string, 0, 3)
	for _, s := range []string{p.Name, p.Number, p.Flavor} {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Rel returns the path relative to Root, e.g. "dogwood/3/fun".
func (p Path) Rel() string {
	return strings.Join(p.Segments(), "/")
}

// String returns the repository-relative path, e.g. "releases/dogwood/3/fun".
// Empty segments are skipped rather than producing doubled separators.
func (p Path) String() string {
	return p.Under(Root)
}

// Under returns the path below a releases directory other than Root, e.g.
// "deploy/releases/dogwood/3/fun". An empty root means Root.
func (p Path) Under(root string) string {
	root = strings.TrimRight(root, "/")
	if root == "" {
		root = Root
	}
	if rel := p.Rel(); rel != "" {
		return root + "/" + rel
	}
	return root
}

// Activate returns the path of the release's activation script.
func (p Path) Activate() string {
	return p.ActivateUnder(Root)
}

// ActivateUnder returns the activation script path below root.
func (p Path) ActivateUnder(root string) string {
	return p.Under(root) + "/" + ActivateFile
}

// Label renders the path as a dotted-dashed label: the first separator of
// Rel becomes "." and the second "-". Every segment is kept, so
// alpha/1/bare labels as "alpha.1-bare".
func (p Path) Label() string {
	label := strings.Replace(p.Rel(), "/", ".", 1)
	return strings.Replace(label, "/", "-", 1)
}

// Encode renders p as a compact reference, omitting an empty number and the
// default flavor. Decode(Encode(p)) == p for any p with a non-empty flavor.
func Encode(p Path) string {
	ref := Reference{Name: p.Name, Number: p.Number}
	if p.Flavor != DefaultFlavor {
		ref.Flavor = p.Flavor
	}
	return ref.String()
}

// ParsePath splits a three-segment release directory path. A leading Root
// segment is accepted and stripped.
func ParsePath(rel string) (Path, error) {
	rel = strings.Trim(rel, "/")
	rel = strings.TrimPrefix(rel, Root+"/")

	parts := strings.Split(rel, "/")
	if len(parts) != 3 {
		return Path{}, errors.NewWithContext(
			errors.CodeInvalidInput,
			"release path must have exactly three segments",
			map[string]interface{}{"path": rel},
		)
	}
	return Path{Name: parts[0], Number: parts[1], Flavor: parts[2]}, nil
}
