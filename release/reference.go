// Package release maps compact release references such as "dogwood.3-fun"
// to the releases/<name>/<number>/<flavor> directory layout and back.
//
// A reference has the grammar
//
//	<name>[.<number>][-<flavor>][-<version>]
//
// where name and flavor are lowercase letters, number is digits and version
// is digits and dots. The version suffix is recognised and kept for display
// but never contributes to the path.
package release

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
)

const (
	// DefaultFlavor is the flavor used when a reference names none.
	DefaultFlavor = "bare"

	// Root is the repository-relative directory holding all releases.
	Root = "releases"

	// ActivateFile is the per-release activation script name.
	ActivateFile = "activate"
)

// Reference is a parsed release reference. Empty Number and Flavor mean the
// reference did not supply them.
type Reference struct {
	Name   string
	Number string
	Flavor string

	// Version is the discarded version suffix without its leading dash.
	Version string
}

// HasNumber reports whether the reference supplied a release number.
func (r Reference) HasNumber() bool { return r.Number != "" }

// HasFlavor reports whether the reference supplied a flavor.
func (r Reference) HasFlavor() bool { return r.Flavor != "" }

// SemVer parses the version suffix. It returns nil when there is no suffix
// or the suffix is not a valid semantic version (e.g. "1.0.3.4").
func (r Reference) SemVer() *semver.Version {
	if r.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(r.Version)
	if err != nil {
		return nil
	}
	return v
}

// Path resolves the reference to its release path. A missing flavor becomes
// DefaultFlavor; a missing number stays empty.
func (r Reference) Path() Path {
	flavor := r.Flavor
	if flavor == "" {
		flavor = DefaultFlavor
	}
	return Path{Name: r.Name, Number: r.Number, Flavor: flavor}
}

// String renders the reference in canonical form, including the version suffix.
func (r Reference) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.Number != "" {
		b.WriteByte('.')
		b.WriteString(r.Number)
	}
	if r.Flavor != "" {
		b.WriteByte('-')
		b.WriteString(r.Flavor)
	}
	if r.Version != "" {
		b.WriteByte('-')
		b.WriteString(r.Version)
	}
	return b.String()
}

// Parse tokenizes s as a release reference. The whole string must match the
// grammar; anything else fails with CodeMalformedReference.
func Parse(s string) (Reference, error) {
	var ref Reference

	i := scan(s, 0, isLower)
	ref.Name = s[:i]

	if i < len(s) && s[i] == '.' {
		j := scan(s, i+1, isDigit)
		ref.Number = s[i+1 : j]
		i = j
	}

	rest := s[i:]

	// A dash followed by letters is a flavor only if what follows it is
	// either nothing or a version suffix. Otherwise the dash belongs to the
	// version suffix ("hawthorn.1-1.0.3").
	if strings.HasPrefix(rest, "-") {
		j := scan(rest, 1, isLower)
		if tail := rest[j:]; tail == "" || isVersionSuffix(tail) {
			ref.Flavor = rest[1:j]
			rest = tail
		}
	}

	if rest != "" {
		if !isVersionSuffix(rest) {
			return Reference{}, malformed(s)
		}
		ref.Version = rest[1:]
	}

	return ref, nil
}

// Decode parses a reference and resolves it to a Path.
func Decode(s string) (Path, error) {
	ref, err := Parse(s)
	if err != nil {
		return Path{}, err
	}
	return ref.Path(), nil
}

func malformed(s string) error {
	return errors.NewWithContext(
		errors.CodeMalformedReference,
		"release reference does not match <name>.<number>-<flavor>",
		map[string]interface{}{"reference": s},
	)
}

func scan(s string, from int, accept func(byte) bool) int {
	i := from
	for i < len(s) && accept(s[i]) {
		i++
	}
	return i
}

func isVersionSuffix(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isDigit(s[i]) && s[i] != '.' {
			return false
		}
	}
	return true
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
