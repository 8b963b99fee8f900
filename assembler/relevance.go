package assembler

import (
	"path"
	"regexp"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/changeset"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

// Predicate is one independent reason a release counts as changed.
type Predicate struct {
	Name string

	// Pattern builds the change pattern for the release directory dir,
	// given relative to the repository root.
	Pattern func(dir string) *regexp.Regexp
}

func underRelease(suffix string) func(string) *regexp.Regexp {
	return func(dir string) *regexp.Regexp {
		return regexp.MustCompile("^" + regexp.QuoteMeta(dir+"/"+suffix))
	}
}

// Predicates are evaluated independently; any match marks a release changed.
var Predicates = []Predicate{
	{Name: "docker", Pattern: func(string) *regexp.Regexp { return regexp.MustCompile(`^docker/`) }},
	{Name: "config", Pattern: underRelease("config/")},
	{Name: "activate", Pattern: underRelease("activate")},
	{Name: "dockerfile", Pattern: underRelease("Dockerfile")},
	{Name: "requirements", Pattern: underRelease("requirements.txt")},
	{Name: "entrypoint", Pattern: underRelease("entrypoint.sh")},
}

// Relevance returns the names of the predicates that match changes for the
// release p located under releasesDir. An empty result means unchanged.
func Relevance(changes *changeset.Record, releasesDir string, p release.Path) []string {
	dir := path.Join(releasesDir, p.Rel())

	var matched []string
	for _, pred := range Predicates {
		if changes.Match(pred.Pattern(dir)) {
			matched = append(matched, pred.Name)
		}
	}
	return matched
}
