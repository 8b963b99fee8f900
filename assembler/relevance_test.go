package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/changeset"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

func TestRelevance_EachPredicate(t *testing.T) {
	alpha := release.Path{Name: "alpha", Number: "1", Flavor: "bare"}

	tests := []struct {
		name    string
		changed string
		want    []string
	}{
		{name: "docker", changed: "docker/base/Dockerfile", want: []string{"docker"}},
		{name: "config", changed: "releases/alpha/1/bare/config/app.yaml", want: []string{"config"}},
		{name: "activate", changed: "releases/alpha/1/bare/activate", want: []string{"activate"}},
		{name: "dockerfile", changed: "releases/alpha/1/bare/Dockerfile", want: []string{"dockerfile"}},
		{name: "requirements", changed: "releases/alpha/1/bare/requirements.txt", want: []string{"requirements"}},
		{name: "entrypoint", changed: "releases/alpha/1/bare/entrypoint.sh", want: []string{"entrypoint"}},
		{name: "other file in release", changed: "releases/alpha/1/bare/README.md"},
		{name: "other release", changed: "releases/alpha/1/fun/activate"},
		{name: "nested docker dir", changed: "tools/docker/Dockerfile"},
		{name: "config file not dir", changed: "releases/alpha/1/bare/config"},
		{name: "regex metachar is literal", changed: "releases/alpha/1/bare/requirementsXtxt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := changeset.NewRecord("", "", []string{tt.changed})
			assert.Equal(t, tt.want, Relevance(rec, "releases", alpha))
		})
	}
}

func TestRelevance_Combined(t *testing.T) {
	rec := changeset.NewRecord("", "", []string{
		"docker/base/Dockerfile",
		"releases/alpha/1/bare/entrypoint.sh",
		"releases/alpha/1/bare/activate",
	})

	got := Relevance(rec, "releases", release.Path{Name: "alpha", Number: "1", Flavor: "bare"})
	assert.Equal(t, []string{"docker", "activate", "entrypoint"}, got)
}

func TestRelevance_CustomReleasesDir(t *testing.T) {
	rec := changeset.NewRecord("", "", []string{"deploy/releases/alpha/1/bare/activate"})
	p := release.Path{Name: "alpha", Number: "1", Flavor: "bare"}

	assert.Equal(t, []string{"activate"}, Relevance(rec, "deploy/releases", p))
	assert.Empty(t, Relevance(rec, "releases", p))
}
