package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "empty environment keeps defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, Default(), c)
			},
		},
		{
			name: "release sources",
			env:  map[string]string{EnvTag: "dogwood.3-fun-1.0.0", EnvJob: "alpha.1"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "dogwood.3-fun-1.0.0", c.Tag)
				assert.Equal(t, "alpha.1", c.Job)
				assert.Equal(t, "dogwood.3-fun-1.0.0", c.ScopeConfig().Tag)
			},
		},
		{
			name: "empty string counts as unset",
			env:  map[string]string{EnvTag: "", EnvBaseline: ""},
			check: func(t *testing.T, c *Config) {
				assert.Empty(t, c.Tag)
				assert.Equal(t, "master", c.Baseline)
			},
		},
		{
			name: "revision and validator overrides",
			env:  map[string]string{EnvBaseline: "main", EnvTarget: "abc123", EnvValidator: "yaml"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "main", c.Baseline)
				assert.Equal(t, "abc123", c.Target)
				assert.Equal(t, "yaml", c.Validator.Kind)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			ApplyEnv(cfg, func(k string) string { return tt.env[k] })
			tt.check(t, cfg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "releases", cfg.ReleasesDir)
	assert.Equal(t, "master", cfg.Baseline)
	assert.Equal(t, "HEAD", cfg.Target)
	assert.Equal(t, ".circleci/config.yml", cfg.Output)
	assert.NoError(t, cfg.Validate())
}

func TestComponentConfigs(t *testing.T) {
	cfg := Default()
	cfg.Job = "alpha.1"
	cfg.IgnorePaths = []string{"**/*.md"}
	cfg.ReleasesDir = "deploy/releases"

	sc := cfg.ScopeConfig()
	assert.Equal(t, "alpha.1", sc.Job)
	assert.Equal(t, "master", sc.Baseline)
	assert.Equal(t, "HEAD", sc.Target)
	assert.Equal(t, []string{"**/*.md"}, sc.Ignore)
	assert.Equal(t, "deploy/releases", sc.ReleasesDir)

	ac := cfg.AssemblerConfig()
	assert.Equal(t, "deploy/releases", ac.ReleasesDir)
	assert.Equal(t, cfg.Templates.Master, ac.Templates.Master)
	assert.Equal(t, cfg.Templates.JobUnchanged, ac.Templates.JobUnchanged)
}
