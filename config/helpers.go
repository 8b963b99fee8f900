package config

import (
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/assembler"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/scope"
)

// ScopeConfig returns the settings consumed by scope.Evaluator.
func (c *Config) ScopeConfig() scope.Config {
	return scope.Config{
		Tag:         c.Tag,
		Job:         c.Job,
		Baseline:    c.Baseline,
		Target:      c.Target,
		ReleasesDir: c.ReleasesDir,
		Ignore:      c.IgnorePaths,
	}
}

// AssemblerConfig returns the settings consumed by assembler.Assembler.
func (c *Config) AssemblerConfig() assembler.Config {
	return assembler.Config{
		ReleasesDir: c.ReleasesDir,
		Templates: assembler.Templates{
			Master:            c.Templates.Master,
			WorkflowChanged:   c.Templates.WorkflowChanged,
			WorkflowUnchanged: c.Templates.WorkflowUnchanged,
			JobChanged:        c.Templates.JobChanged,
			JobUnchanged:      c.Templates.JobUnchanged,
		},
	}
}
