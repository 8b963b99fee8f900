// Package config builds the releaseci configuration once at the process
// boundary and hands typed settings to each operation.
//
// Settings are layered, lowest precedence first: built-in defaults, an
// optional CUE file, environment variables, then command-line flags applied
// by the caller.
//
// # Basic Usage
//
//	fs := billy.NewOSFS("/path/to/repo")
//
//	cfg, err := config.Load(ctx, fs, config.DefaultFile, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	config.ApplyEnv(cfg, os.Getenv)
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// A configuration file only needs the fields it overrides:
//
//	baseline: "main"
//	templates: master: "ci/templates/config.yml"
//	validator: kind: "yaml"
//	ignorePaths: ["**/*.md"]
package config

import (
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

// DefaultFile is the configuration file looked up in the repository root.
const DefaultFile = ".releaseci.cue"

// Templates locates the template files relative to the repository root.
type Templates struct {
	Master            string `json:"master"`
	WorkflowChanged   string `json:"workflowChanged"`
	WorkflowUnchanged string `json:"workflowUnchanged"`
	JobChanged        string `json:"jobChanged"`
	JobUnchanged      string `json:"jobUnchanged"`
}

// Validator selects how generated configuration is checked.
type Validator struct {
	// Kind is "container" or "yaml".
	Kind string `json:"kind"`

	// Command overrides the container validator command line.
	Command []string `json:"command"`
}

// Config is the complete releaseci configuration.
type Config struct {
	// RepoRoot is the host directory holding the repository. Every other
	// path is relative to it.
	RepoRoot string `json:"-"`

	ReleasesDir string `json:"releasesDir"`

	// Baseline and Target are the revisions changes are computed between.
	Baseline string `json:"baseline"`
	Target   string `json:"target"`

	// Tag and Job are the active release sources. Tag wins when both are set.
	// They come from the environment only.
	Tag string `json:"-"`
	Job string `json:"-"`

	Templates Templates `json:"templates"`

	// Output is the generated pipeline configuration.
	Output string `json:"output"`

	Validator Validator `json:"validator"`

	// HaltCommand overrides the command that halts an out-of-scope job.
	HaltCommand []string `json:"haltCommand"`

	// IgnorePaths are globs of changed paths that never affect decisions.
	IgnorePaths []string `json:"ignorePaths"`
}

// Default returns the built-in configuration for a CircleCI repository.
func Default() *Config {
	return &Config{
		RepoRoot:    ".",
		ReleasesDir: release.Root,
		Baseline:    "master",
		Target:      "HEAD",
		Templates: Templates{
			Master:            ".circleci/templates/config.yml",
			WorkflowChanged:   ".circleci/templates/workflow-changed.yml",
			WorkflowUnchanged: ".circleci/templates/workflow-unchanged.yml",
			JobChanged:        ".circleci/templates/job-changed.yml",
			JobUnchanged:      ".circleci/templates/job-unchanged.yml",
		},
		Output:    ".circleci/config.yml",
		Validator: Validator{Kind: "container"},
	}
}
