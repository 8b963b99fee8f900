// Package assembler generates the CI pipeline configuration from per-release
// workflow and job templates.
//
// Every release directory contributes one workflow fragment and one job
// fragment. Releases with relevant changes use the "changed" templates, the
// rest use the "unchanged" ones, keeping the generated pipeline small.
package assembler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/changeset"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/template"
)

// Banner is prepended to every generated configuration.
const Banner = `#
# THIS FILE IS GENERATED. DO NOT EDIT IT BY HAND.
#
# Edit the master template and the per-release workflow/job templates
# instead, then regenerate this file with "releaseci update".
#
`

// Templates locates the five template files, relative to the filesystem root.
type Templates struct {
	Master            string
	WorkflowChanged   string
	WorkflowUnchanged string
	JobChanged        string
	JobUnchanged      string
}

// Config configures an Assembler.
type Config struct {
	// ReleasesDir is the releases root relative to the filesystem root.
	ReleasesDir string
	Templates   Templates
}

// ReleaseEntry describes how one release was rendered.
type ReleaseEntry struct {
	Path    release.Path
	Label   string
	Changed bool

	// Reasons names the predicates that marked the release changed.
	Reasons []string
}

// Result is the assembled configuration and a per-release summary.
type Result struct {
	Config   string
	Releases []ReleaseEntry
}

// Assembler renders the pipeline configuration.
type Assembler struct {
	fs      fs.ReadFS
	cfg     Config
	changes *changeset.Record
	logger  *slog.Logger
}

// Option is a functional option for configuring the Assembler.
type Option func(*Assembler)

// WithLogger configures the assembler with a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Assembler reading from fsys and selecting templates
// according to changes.
func New(fsys fs.ReadFS, cfg Config, changes *changeset.Record, opts ...Option) *Assembler {
	if cfg.ReleasesDir == "" {
		cfg.ReleasesDir = release.Root
	}
	a := &Assembler{
		fs:      fsys,
		cfg:     cfg,
		changes: changes,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type fragments struct {
	workflowChanged   string
	workflowUnchanged string
	jobChanged        string
	jobUnchanged      string
}

// Run assembles the configuration. Output depends only on the templates, the
// release directories and the change record, so repeated runs over the same
// inputs are byte-identical.
func (a *Assembler) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	master, err := a.readTemplate(a.cfg.Templates.Master)
	if err != nil {
		return nil, err
	}
	doc, err := template.Parse(master, template.WorkflowJobsMarker, template.JobsMarker)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.GetCode(err), "invalid master template",
			map[string]interface{}{"path": a.cfg.Templates.Master})
	}

	frags, err := a.loadFragments()
	if err != nil {
		return nil, err
	}

	releases, err := Discover(a.fs, a.cfg.ReleasesDir)
	if err != nil {
		return nil, err
	}

	var workflows, jobs strings.Builder
	entries := make([]ReleaseEntry, 0, len(releases))

	for _, p := range releases {
		entry := ReleaseEntry{Path: p, Label: p.Label()}
		entry.Reasons = Relevance(a.changes, a.cfg.ReleasesDir, p)
		entry.Changed = len(entry.Reasons) > 0

		workflow, job := frags.workflowUnchanged, frags.jobUnchanged
		if entry.Changed {
			workflow, job = frags.workflowChanged, frags.jobChanged
		}
		workflows.WriteString(template.Substitute(workflow, entry.Label))
		jobs.WriteString(template.Substitute(job, entry.Label))

		a.logger.DebugContext(ctx, "rendered release",
			"release", entry.Label, "changed", entry.Changed, "reasons", entry.Reasons)
		entries = append(entries, entry)
	}

	body, err := doc.Render(map[string]string{
		template.WorkflowJobsMarker: workflows.String(),
		template.JobsMarker:         jobs.String(),
	})
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "assembled configuration", "releases", len(entries))

	return &Result{Config: Banner + body, Releases: entries}, nil
}

func (a *Assembler) loadFragments() (*fragments, error) {
	var f fragments
	for _, t := range []struct {
		path string
		dst  *string
	}{
		{a.cfg.Templates.WorkflowChanged, &f.workflowChanged},
		{a.cfg.Templates.WorkflowUnchanged, &f.workflowUnchanged},
		{a.cfg.Templates.JobChanged, &f.jobChanged},
		{a.cfg.Templates.JobUnchanged, &f.jobUnchanged},
	} {
		text, err := a.readTemplate(t.path)
		if err != nil {
			return nil, err
		}
		*t.dst = text
	}
	return &f, nil
}

func (a *Assembler) readTemplate(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.CodeTemplateRead, "template path is empty")
	}
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeTemplateRead, "failed to read template",
			map[string]interface{}{"path": path})
	}
	return string(data), nil
}
