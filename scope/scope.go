// Package scope decides whether the CI job for the active release should run
// given the files changed since the baseline revision.
package scope

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/changeset"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/release"
)

// Decision is the three-way outcome of an evaluation.
type Decision int

const (
	// GlobalScope means a change outside every release directory may affect
	// all releases, so the job runs.
	GlobalScope Decision = iota

	// InScope means the active release's own directory changed.
	InScope

	// OutOfScope means nothing relevant to the active release changed. The
	// job is halted.
	OutOfScope
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case GlobalScope:
		return "global-scope"
	case InScope:
		return "in-scope"
	case OutOfScope:
		return "out-of-scope"
	default:
		return "unknown"
	}
}

// Continue reports whether the job should proceed.
func (d Decision) Continue() bool {
	return d != OutOfScope
}

// Config selects the active release and the revisions to compare.
type Config struct {
	// Tag is the tag-like active release source. It wins over Job.
	Tag string

	// Job is the job-name-like active release source.
	Job string

	Baseline string
	Target   string

	// ReleasesDir is the directory holding all releases. Defaults to
	// release.Root.
	ReleasesDir string

	// Ignore holds globs of changed paths that never affect the decision.
	Ignore []string
}

func (c Config) releasesDir() string {
	if dir := strings.Trim(c.ReleasesDir, "/"); dir != "" {
		return dir
	}
	return release.Root
}

// ActiveReference returns the release reference to evaluate: Tag when set,
// otherwise Job. It fails with CodeMissingReleaseContext if neither is set.
func (c Config) ActiveReference() (string, error) {
	switch {
	case c.Tag != "":
		return c.Tag, nil
	case c.Job != "":
		return c.Job, nil
	default:
		return "", errors.New(errors.CodeMissingReleaseContext,
			"no active release: neither a tag nor a job name is set")
	}
}

// Result carries the decision together with the inputs that produced it.
type Result struct {
	Decision  Decision
	Reference string

	// Path is the active release path. It is zero for GlobalScope.
	Path release.Path

	// Dir is Path below the configured releases directory.
	Dir     string
	Changes *changeset.Record
}

// Evaluator classifies the active release against a change record.
type Evaluator struct {
	cfg    Config
	source changeset.Source
	halter Halter
	logger *slog.Logger
}

// Option is a functional option for configuring the Evaluator.
type Option func(*Evaluator)

// WithLogger configures the evaluator with a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Evaluator. halter is invoked once per out-of-scope decision.
func New(cfg Config, source changeset.Source, halter Halter, opts ...Option) *Evaluator {
	e := &Evaluator{
		cfg:    cfg,
		source: source,
		halter: halter,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate decides the scope of the active release and halts the job when it
// is out of scope.
func (e *Evaluator) Evaluate(ctx context.Context) (*Result, error) {
	ref, err := e.cfg.ActiveReference()
	if err != nil {
		return nil, err
	}

	changes, err := changeset.Query(ctx, e.source, e.cfg.Baseline, e.cfg.Target, changeset.Options{Ignore: e.cfg.Ignore})
	if err != nil {
		return nil, err
	}

	res := &Result{Reference: ref, Changes: changes}
	root := e.cfg.releasesDir()

	if changes.AnyOutside(root + "/") {
		res.Decision = GlobalScope
		e.logger.InfoContext(ctx, "changes outside releases directory, running all release jobs",
			"reference", ref, "changed", changes.Len())
		return res, nil
	}

	path, err := release.Decode(ref)
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Dir = path.Under(root)

	if changes.Match(prefixPattern(res.Dir)) {
		res.Decision = InScope
		e.logger.InfoContext(ctx, "release changed, running job",
			"reference", ref, "path", res.Dir)
		return res, nil
	}

	res.Decision = OutOfScope
	e.logger.InfoContext(ctx, "release unchanged, halting job",
		"reference", ref, "path", res.Dir)

	if err := e.halter.Halt(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeExecutionFailed, "failed to halt job")
	}
	return res, nil
}

func prefixPattern(dir string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(dir) + "/")
}
