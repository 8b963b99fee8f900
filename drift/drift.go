// Package drift regenerates the pipeline configuration and detects when the
// committed copy is out of date.
package drift

import (
	"context"
	"log/slog"
	"path"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/assembler"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/validator"
)

// RemediationMessage tells the operator how to fix drift.
const RemediationMessage = "generated configuration is out of date: run \"releaseci update\" and commit the result"

// Assembler produces the configuration text.
type Assembler interface {
	Run(ctx context.Context) (*assembler.Result, error)
}

// Differ lists tracked files under scope that differ from the committed state.
// git.Repo satisfies it.
type Differ interface {
	DiffNamesOnly(ctx context.Context, scope string) ([]string, error)
}

// Decision is the outcome of a drift check.
type Decision int

const (
	// Clean means regeneration reproduced the committed artifact.
	Clean Decision = iota

	// Drifted means regeneration changed committed files.
	Drifted
)

// String returns the decision name.
func (d Decision) String() string {
	if d == Drifted {
		return "drifted"
	}
	return "clean"
}

// Result describes a regeneration and, for checks, its drift outcome.
type Result struct {
	Decision Decision

	// Changed lists the drifted files.
	Changed []string

	Assembly *assembler.Result
}

// Checker regenerates the artifact and compares it with committed state.
type Checker struct {
	asm       Assembler
	validator validator.Validator
	fs        fs.Filesystem
	output    string
	differ    Differ
	logger    *slog.Logger
}

// Option is a functional option for configuring the Checker.
type Option func(*Checker)

// WithLogger configures the checker with a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Checker writing the generated artifact to output within fsys.
func New(asm Assembler, v validator.Validator, fsys fs.Filesystem, output string, differ Differ, opts ...Option) *Checker {
	c := &Checker{
		asm:       asm,
		validator: v,
		fs:        fsys,
		output:    output,
		differ:    differ,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate assembles and validates the configuration without writing it.
func (c *Checker) Generate(ctx context.Context) (*assembler.Result, error) {
	res, err := c.asm.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.validator.Validate(ctx, res.Config); err != nil {
		return nil, err
	}
	return res, nil
}

// Regenerate assembles, validates and writes the configuration, replacing
// any previous artifact.
func (c *Checker) Regenerate(ctx context.Context) (*assembler.Result, error) {
	res, err := c.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.fs.WriteFile(c.output, []byte(res.Config), 0o644); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeIO, "failed to write generated configuration",
			map[string]interface{}{"path": c.output})
	}

	c.logger.InfoContext(ctx, "wrote generated configuration", "path", c.output, "releases", len(res.Releases))
	return res, nil
}

// Check regenerates the artifact and diffs its directory against committed
// state. On drift it returns the result together with a CodeDrifted error.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	asm, err := c.Regenerate(ctx)
	if err != nil {
		return nil, err
	}

	scope := path.Dir(c.output)
	changed, err := c.differ.DiffNamesOnly(ctx, scope)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeVCSQueryFailed, "failed to diff generated configuration",
			map[string]interface{}{"scope": scope})
	}

	res := &Result{Decision: Clean, Changed: changed, Assembly: asm}
	if len(changed) == 0 {
		c.logger.InfoContext(ctx, "generated configuration is up to date", "path", c.output)
		return res, nil
	}

	res.Decision = Drifted
	c.logger.WarnContext(ctx, "generated configuration drifted", "files", changed)
	return res, errors.NewWithContext(errors.CodeDrifted, RemediationMessage,
		map[string]interface{}{"files": changed})
}
