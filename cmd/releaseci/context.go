package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/assembler"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/changeset"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/config"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/drift"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/executor"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/git"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/validator"
)

type globalFlags struct {
	repo     string
	config   string
	baseline string
	target   string
	verbose  bool
}

type commandContext struct {
	flags  *globalFlags
	getenv func(string) string
	stderr io.Writer

	configOnce sync.Once
	config     *config.Config
	configErr  error

	fsOnce sync.Once
	fs     *billy.FS
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{
		flags:  flags,
		getenv: os.Getenv,
		stderr: os.Stderr,
	}
}

// ensureConfig layers defaults, the config file, the environment and flags.
func (c *commandContext) ensureConfig(ctx context.Context) (*config.Config, error) {
	c.configOnce.Do(func() {
		root, err := resolveRoot(c.repoRoot())
		if err != nil {
			c.configErr = err
			return
		}

		path := strings.TrimSpace(c.flags.config)
		required := path != ""
		if !required {
			path = config.DefaultFile
		}

		cfg, err := config.Load(ctx, c.filesystem(), path, required)
		if err != nil {
			c.configErr = err
			return
		}
		cfg.RepoRoot = root

		config.ApplyEnv(cfg, c.getenv)
		if v := strings.TrimSpace(c.flags.baseline); v != "" {
			cfg.Baseline = v
		}
		if v := strings.TrimSpace(c.flags.target); v != "" {
			cfg.Target = v
		}

		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) repoRoot() string {
	if root := strings.TrimSpace(c.flags.repo); root != "" {
		return root
	}
	return "."
}

func resolveRoot(root string) (string, error) {
	abs, err := fs.GetAbs(root)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid repository root",
			map[string]interface{}{"path": root})
	}
	ok, err := fs.Exists(abs)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeIO, "failed to stat repository root",
			map[string]interface{}{"path": abs})
	}
	if !ok {
		return "", errors.NewWithContext(errors.CodeNotFound, "repository root not found",
			map[string]interface{}{"path": abs})
	}
	return abs, nil
}

func (c *commandContext) filesystem() *billy.FS {
	c.fsOnce.Do(func() {
		c.fs = billy.NewOSFS(c.repoRoot())
	})
	return c.fs
}

func (c *commandContext) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.flags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

func (c *commandContext) executor() executor.Executor {
	return executor.New(executor.WithWorkingDir(c.repoRoot()))
}

func (c *commandContext) openRepo(ctx context.Context) (*git.Repo, error) {
	repo, err := git.Open(ctx, &git.Options{FS: c.filesystem()})
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeVCSQueryFailed, "failed to open repository",
			map[string]interface{}{"path": c.repoRoot()})
	}
	return repo, nil
}

// changeSource adapts the repository to changeset.Source. A change must pass
// every filter to be reported.
func changeSource(repo *git.Repo, filters ...git.ChangeFilter) changeset.Source {
	return changeset.SourceFunc(func(ctx context.Context, from, to string) ([]string, error) {
		return repo.ChangedPaths(ctx, from, to, filters...)
	})
}

// queryChanges computes the change record between the configured revisions.
func (c *commandContext) queryChanges(ctx context.Context, cfg *config.Config, repo *git.Repo, filters ...git.ChangeFilter) (*changeset.Record, error) {
	return changeset.Query(ctx, changeSource(repo, filters...), cfg.Baseline, cfg.Target,
		changeset.Options{Ignore: cfg.IgnorePaths})
}

// newChecker wires assembly, validation and drift detection.
func (c *commandContext) newChecker(ctx context.Context) (*drift.Checker, error) {
	cfg, err := c.ensureConfig(ctx)
	if err != nil {
		return nil, err
	}
	repo, err := c.openRepo(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := c.queryChanges(ctx, cfg, repo)
	if err != nil {
		return nil, err
	}
	v, err := validator.New(cfg.Validator.Kind, cfg.Validator.Command, c.executor())
	if err != nil {
		return nil, err
	}

	logger := c.logger()
	asm := assembler.New(c.filesystem(), cfg.AssemblerConfig(), changes, assembler.WithLogger(logger))
	return drift.New(asm, v, c.filesystem(), cfg.Output, repo, drift.WithLogger(logger)), nil
}
