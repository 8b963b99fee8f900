// Package executor runs the external programs releaseci delegates to: the CI
// agent that halts a job and the containerised configuration validator.
//
// Commands run once. Failures are returned immediately with the captured
// output attached so callers can surface diagnostics verbatim.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the output and exit status of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string
	ExitCode int
}

// Executor runs a command line.
type Executor interface {
	// Execute runs command (program followed by arguments) with the given options.
	Execute(ctx context.Context, command []string, opts ...Option) (*Result, error)
}

// Options configures command execution behavior.
type Options struct {
	// Input is written to the command's stdin when non-empty.
	Input string

	// CaptureCombined additionally records stdout and stderr interleaved.
	CaptureCombined bool

	// RedirectToConsole mirrors output to the process stdout/stderr.
	RedirectToConsole bool

	// WorkingDir sets the working directory.
	WorkingDir string

	// Env is appended to the current environment.
	Env map[string]string

	StdoutWriter io.Writer
	StderrWriter io.Writer
}

// Option is a function that modifies Options.
type Option func(*Options)

// ExitError is returned when a command ran but exited with a nonzero status.
type ExitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", strings.Join(e.Command, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// CommandExecutor implements Executor with os/exec.
type CommandExecutor struct {
	options Options
}

var _ Executor = (*CommandExecutor)(nil)

// New creates a CommandExecutor whose defaults are modified by opts.
func New(opts ...Option) *CommandExecutor {
	e := &CommandExecutor{options: Options{Env: map[string]string{}}}
	for _, opt := range opts {
		opt(&e.options)
	}
	return e
}

// Execute implements Executor.
func (c *CommandExecutor) Execute(ctx context.Context, command []string, opts ...Option) (*Result, error) {
	if len(command) == 0 {
		return nil, errors.New("executor: empty command")
	}
	options := c.mergeOptions(opts...)

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	setupCommand(cmd, options)
	stdoutBuf, stderrBuf, combinedBuf := setupOutputCapture(cmd, options)

	err := cmd.Run()

	result := &Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Combined: combinedBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{Command: command, ExitCode: result.ExitCode, Stderr: result.Stderr}
	default:
		result.ExitCode = -1
		return result, fmt.Errorf("command execution failed: %w", err)
	}
}

// setupCommand configures working directory, environment, and input.
func setupCommand(cmd *exec.Cmd, options *Options) {
	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}

	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	if options.Input != "" {
		cmd.Stdin = strings.NewReader(options.Input)
	}
}

// setupOutputCapture wires stdout and stderr into buffers and optional mirrors.
func setupOutputCapture(cmd *exec.Cmd, options *Options) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	var stdoutBuf, stderrBuf, combinedBuf bytes.Buffer

	stdoutWriters := []io.Writer{&stdoutBuf}
	stderrWriters := []io.Writer{&stderrBuf}
	if options.CaptureCombined {
		stdoutWriters = append(stdoutWriters, &combinedBuf)
		stderrWriters = append(stderrWriters, &combinedBuf)
	}
	if options.RedirectToConsole {
		stdoutWriters = append(stdoutWriters, os.Stdout)
		stderrWriters = append(stderrWriters, os.Stderr)
	}
	if options.StdoutWriter != nil {
		stdoutWriters = append(stdoutWriters, options.StdoutWriter)
	}
	if options.StderrWriter != nil {
		stderrWriters = append(stderrWriters, options.StderrWriter)
	}

	cmd.Stdout = io.MultiWriter(stdoutWriters...)
	cmd.Stderr = io.MultiWriter(stderrWriters...)

	return &stdoutBuf, &stderrBuf, &combinedBuf
}

func (c *CommandExecutor) mergeOptions(opts ...Option) *Options {
	merged := c.options
	merged.Env = make(map[string]string, len(c.options.Env))
	for k, v := range c.options.Env {
		merged.Env[k] = v
	}
	for _, opt := range opts {
		opt(&merged)
	}
	return &merged
}

// WithInput feeds input to the command's stdin.
func WithInput(input string) Option {
	return func(o *Options) {
		o.Input = input
	}
}

// WithCombined enables interleaved stdout/stderr capture.
func WithCombined() Option {
	return func(o *Options) {
		o.CaptureCombined = true
	}
}

// WithConsoleRedirect enables/disables console output.
func WithConsoleRedirect(redirect bool) Option {
	return func(o *Options) {
		o.RedirectToConsole = redirect
	}
}

// WithWorkingDir sets the working directory.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnvVar adds a single environment variable.
func WithEnvVar(key, value string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		o.Env[key] = value
	}
}

// WithStdoutWriter sets an additional stdout writer.
func WithStdoutWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StdoutWriter = w
	}
}

// WithStderrWriter sets an additional stderr writer.
func WithStderrWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StderrWriter = w
	}
}
