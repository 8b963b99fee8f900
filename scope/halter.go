package scope

import (
	"context"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/executor"
)

// DefaultHaltCommand stops the current CircleCI job without failing it.
var DefaultHaltCommand = []string{"circleci-agent", "step", "halt"}

// Halter cooperatively stops the current CI job.
type Halter interface {
	Halt(ctx context.Context) error
}

// HalterFunc adapts a function to the Halter interface.
type HalterFunc func(ctx context.Context) error

// Halt calls f.
func (f HalterFunc) Halt(ctx context.Context) error { return f(ctx) }

// CommandHalter halts the job by running the CI agent.
type CommandHalter struct {
	exec    executor.Executor
	command []string
}

// NewCommandHalter returns a halter running command, or DefaultHaltCommand
// when command is empty.
func NewCommandHalter(exec executor.Executor, command []string) *CommandHalter {
	if len(command) == 0 {
		command = DefaultHaltCommand
	}
	return &CommandHalter{exec: exec, command: command}
}

// Halt runs the halt command, mirroring its output to the console.
func (h *CommandHalter) Halt(ctx context.Context) error {
	if _, err := h.exec.Execute(ctx, h.command, executor.WithConsoleRedirect(true)); err != nil {
		return errors.WrapWithContext(err, errors.CodeExecutionFailed, "halt command failed",
			map[string]interface{}{"command": h.command})
	}
	return nil
}
