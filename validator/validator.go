// Package validator checks generated pipeline configuration before it is
// written or compared.
package validator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/executor"
)

const (
	// KindContainer runs the CircleCI CLI in a container.
	KindContainer = "container"

	// KindYAML only checks that the configuration parses as YAML.
	KindYAML = "yaml"
)

// DefaultContainerCommand validates a configuration read from stdin with the
// CircleCI CLI image.
var DefaultContainerCommand = []string{
	"docker", "run", "--rm", "-i",
	"circleci/circleci-cli:alpine",
	"config", "validate", "-",
}

// Validator checks the syntax of a configuration text.
type Validator interface {
	Validate(ctx context.Context, config string) error
}

// New returns the validator for kind. command overrides the container
// command and is ignored by other kinds.
func New(kind string, command []string, exec executor.Executor) (Validator, error) {
	switch kind {
	case "", KindContainer:
		return NewContainerValidator(exec, command), nil
	case KindYAML:
		return YAMLValidator{}, nil
	default:
		return nil, errors.NewWithContext(errors.CodeInvalidInput, "unknown validator kind",
			map[string]interface{}{"kind": kind})
	}
}

// ContainerValidator pipes the configuration into an external checker.
type ContainerValidator struct {
	exec    executor.Executor
	command []string
}

// NewContainerValidator returns a validator running command, or
// DefaultContainerCommand when command is empty.
func NewContainerValidator(exec executor.Executor, command []string) *ContainerValidator {
	if len(command) == 0 {
		command = DefaultContainerCommand
	}
	return &ContainerValidator{exec: exec, command: command}
}

// Validate fails with CodeInvalidConfig when the checker exits nonzero. The
// checker's combined output is attached verbatim as diagnostics.
func (v *ContainerValidator) Validate(ctx context.Context, config string) error {
	res, err := v.exec.Execute(ctx, v.command, executor.WithInput(config), executor.WithCombined())
	if err == nil {
		return nil
	}

	var diagnostics string
	if res != nil {
		diagnostics = strings.TrimSpace(res.Combined)
	}

	var exitErr *executor.ExitError
	if !errors.As(err, &exitErr) {
		return errors.WrapWithContext(err, errors.CodeExecutionFailed, "failed to run configuration validator",
			map[string]interface{}{"command": strings.Join(v.command, " ")})
	}

	return &InvalidConfigError{Diagnostics: diagnostics, cause: err}
}

// YAMLValidator checks that the configuration is well-formed YAML.
type YAMLValidator struct{}

// Validate fails with CodeInvalidConfig when config does not parse. Every
// document in a multi-document stream is checked.
func (YAMLValidator) Validate(_ context.Context, config string) error {
	dec := yaml.NewDecoder(strings.NewReader(config))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &InvalidConfigError{Diagnostics: err.Error(), cause: err}
	}
}

// InvalidConfigError reports a configuration rejected by a validator.
type InvalidConfigError struct {
	Diagnostics string
	cause       error
}

var _ errors.PlatformError = (*InvalidConfigError)(nil)

func (e *InvalidConfigError) Error() string {
	if e.Diagnostics == "" {
		return "configuration is invalid"
	}
	return fmt.Sprintf("configuration is invalid:\n%s", e.Diagnostics)
}

// Code implements errors.PlatformError.
func (e *InvalidConfigError) Code() errors.ErrorCode { return errors.CodeInvalidConfig }

// Message implements errors.PlatformError.
func (e *InvalidConfigError) Message() string { return "configuration is invalid" }

// Context implements errors.PlatformError.
func (e *InvalidConfigError) Context() map[string]interface{} {
	return map[string]interface{}{"diagnostics": e.Diagnostics}
}

// Unwrap implements errors.PlatformError.
func (e *InvalidConfigError) Unwrap() error { return e.cause }
