package validator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/executor"
)

type fakeExecutor struct {
	command []string
	input   string
	result  *executor.Result
	err     error
}

func (f *fakeExecutor) Execute(_ context.Context, command []string, opts ...executor.Option) (*executor.Result, error) {
	var o executor.Options
	for _, opt := range opts {
		opt(&o)
	}
	f.command = command
	f.input = o.Input
	if f.result == nil {
		f.result = &executor.Result{}
	}
	return f.result, f.err
}

func TestContainerValidator_Valid(t *testing.T) {
	exec := &fakeExecutor{}
	v := NewContainerValidator(exec, nil)

	require.NoError(t, v.Validate(context.Background(), "version: 2.1\n"))
	assert.Equal(t, DefaultContainerCommand, exec.command)
	assert.Equal(t, "version: 2.1\n", exec.input)
}

func TestContainerValidator_Invalid(t *testing.T) {
	exec := &fakeExecutor{
		result: &executor.Result{Combined: "Error: config is invalid\njobs: required\n", ExitCode: 255},
		err:    &executor.ExitError{Command: []string{"circleci"}, ExitCode: 255},
	}

	err := NewContainerValidator(exec, []string{"circleci", "config", "validate", "-"}).
		Validate(context.Background(), "jobs:")
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
	assert.Equal(t, 25, errors.ExitCode(err))

	var invalid *InvalidConfigError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Error: config is invalid\njobs: required", invalid.Diagnostics)
	assert.Contains(t, err.Error(), "jobs: required")
}

func TestContainerValidator_ExecutionFailure(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("docker: executable file not found")}

	err := NewContainerValidator(exec, nil).Validate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeExecutionFailed))
}

func TestContainerValidator_RealCommand(t *testing.T) {
	ok := NewContainerValidator(executor.New(), []string{"cat"})
	assert.NoError(t, ok.Validate(context.Background(), "version: 2.1\n"))

	bad := NewContainerValidator(executor.New(), []string{"sh", "-c", "echo bad config >&2; exit 3"})
	err := bad.Validate(context.Background(), "version: 2.1\n")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
	assert.Contains(t, err.Error(), "bad config")
}

func TestYAMLValidator(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr bool
	}{
		{name: "valid", config: "version: 2.1\njobs:\n  build:\n    steps: [checkout]\n"},
		{name: "empty", config: ""},
		{name: "multi document", config: "a: 1\n---\nb: 2\n"},
		{name: "nested mapping on one line", config: "jobs: build: steps\n", wantErr: true},
		{name: "unterminated flow", config: "jobs: [a, b\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := YAMLValidator{}.Validate(context.Background(), tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	v, err := New("", nil, &fakeExecutor{})
	require.NoError(t, err)
	assert.IsType(t, &ContainerValidator{}, v)

	v, err = New(KindYAML, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, YAMLValidator{}, v)

	_, err = New("bogus", nil, nil)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
}
