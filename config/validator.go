package config

import (
	"fmt"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/validator"
)

// Validate checks that every required setting is present. Tag and Job are
// not required here; only the operations that need an active release check
// for them.
func (c *Config) Validate() error {
	var problems []string

	required := []struct {
		name  string
		value string
	}{
		{"releasesDir", c.ReleasesDir},
		{"baseline", c.Baseline},
		{"target", c.Target},
		{"templates.master", c.Templates.Master},
		{"templates.workflowChanged", c.Templates.WorkflowChanged},
		{"templates.workflowUnchanged", c.Templates.WorkflowUnchanged},
		{"templates.jobChanged", c.Templates.JobChanged},
		{"templates.jobUnchanged", c.Templates.JobUnchanged},
		{"output", c.Output},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			problems = append(problems, fmt.Sprintf("%s is required", field.name))
		}
	}

	switch c.Validator.Kind {
	case validator.KindContainer, validator.KindYAML:
	default:
		problems = append(problems, fmt.Sprintf("validator.kind %q is not one of %q, %q",
			c.Validator.Kind, validator.KindContainer, validator.KindYAML))
	}

	if len(problems) > 0 {
		return errors.New(
			errors.CodeInvalidInput,
			fmt.Sprintf("configuration validation failed: %s", strings.Join(problems, "; ")),
		)
	}
	return nil
}
