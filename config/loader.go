package config

import (
	"context"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
	"github.com/input-output-hk/catalyst-forge-libs/releaseci/fs"
)

// schema closes the file format: unknown fields and wrong types are rejected
// before decoding.
const schema = `
#Config: {
	releasesDir?: string & !=""
	baseline?:    string & !=""
	target?:      string & !=""
	templates?: {
		master?:            string & !=""
		workflowChanged?:   string & !=""
		workflowUnchanged?: string & !=""
		jobChanged?:        string & !=""
		jobUnchanged?:      string & !=""
	}
	output?: string & !=""
	validator?: {
		kind?: "container" | "yaml"
		command?: [...string]
	}
	haltCommand?: [...string]
	ignorePaths?: [...string]
}
`

// Load returns the defaults overlaid with the CUE file at path. A missing
// file is an error only when required is set.
func Load(ctx context.Context, fsys fs.ReadFS, path string, required bool) (*Config, error) {
	cfg := Default()

	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to stat configuration file",
			map[string]interface{}{"path": path})
	}
	if !exists {
		if required {
			return nil, errors.NewWithContext(errors.CodeNotFound, "configuration file not found",
				map[string]interface{}{"path": path})
		}
		return cfg, nil
	}

	file, err := LoadFile(ctx, fsys, path)
	if err != nil {
		return nil, err
	}
	cfg.merge(file)
	return cfg, nil
}

// LoadFile parses and decodes a CUE configuration file. Only the fields set
// in the file are populated.
func LoadFile(ctx context.Context, fsys fs.ReadFS, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to read configuration file",
			map[string]interface{}{"path": path})
	}

	cctx := cuecontext.New()
	def := cctx.CompileString(schema, cue.Filename("releaseci-schema.cue")).LookupPath(cue.ParsePath("#Config"))

	value := cctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to parse configuration file",
			map[string]interface{}{"path": path})
	}

	value = def.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "configuration file does not match schema",
			map[string]interface{}{"path": path})
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeConfigLoadFailed, "failed to decode configuration file",
			map[string]interface{}{"path": path})
	}
	return &cfg, nil
}

// merge overlays the non-empty fields of src onto c.
func (c *Config) merge(src *Config) {
	setString(&c.ReleasesDir, src.ReleasesDir)
	setString(&c.Baseline, src.Baseline)
	setString(&c.Target, src.Target)
	setString(&c.Templates.Master, src.Templates.Master)
	setString(&c.Templates.WorkflowChanged, src.Templates.WorkflowChanged)
	setString(&c.Templates.WorkflowUnchanged, src.Templates.WorkflowUnchanged)
	setString(&c.Templates.JobChanged, src.Templates.JobChanged)
	setString(&c.Templates.JobUnchanged, src.Templates.JobUnchanged)
	setString(&c.Output, src.Output)
	setString(&c.Validator.Kind, src.Validator.Kind)

	if len(src.Validator.Command) > 0 {
		c.Validator.Command = src.Validator.Command
	}
	if len(src.HaltCommand) > 0 {
		c.HaltCommand = src.HaltCommand
	}
	if len(src.IgnorePaths) > 0 {
		c.IgnorePaths = src.IgnorePaths
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
