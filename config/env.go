package config

// Environment variables read by ApplyEnv.
const (
	EnvTag       = "CIRCLE_TAG"
	EnvJob       = "CIRCLE_JOB"
	EnvBaseline  = "RELEASECI_BASELINE"
	EnvTarget    = "RELEASECI_TARGET"
	EnvValidator = "RELEASECI_VALIDATOR"
)

// ApplyEnv overlays environment settings onto c. Variables set to the empty
// string count as unset.
func ApplyEnv(c *Config, getenv func(string) string) {
	setString(&c.Tag, getenv(EnvTag))
	setString(&c.Job, getenv(EnvJob))
	setString(&c.Baseline, getenv(EnvBaseline))
	setString(&c.Target, getenv(EnvTarget))
	setString(&c.Validator.Kind, getenv(EnvValidator))
}
