// Package errors provides the structured error handling used across releaseci.
// It extends Go's standard error handling with string error codes, context
// preservation and a stable mapping from failure kinds to process exit statuses.
package errors

// ErrorCode represents a specific failure condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Release reference errors.

	// CodeMalformedReference indicates a release reference does not match the
	// <name>.<number>-<flavor> grammar.
	CodeMalformedReference ErrorCode = "MALFORMED_REFERENCE"

	// CodeMissingReleaseContext indicates neither active-release source is set.
	CodeMissingReleaseContext ErrorCode = "MISSING_RELEASE_CONTEXT"

	// Version control errors.

	// CodeVCSQueryFailed indicates the version control backend could not list changes.
	CodeVCSQueryFailed ErrorCode = "VCS_QUERY_FAILED"

	// Generation errors.

	// CodeTemplateRead indicates a template or release directory could not be read.
	CodeTemplateRead ErrorCode = "TEMPLATE_READ_FAILED"

	// CodeMarkerNotFound indicates a master template is missing a required marker line.
	CodeMarkerNotFound ErrorCode = "MARKER_NOT_FOUND"

	// CodeInvalidTemplate indicates a template is structurally unusable
	// (for example, a marker line appears more than once).
	CodeInvalidTemplate ErrorCode = "INVALID_TEMPLATE"

	// CodeInvalidConfig indicates the generated pipeline configuration was rejected
	// by the validator.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeDrifted indicates the committed generated configuration differs from
	// what regeneration produces.
	CodeDrifted ErrorCode = "CONFIGURATION_DRIFTED"

	// Resource errors.

	// CodeNotFound indicates a requested resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeConfigLoadFailed indicates the releaseci configuration file could not be loaded.
	CodeConfigLoadFailed ErrorCode = "CONFIG_LOAD_FAILED"

	// Execution errors.

	// CodeExecutionFailed indicates an external command failed.
	CodeExecutionFailed ErrorCode = "EXECUTION_FAILED"

	// CodeIO indicates a filesystem write failed.
	CodeIO ErrorCode = "IO_ERROR"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ExitGeneric is the exit status for errors without a dedicated status.
const ExitGeneric = 1

var exitCodes = map[ErrorCode]int{
	CodeMissingReleaseContext: 20,
	CodeMalformedReference:    21,
	CodeVCSQueryFailed:        22,
	CodeTemplateRead:          23,
	CodeMarkerNotFound:        24,
	CodeInvalidTemplate:       24,
	CodeInvalidConfig:         25,
	CodeDrifted:               26,
}

// ExitCode returns the process exit status associated with the code.
func (c ErrorCode) ExitCode() int {
	if status, ok := exitCodes[c]; ok {
		return status
	}
	return ExitGeneric
}
