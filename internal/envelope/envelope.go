// Package envelope provides a standardized response wrapper for structured
// tool and CLI output. Every payload is wrapped in a consistent envelope that
// carries run metadata, truncation details and warnings.
package envelope

import "smartdocs/internal/errors"

// Truncation describes result trimming.
type Truncation struct {
	IsTruncated bool   `json:"isTruncated" yaml:"isTruncated" toml:"isTruncated"`
	Shown       int    `json:"shown,omitempty" yaml:"shown,omitempty" toml:"shown,omitempty"`
	Total       int    `json:"total,omitempty" yaml:"total,omitempty" toml:"total,omitempty"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty" toml:"reason,omitempty"` // "max-files"
}

// Meta holds response metadata.
type Meta struct {
	RunID      string      `json:"runId,omitempty" yaml:"runId,omitempty" toml:"runId,omitempty"`
	DurationMs int64       `json:"durationMs" yaml:"durationMs" toml:"durationMs"`
	Truncation *Truncation `json:"truncation,omitempty" yaml:"truncation,omitempty" toml:"truncation,omitempty"`
}

// Warning represents a non-fatal issue.
type Warning struct {
	Code    string `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

// ErrorInfo is the serialized form of a failed run.
type ErrorInfo struct {
	Code           string             `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Message        string             `json:"message" yaml:"message" toml:"message"`
	Details        interface{}        `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty" toml:"suggestedFixes,omitempty"`
}

// Response is the standard envelope for structured output.
type Response struct {
	SchemaVersion string      `json:"schemaVersion" yaml:"schemaVersion" toml:"schemaVersion"`
	Data          interface{} `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`
	Meta          *Meta       `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Warnings      []Warning   `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"
