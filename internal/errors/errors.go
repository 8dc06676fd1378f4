package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedLanguage indicates no grammar is registered for a language
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ParseFailure indicates a single file could not be parsed
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// NotADirectory indicates the analysis root is missing or not a directory
	NotADirectory ErrorCode = "NOT_A_DIRECTORY"
	// InvalidArgument indicates a request was rejected before any file I/O
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ResourceNotFound indicates a named resource (tool, file) doesn't exist
	ResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	// Cancelled indicates the caller cancelled the run
	Cancelled ErrorCode = "CANCELLED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditInput suggests correcting the request
	EditInput FixActionType = "edit-input"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// SmartDocsError represents an error with code, message, and suggestions
type SmartDocsError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a SmartDocsError with the default fixes for its code
func New(code ErrorCode, message string, cause error) *SmartDocsError {
	return &SmartDocsError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *SmartDocsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SmartDocsError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *SmartDocsError) WithDetails(details interface{}) *SmartDocsError {
	e.Details = details
	return e
}

// NewInvalidArgumentError reports a bad request parameter
func NewInvalidArgumentError(param, detail string) *SmartDocsError {
	msg := fmt.Sprintf("invalid argument %q", param)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return New(InvalidArgument, msg, nil).WithDetails(map[string]string{"param": param})
}

// NewResourceNotFoundError reports a missing named resource
func NewResourceNotFoundError(kind, name string) *SmartDocsError {
	return New(ResourceNotFound, fmt.Sprintf("%s not found: %s", kind, name), nil)
}

// NewOperationError wraps an unexpected failure of an operation
func NewOperationError(op string, err error) *SmartDocsError {
	return New(InternalError, fmt.Sprintf("%s failed", op), err)
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	NotADirectory: {
		{
			Type:        EditInput,
			Description: "Pass an existing directory as rootPath",
		},
	},
	InvalidArgument: {
		{
			Type:        RunCommand,
			Command:     "smartdocs analyze --help",
			Safe:        true,
			Description: "Check accepted parameters and ranges",
		},
	},
	UnsupportedLanguage: {
		{
			Type:        RunCommand,
			Command:     "smartdocs version",
			Safe:        true,
			Description: "Check whether this build includes tree-sitter grammars (CGO)",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

// CodeOf returns the code of the first SmartDocsError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var sd *SmartDocsError
	if stderrors.As(err, &sd) {
		return sd.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var sd *SmartDocsError
	return stderrors.As(err, &sd) && sd.Code == code
}
