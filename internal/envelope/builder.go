package envelope

import (
	stderrors "errors"
	"time"

	"smartdocs/internal/errors"
)

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
		},
	}
}

// Data sets the payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

func (b *Builder) meta() *Meta {
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	return b.resp.Meta
}

// Run records the run ID and elapsed time.
func (b *Builder) Run(runID string, elapsed time.Duration) *Builder {
	m := b.meta()
	m.RunID = runID
	m.DurationMs = elapsed.Milliseconds()
	return b
}

// WithTruncation adds truncation metadata.
func (b *Builder) WithTruncation(truncated bool, shown, total int, reason string) *Builder {
	if !truncated {
		return b
	}

	b.meta().Truncation = &Truncation{
		IsTruncated: true,
		Shown:       shown,
		Total:       total,
		Reason:      reason,
	}
	return b
}

// Warning adds a warning message.
func (b *Builder) Warning(msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Message: msg})
	return b
}

// WarningWithCode adds a warning with a code.
func (b *Builder) WarningWithCode(code, msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: msg})
	return b
}

// Error sets the error field. Coded errors keep their code and details.
func (b *Builder) Error(err error) *Builder {
	if err == nil {
		return b
	}

	info := &ErrorInfo{Message: err.Error()}
	var sde *errors.SmartDocsError
	if stderrors.As(err, &sde) {
		info.Code = string(sde.Code)
		info.Message = sde.Message
		info.Details = sde.Details
		info.SuggestedFixes = sde.SuggestedFixes
	}
	b.resp.Error = info
	return b
}

// Build returns the completed response envelope.
func (b *Builder) Build() *Response {
	return b.resp
}
