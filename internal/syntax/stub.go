//go:build !cgo

package syntax

import (
	"context"

	"smartdocs/internal/model"
)

// Registry is a stub for non-CGO builds.
type Registry struct{}

// NewRegistry returns an empty stub registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a stub registry that supports no language.
func DefaultRegistry() *Registry {
	return &Registry{}
}

// Supports always returns false without CGO.
func (r *Registry) Supports(lang model.Language) bool {
	return false
}

// Tree is a stub for non-CGO builds.
type Tree struct{}

// Close is a no-op.
func (t *Tree) Close() {}

// Parse always fails with ErrNoCGO.
func (r *Registry) Parse(ctx context.Context, source []byte, lang model.Language, dialect Dialect) (*Tree, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
