//go:build !cgo

// Package extract finds documentable entities in tree-sitter syntax trees.
// This stub is used when CGO is not available.
package extract

import (
	"smartdocs/internal/model"
	"smartdocs/internal/syntax"
)

// Extractor is a stub for non-CGO builds.
type Extractor struct{}

// New returns a stub extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports always returns false without CGO.
func (e *Extractor) Supports(lang model.Language) bool {
	return false
}

// File returns no entities without CGO.
func (e *Extractor) File(tree *syntax.Tree, lang model.Language, relPath string) []model.CodeEntity {
	return nil
}
