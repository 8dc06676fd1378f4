// Package syntax turns source text into tree-sitter concrete syntax trees.
//
// Grammars live in an explicitly constructed Registry. A Registry is read-only
// once built and may be shared by concurrent analysis runs; every Parse call
// uses its own parser.
package syntax

import (
	"errors"
	"fmt"

	"smartdocs/internal/model"
)

// ErrNoCGO is returned when parsing is unavailable because the binary was built without CGO.
var ErrNoCGO = errors.New("syntax parsing requires CGO (tree-sitter)")

// Dialect selects a grammar variant within a language.
type Dialect int

const (
	// DialectDefault is the plain grammar of a language.
	DialectDefault Dialect = iota
	// DialectJSX is the JSX-aware variant (used for .tsx files).
	DialectJSX
)

// DialectForPath returns the dialect to use for a file.
func DialectForPath(path string) Dialect {
	if model.IsJSX(path) {
		return DialectJSX
	}
	return DialectDefault
}

// UnsupportedLanguageError is returned when no grammar is registered for a language.
type UnsupportedLanguageError struct {
	Language model.Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}
