//go:build cgo

package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"smartdocs/internal/model"
)

// Grammar holds the tree-sitter languages used for one source language.
// JSX is optional; when nil the Default grammar is used for every dialect.
type Grammar struct {
	Default *sitter.Language
	JSX     *sitter.Language
}

func (g Grammar) forDialect(d Dialect) *sitter.Language {
	if d == DialectJSX && g.JSX != nil {
		return g.JSX
	}
	return g.Default
}

// Registry maps languages to grammars.
// Register must not be called concurrently with Parse.
type Registry struct {
	grammars map[model.Language]Grammar
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{grammars: make(map[model.Language]Grammar)}
}

// DefaultRegistry creates a registry with the built-in TypeScript, JavaScript and Python grammars.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(model.LangTypeScript, Grammar{Default: typescript.GetLanguage(), JSX: tsx.GetLanguage()})
	r.Register(model.LangJavaScript, Grammar{Default: javascript.GetLanguage()})
	r.Register(model.LangPython, Grammar{Default: python.GetLanguage()})
	return r
}

// Register adds or replaces the grammar for a language.
func (r *Registry) Register(lang model.Language, g Grammar) {
	r.grammars[lang] = g
}

// Supports reports whether a grammar is registered for lang.
func (r *Registry) Supports(lang model.Language) bool {
	g, ok := r.grammars[lang]
	return ok && g.Default != nil
}

// Tree is a parsed source file. Callers must Close it.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Root returns the root node of the tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// Parse parses source with the grammar registered for lang.
func (r *Registry) Parse(ctx context.Context, source []byte, lang model.Language, dialect Dialect) (*Tree, error) {
	g, ok := r.grammars[lang]
	if !ok || g.Default == nil {
		return nil, &UnsupportedLanguageError{Language: lang}
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.forDialect(dialect))

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter produced no tree")
	}

	return &Tree{tree: tree, source: source}, nil
}

// IsAvailable reports whether tree-sitter parsing is compiled in.
func IsAvailable() bool {
	return true
}
