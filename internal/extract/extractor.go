//go:build cgo

// Package extract finds documentable entities in tree-sitter syntax trees.
package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"smartdocs/internal/complexity"
	"smartdocs/internal/model"
	"smartdocs/internal/syntax"
)

// nameFields are the fields that may hold an entity's name, in lookup order.
var nameFields = []string{"name", "property"}

var identifierTypes = map[string]bool{
	"identifier":                  true,
	"property_identifier":         true,
	"type_identifier":             true,
	"private_property_identifier": true,
}

// Extractor walks syntax trees with per-language rule tables.
type Extractor struct {
	tables map[model.Language]Table
}

// New creates an extractor with the built-in language tables.
func New() *Extractor {
	return &Extractor{tables: DefaultTables()}
}

// Register adds or replaces the table for a language.
func (e *Extractor) Register(lang model.Language, t Table) {
	e.tables[lang] = t
}

// Supports reports whether a table is registered for lang.
func (e *Extractor) Supports(lang model.Language) bool {
	_, ok := e.tables[lang]
	return ok
}

// File extracts the entities of a parsed file.
func (e *Extractor) File(tree *syntax.Tree, lang model.Language, relPath string) []model.CodeEntity {
	return e.Extract(tree.Root(), tree.Source(), lang, relPath)
}

// Extract walks root depth-first in pre-order and returns the entities found,
// in traversal order.
func (e *Extractor) Extract(root *sitter.Node, src []byte, lang model.Language, relPath string) []model.CodeEntity {
	table, ok := e.tables[lang]
	if !ok || root == nil {
		return nil
	}

	w := &walker{table: table, src: src, lang: lang, relPath: relPath}
	w.visit(root, nil)
	return w.entities
}

type walker struct {
	table    Table
	src      []byte
	lang     model.Language
	relPath  string
	entities []model.CodeEntity
}

func (w *walker) visit(node, parent *sitter.Node) {
	if kind, ok := w.table.resolve(node, parent); ok {
		if entity, ok := w.entity(node, kind); ok {
			w.entities = append(w.entities, entity)
		}
	}

	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if child != nil {
			w.visit(child, node)
		}
	}
}

func (w *walker) entity(node *sitter.Node, kind model.EntityType) (model.CodeEntity, bool) {
	name := nodeName(node, w.src)
	if name == "" {
		return model.CodeEntity{}, false
	}

	start := node.StartPoint()
	location := model.CodeLocation{
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
	}

	return model.CodeEntity{
		Name:            name,
		Type:            kind,
		Language:        w.lang,
		Location:        location,
		HasDoc:          w.table.HasDoc(node, w.src),
		Exported:        w.table.Exported(node, w.src),
		ComplexityScore: complexity.Score(node.Content(w.src)),
		Summary:         fmt.Sprintf("%s:%d", w.relPath, location.Line),
	}, true
}

// nodeName resolves the declared name of node, falling back to its first
// identifier-like child.
func nodeName(node *sitter.Node, src []byte) string {
	for _, field := range nameFields {
		if child := node.ChildByFieldName(field); child != nil {
			if name := strings.TrimSpace(child.Content(src)); name != "" {
				return name
			}
		}
	}

	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		child := node.NamedChild(i)
		if child != nil && identifierTypes[child.Type()] {
			return strings.TrimSpace(child.Content(src))
		}
	}
	return ""
}
