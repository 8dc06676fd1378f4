//go:build cgo

package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"smartdocs/internal/model"
)

// Rule maps a set of node types to an entity type.
type Rule struct {
	// Types are the grammar node types the rule applies to.
	Types []string
	// Match optionally narrows the rule beyond the node type.
	Match func(node *sitter.Node) bool
	// Resolve decides the entity type, given the node and its parent.
	Resolve func(node, parent *sitter.Node) model.EntityType
}

func (r Rule) applies(node *sitter.Node) bool {
	nodeType := node.Type()
	for _, t := range r.Types {
		if t == nodeType {
			return r.Match == nil || r.Match(node)
		}
	}
	return false
}

// Table holds everything the extractor needs to know about one language.
type Table struct {
	// Rules are tried in order; the first applicable rule wins.
	Rules []Rule
	// HasDoc reports whether the entity node carries documentation.
	HasDoc func(node *sitter.Node, src []byte) bool
	// Exported reports whether the entity is visible outside its module.
	Exported func(node *sitter.Node, src []byte) bool
}

func (t Table) resolve(node, parent *sitter.Node) (model.EntityType, bool) {
	for _, r := range t.Rules {
		if r.applies(node) {
			return r.Resolve(node, parent), true
		}
	}
	return "", false
}

func always(kind model.EntityType) func(node, parent *sitter.Node) model.EntityType {
	return func(node, parent *sitter.Node) model.EntityType {
		return kind
	}
}

// functionLiteralTypes are the initializer node types that turn a field or
// variable into a function-like entity.
var functionLiteralTypes = map[string]bool{
	"arrow_function":      true,
	"function":            true,
	"function_expression": true,
	"generator_function":  true,
}

func hasFunctionValue(node *sitter.Node) bool {
	value := node.ChildByFieldName("value")
	return value != nil && functionLiteralTypes[value.Type()]
}

func methodInClassBody(node, parent *sitter.Node) model.EntityType {
	if parent != nil && parent.Type() == "class_body" {
		return model.EntityMethod
	}
	return model.EntityFunction
}

var cFamilyRules = []Rule{
	{
		Types:   []string{"function_declaration", "generator_function_declaration"},
		Resolve: always(model.EntityFunction),
	},
	{
		Types:   []string{"class_declaration", "abstract_class_declaration"},
		Resolve: always(model.EntityClass),
	},
	{
		Types:   []string{"method_definition"},
		Resolve: always(model.EntityMethod),
	},
	{
		Types:   []string{"public_field_definition", "field_definition", "variable_declarator"},
		Match:   hasFunctionValue,
		Resolve: methodInClassBody,
	},
}

// pythonFunctionKind treats functions defined in a class body as methods,
// looking through decorators.
func pythonFunctionKind(node, parent *sitter.Node) model.EntityType {
	p := parent
	if p != nil && p.Type() == "decorated_definition" {
		p = p.Parent()
	}
	if p != nil && p.Type() == "block" {
		if owner := p.Parent(); owner != nil && owner.Type() == "class_definition" {
			return model.EntityMethod
		}
	}
	return model.EntityFunction
}

var pythonRules = []Rule{
	{
		Types:   []string{"function_definition"},
		Resolve: pythonFunctionKind,
	},
	{
		Types:   []string{"class_definition"},
		Resolve: always(model.EntityClass),
	},
}

// DefaultTables returns the built-in language tables.
func DefaultTables() map[model.Language]Table {
	cFamily := Table{
		Rules:    cFamilyRules,
		HasDoc:   cFamilyHasDoc,
		Exported: cFamilyExported,
	}
	return map[model.Language]Table{
		model.LangTypeScript: cFamily,
		model.LangJavaScript: cFamily,
		model.LangPython: {
			Rules:    pythonRules,
			HasDoc:   pythonHasDoc,
			Exported: pythonExported,
		},
	}
}
