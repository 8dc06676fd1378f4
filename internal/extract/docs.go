//go:build cgo

package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// scanState is the state of the backward doc-comment scan.
type scanState int

const (
	scanning scanState = iota
	foundDocBlock
	plainCommentRun
	stopped
)

// step advances the scan by one previous sibling.
func step(state scanState, sibling *sitter.Node, src []byte) scanState {
	if sibling.Type() == "comment" {
		text := strings.TrimSpace(sibling.Content(src))
		switch {
		case strings.HasPrefix(text, "/**"):
			return foundDocBlock
		case strings.HasPrefix(text, "//"):
			return plainCommentRun
		default:
			return stopped
		}
	}
	if sibling.IsMissing() {
		return state
	}
	return stopped
}

// scanDocComment walks backward over the named siblings preceding anchor
// looking for a /** block. Line comments are skipped; anything else ends the scan.
func scanDocComment(anchor *sitter.Node, src []byte) bool {
	state := scanning
	for sibling := anchor.PrevNamedSibling(); sibling != nil; sibling = sibling.PrevNamedSibling() {
		state = step(state, sibling, src)
		switch state {
		case foundDocBlock:
			return true
		case stopped:
			return false
		}
	}
	return false
}

// docAnchors returns the nodes whose preceding siblings may hold the doc
// comment of an entity: the node itself, the declaration statement of a
// variable declarator, and an enclosing export wrapper.
func docAnchors(node *sitter.Node) []*sitter.Node {
	anchors := []*sitter.Node{node}
	outer := node
	if node.Type() == "variable_declarator" {
		if decl := node.Parent(); decl != nil && isVariableStatement(decl.Type()) {
			anchors = append(anchors, decl)
			outer = decl
		}
	}
	if wrapper := outer.Parent(); wrapper != nil && strings.HasPrefix(wrapper.Type(), "export") {
		anchors = append(anchors, wrapper)
	}
	return anchors
}

func isVariableStatement(nodeType string) bool {
	return nodeType == "lexical_declaration" || nodeType == "variable_declaration"
}

func cFamilyHasDoc(node *sitter.Node, src []byte) bool {
	for _, anchor := range docAnchors(node) {
		if scanDocComment(anchor, src) {
			return true
		}
	}
	return false
}

// pythonHasDoc reports whether the first statement of the body is a string
// literal expression (a docstring). Comments ahead of the docstring are
// skipped.
func pythonHasDoc(node *sitter.Node, src []byte) bool {
	body := node.ChildByFieldName("body")
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			return false
		}
		switch stmt.NamedChild(0).Type() {
		case "string", "concatenated_string":
			return true
		}
		return false
	}
	return false
}
