//go:build cgo

package extract

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// commonJSExport is matched against a variable initializer's text. It is a
// textual heuristic and does not resolve re-exports.
var commonJSExport = regexp.MustCompile(`module\.exports|exports\.`)

func cFamilyExported(node *sitter.Node, src []byte) bool {
	for n := node; n != nil; n = n.Parent() {
		if strings.HasPrefix(n.Type(), "export") {
			return true
		}
	}
	if node.Type() == "variable_declarator" {
		value := node.ChildByFieldName("value")
		return value != nil && commonJSExport.MatchString(value.Content(src))
	}
	if prev := node.PrevSibling(); prev != nil && prev.Type() == "export" {
		return true
	}
	return false
}

// pythonExported reports whether the definition sits at module level.
// A decorated definition counts as module level when its decorator wrapper
// is. Nested definitions are never exported.
func pythonExported(node *sitter.Node, src []byte) bool {
	defining := node
	if parent := node.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		defining = parent
	}
	parent := defining.Parent()
	return parent != nil && parent.Type() == "module"
}
