// Package complexity computes the approximate complexity score used to rank
// undocumented entities.
//
// The score is lexical: it counts lines and branch keywords in the raw entity
// text. Keywords inside strings or comments are counted too. It is a ranking
// signal, not a cyclomatic metric.
package complexity

import (
	"regexp"
	"strings"
)

// BranchWeight is the score added for each branch keyword match.
const BranchWeight = 3

var branchPattern = regexp.MustCompile(`if\s*\(|if\s+[^(]|switch\s*\(|for\s*\(|while\s*\(|case\s+`)

// LineCount returns the number of lines in text, splitting on "\n" and "\r\n".
// Empty text counts as one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// BranchCount returns the number of non-overlapping branch keyword matches in text.
func BranchCount(text string) int {
	return len(branchPattern.FindAllStringIndex(text, -1))
}

// Score returns LineCount(text) + BranchWeight*BranchCount(text).
func Score(text string) int {
	return LineCount(text) + BranchWeight*BranchCount(text)
}
