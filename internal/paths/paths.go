// Package paths resolves analysis roots and renders file paths for reports.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoot turns a user-supplied root into a clean absolute path.
// A leading "~/" is expanded to the home directory. Symlinks are not resolved.
func ResolveRoot(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	return filepath.Abs(root)
}

// Relative returns path relative to root with forward slashes.
// If path cannot be made relative it is returned normalized.
func Relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return NormalizePath(path)
	}
	return NormalizePath(rel)
}

// NormalizePath converts backslashes to forward slashes.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}
