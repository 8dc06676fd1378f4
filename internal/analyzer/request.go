package analyzer

import (
	"strings"

	"smartdocs/internal/config"
	"smartdocs/internal/discovery"
	"smartdocs/internal/errors"
)

// Request describes one analysis run.
type Request struct {
	// RootPath is the directory to analyze. "~" is expanded.
	RootPath string `json:"rootPath"`
	// MaxFiles caps discovered files; 0 leaves the cap to the profile and config.
	MaxFiles int `json:"maxFiles,omitempty"`
	// ExcludePatterns are globs matched against absolute paths.
	ExcludePatterns []string `json:"excludePatterns,omitempty"`
}

// Validate rejects a request before any file I/O.
func (r Request) Validate() error {
	if strings.TrimSpace(r.RootPath) == "" {
		return errors.NewInvalidArgumentError("rootPath", "must not be empty")
	}
	if r.MaxFiles < 0 || r.MaxFiles > config.MaxFilesLimit {
		return errors.NewInvalidArgumentError("maxFiles", "must be between 1 and 5000")
	}
	for _, p := range r.ExcludePatterns {
		if _, err := discovery.GlobToRegexp(p); err != nil {
			return errors.NewInvalidArgumentError("excludePatterns", err.Error())
		}
	}
	return nil
}
