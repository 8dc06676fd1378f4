package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ProfileFile is the optional per-project settings file at an analysis root.
const ProfileFile = ".smartdocs.toml"

// Profile holds project defaults for runs rooted at its directory.
type Profile struct {
	// Exclude holds glob patterns applied before request patterns.
	Exclude []string `toml:"exclude"`
	// MaxFiles applies when the request sets no cap.
	MaxFiles int `toml:"max_files"`
}

// LoadProfile reads <root>/.smartdocs.toml. A missing file yields nil, nil.
func LoadProfile(root string) (*Profile, error) {
	path := filepath.Join(root, ProfileFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile's file cap.
func (p *Profile) Validate() error {
	if p.MaxFiles < 0 || p.MaxFiles > MaxFilesLimit {
		return &ConfigError{Field: "max_files", Message: fmt.Sprintf("must be between 0 and %d", MaxFilesLimit)}
	}
	return nil
}

// Save writes the profile to <root>/.smartdocs.toml.
func (p *Profile) Save(root string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, ProfileFile), data, 0o644)
}

// Merge combines profile, config and request settings for one run.
// Exclude patterns accumulate in that order; the first non-zero file cap wins,
// checking the request, then the profile, then the config default.
func Merge(cfg *Config, p *Profile, requestMaxFiles int, requestExcludes []string) (int, []string) {
	var excludes []string
	maxFiles := requestMaxFiles

	if cfg != nil {
		excludes = append(excludes, cfg.Analysis.ExcludePatterns...)
	}
	if p != nil {
		excludes = append(excludes, p.Exclude...)
		if maxFiles == 0 {
			maxFiles = p.MaxFiles
		}
	}
	excludes = append(excludes, requestExcludes...)
	if maxFiles == 0 && cfg != nil {
		maxFiles = cfg.Analysis.DefaultMaxFiles
	}
	return maxFiles, excludes
}
