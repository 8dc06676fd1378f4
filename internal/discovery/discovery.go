// Package discovery finds the source files of an analysis run.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"smartdocs/internal/model"
	"smartdocs/internal/paths"
	"smartdocs/internal/slogutil"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".next":        true,
	".cache":       true,
}

// IsSkippedDir reports whether a directory name is on the denylist.
func IsSkippedDir(name string) bool {
	return skippedDirs[name]
}

// NotADirectoryError is returned when the analysis root is missing or is not a directory.
type NotADirectoryError struct {
	Path string
	Err  error
}

func (e *NotADirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not a directory: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("not a directory: %s", e.Path)
}

func (e *NotADirectoryError) Unwrap() error {
	return e.Err
}

// SourceFile is a discovered file with its content.
type SourceFile struct {
	// Path is absolute.
	Path string
	// RelativePath is relative to the root, with forward slashes.
	RelativePath string
	Language     model.Language
	Size         int64
	Content      string
	// TooLarge is set instead of Content when the file exceeds MaxFileSize.
	TooLarge bool
}

// Options controls a discovery walk.
type Options struct {
	// Root must be an absolute directory path.
	Root string
	// MaxFiles stops the walk once that many files are collected. Zero means no limit.
	MaxFiles int
	// MaxFileSize leaves the content of larger files unread. Zero means no limit.
	MaxFileSize int64
	// Exclude is called with absolute paths of files and directories; true skips them.
	Exclude func(path string) bool
	Logger  *slog.Logger
}

// Result is the outcome of a discovery walk.
type Result struct {
	Files []SourceFile
	// Truncated is set when the walk stopped at MaxFiles with at least one
	// more source file left unvisited.
	Truncated bool
}

// Discover walks Root in lexical order and returns the supported source files.
// Unreadable entries below the root are logged and skipped.
func Discover(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, &NotADirectoryError{Path: opts.Root, Err: err}
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: opts.Root}
	}

	files := make([]SourceFile, 0)
	truncated := false
	walkErr := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == opts.Root {
			return err
		}
		if err != nil {
			logger.Warn("Skipping unreadable path", "path", path, "error", err.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.Exclude != nil && opts.Exclude(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if IsSkippedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lang, ok := model.LanguageFromPath(path)
		if !ok {
			return nil
		}
		if opts.MaxFiles > 0 && len(files) >= opts.MaxFiles {
			truncated = true
			return filepath.SkipAll
		}

		file, err := readSource(opts, path, lang)
		if err != nil {
			logger.Warn("Skipping unreadable file", "path", path, "error", err.Error())
			return nil
		}
		files = append(files, file)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return &Result{Files: files, Truncated: truncated}, nil
}

func readSource(opts Options, path string, lang model.Language) (SourceFile, error) {
	file := SourceFile{
		Path:         path,
		RelativePath: paths.Relative(opts.Root, path),
		Language:     lang,
	}

	info, err := os.Stat(path)
	if err != nil {
		return file, err
	}
	file.Size = info.Size()

	if opts.MaxFileSize > 0 && file.Size > opts.MaxFileSize {
		file.TooLarge = true
		return file, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return file, err
	}
	file.Content = string(data)
	return file, nil
}
