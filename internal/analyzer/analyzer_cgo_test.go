//go:build cgo

package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/config"
	"smartdocs/internal/extract"
	"smartdocs/internal/model"
	"smartdocs/internal/syntax"
)

func analyze(t *testing.T, a *Analyzer, req Request) (*model.AnalysisResult, *RunInfo) {
	t.Helper()
	result, info, err := a.Analyze(context.Background(), req)
	require.NoError(t, err)
	return result, info
}

func TestAnalyze_EmptyFileOnly(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"empty.ts": ""})

	result, _ := analyze(t, NewDefault(nil, nil), Request{RootPath: root})

	require.Len(t, result.Files, 1)
	assert.Equal(t, 0, result.Files[0].EntityMetrics.Total)
	assert.Equal(t, 1, result.Summary.TotalFiles)
	assert.Equal(t, 0, result.Summary.TotalEntities)
	assert.Equal(t, 100.0, result.Summary.DocumentationCoverage)
	assert.Empty(t, result.MissingDocs)
}

func TestAnalyze_ParseFailureIsolated(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.ts":  "export function foo() {}\n",
		"b.ts":  "function bad() {}\xff\xfe\n",
		"c.py":  "def helper():\n    \"\"\"Doc.\"\"\"\n    pass\n",
		"d.txt": "ignored",
	})

	result, info := analyze(t, NewDefault(nil, nil), Request{RootPath: root})

	assert.Equal(t, 1, info.ParseFailures)
	assert.Equal(t, 3, info.FilesDiscovered)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.ts", result.Files[0].RelativePath)
	assert.Equal(t, "c.py", result.Files[1].RelativePath)

	var failures []model.MissingDocIssue
	for _, issue := range result.MissingDocs {
		if issue.Name == ParserFailureName {
			failures = append(failures, issue)
		}
	}
	require.Len(t, failures, 1)
	assert.Equal(t, model.SeverityMedium, failures[0].Severity)
	assert.Equal(t, "b.ts", failures[0].File)
	assert.Equal(t, model.LangTypeScript, failures[0].Language)

	// foo stays reported, in file order ahead of the failure.
	require.Len(t, result.MissingDocs, 2)
	assert.Equal(t, "foo", result.MissingDocs[0].Name)
	assert.Equal(t, model.SeverityCritical, result.MissingDocs[0].Severity)
	assert.Equal(t, ParserFailureName, result.MissingDocs[1].Name)
}

func TestAnalyze_TooLargeFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"big.js":   "function big() { return 1 }\n// padding padding padding\n",
		"small.js": "f()",
	})

	cfg := config.DefaultConfig()
	cfg.Analysis.MaxFileSizeBytes = 10

	result, info := analyze(t, NewDefault(cfg, nil), Request{RootPath: root})

	assert.Equal(t, 1, info.ParseFailures)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "small.js", result.Files[0].RelativePath)
	require.Len(t, result.MissingDocs, 1)
	assert.Equal(t, ParserFailureName, result.MissingDocs[0].Name)
	assert.Contains(t, result.MissingDocs[0].Rationale, "exceeds limit")
}

func TestAnalyze_Scenarios(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/a.ts":   "export function foo() {}\n",
		"src/b.ts":   "/** doc */\nfunction bar() {}\n",
		"lib/foo.py": "class Foo:\n    def bar(self): pass\n",
	})

	result, _ := analyze(t, NewDefault(nil, nil), Request{RootPath: root})

	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, map[model.Language]int{
		model.LangTypeScript: 2,
		model.LangJavaScript: 0,
		model.LangPython:     1,
	}, result.Summary.Languages)
	assert.Equal(t, 4, result.Summary.TotalEntities)
	assert.Equal(t, 1, result.Summary.DocumentedEntities)
	assert.Equal(t, 25.0, result.Summary.DocumentationCoverage)

	names := make([]string, 0, len(result.MissingDocs))
	for _, issue := range result.MissingDocs {
		names = append(names, issue.Name)
	}
	// lib/ sorts before src/.
	assert.Equal(t, []string{"Foo", "bar", "foo"}, names)
	assert.Equal(t, model.SeverityCritical, result.MissingDocs[0].Severity)
	assert.Equal(t, model.SeverityMedium, result.MissingDocs[1].Severity)
	assert.Equal(t, model.SeverityCritical, result.MissingDocs[2].Severity)

	require.NotEmpty(t, result.Suggestions)
	assert.Equal(t, model.SeverityCritical, result.Suggestions[0].Impact)
}

func TestAnalyze_Idempotent(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		body := "export function " + name + "() {\n"
		for j := 0; j < i; j++ {
			body += "  if (x) { y() }\n"
		}
		files["pkg/"+name+".ts"] = body + "}\n"
	}
	writeFiles(t, root, files)

	cfg := config.DefaultConfig()
	cfg.Analysis.Workers = 4
	a := NewDefault(cfg, nil)

	first, info1 := analyze(t, a, Request{RootPath: root})
	second, info2 := analyze(t, a, Request{RootPath: root})

	assert.Equal(t, first, second)
	assert.NotEqual(t, info1.RunID, info2.RunID)
	assert.Len(t, first.Files, 8)
	for i, f := range first.Files {
		assert.Equal(t, "pkg/"+string(rune('a'+i))+".ts", f.RelativePath)
	}
}

func TestAnalyze_MaxFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.js": "function a() {}",
		"b.js": "function b() {}",
		"c.js": "function c() {}",
	})

	result, info := analyze(t, NewDefault(nil, nil), Request{RootPath: root, MaxFiles: 2})

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.js", result.Files[0].RelativePath)
	assert.Equal(t, "b.js", result.Files[1].RelativePath)
	assert.True(t, info.Truncated)
	assert.Equal(t, 2, info.MaxFiles)
}

func TestAnalyze_ExcludesAndProfile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"keep.ts":                 "function keep() {}",
		"generated/gen.ts":        "function gen() {}",
		"vendor/lib.js":           "function lib() {}",
		"node_modules/dep/x.js":   "function x() {}",
		config.ProfileFile:        "exclude = [\"**/vendor/**\"]\n",
		"nested/deep/keep2.py":    "def keep2():\n    pass\n",
		"nested/deep/.cache/c.py": "def c():\n    pass\n",
	})

	result, _ := analyze(t, NewDefault(nil, nil), Request{
		RootPath:        root,
		ExcludePatterns: []string{"**/generated/**"},
	})

	var rels []string
	for _, f := range result.Files {
		rels = append(rels, f.RelativePath)
	}
	assert.Equal(t, []string{"keep.ts", "nested/deep/keep2.py"}, rels)
}

func TestAnalyze_BadProfileIgnored(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py":             "def a():\n    pass\n",
		config.ProfileFile: "max_files = [",
	})

	result, _ := analyze(t, NewDefault(nil, nil), Request{RootPath: root})
	assert.Len(t, result.Files, 1)
}

func TestAnalyze_LanguageWithoutGrammarSkipped(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py": "def a():\n    pass\n",
		"b.ts": "function b() {}",
	})

	reg := syntax.NewRegistry()
	reg.Register(model.LangPython, syntax.Grammar{Default: python.GetLanguage()})

	result, info := analyze(t, New(reg, extract.New(), nil, nil), Request{RootPath: root})

	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.py", result.Files[0].RelativePath)
	assert.Equal(t, []model.Language{model.LangTypeScript}, info.SkippedLanguages)
	assert.Equal(t, 1, info.FilesDiscovered)
}

func TestAnalyze_TildeRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFiles(t, home, map[string]string{"proj/a.py": "def a():\n    pass\n"})

	result, _ := analyze(t, NewDefault(nil, nil), Request{RootPath: "~/proj"})
	assert.Equal(t, filepath.Join(home, "proj"), result.Summary.RootPath)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(home, "proj", "a.py"), result.Files[0].Path)
}

func TestAnalyze_UnreadableChildSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"ok.ts":       "function ok() {}",
		"locked/x.ts": "function x() {}",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	result, _ := analyze(t, NewDefault(nil, nil), Request{RootPath: root})
	require.Len(t, result.Files, 1)
	assert.Equal(t, "ok.ts", result.Files[0].RelativePath)
}
