package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"smartdocs/internal/model"
)

func entity(name string, typ model.EntityType, line int, hasDoc, exported bool) model.CodeEntity {
	return model.CodeEntity{
		Name:     name,
		Type:     typ,
		Language: model.LangTypeScript,
		Location: model.CodeLocation{Line: line, Column: 1},
		HasDoc:   hasDoc,
		Exported: exported,
		Summary:  fmt.Sprintf("src/a.ts:%d", line),
	}
}

func sampleResult() *model.AnalysisResult {
	foo := entity("foo", model.EntityFunction, 1, false, true)
	bar := entity("bar", model.EntityFunction, 4, true, false)
	helper := entity("helper", model.EntityFunction, 9, false, false)

	return &model.AnalysisResult{
		Summary: model.AnalysisSummary{
			RootPath:              "/repo",
			TotalFiles:            2,
			Languages:             map[model.Language]int{model.LangTypeScript: 2, model.LangJavaScript: 0, model.LangPython: 0},
			TotalEntities:         3,
			DocumentedEntities:    1,
			UndocumentedEntities:  2,
			DocumentationCoverage: 33.33,
		},
		Files: []model.FileAnalysis{
			{
				Path: "/repo/src/a.ts", RelativePath: "src/a.ts", Language: model.LangTypeScript, LinesOfCode: 10,
				EntityMetrics: model.EntityMetrics{Total: 3, Documented: 1, Undocumented: 2, Functions: 3},
				Entities:      []model.CodeEntity{foo, bar, helper},
			},
			{
				Path: "/repo/src/empty.ts", RelativePath: "src/empty.ts", Language: model.LangTypeScript, LinesOfCode: 1,
				Entities: []model.CodeEntity{},
			},
		},
		MissingDocs: []model.MissingDocIssue{
			{CodeEntity: foo, Severity: model.SeverityCritical, Rationale: "missing doc: function foo, externally visible", File: "src/a.ts"},
			{CodeEntity: helper, Severity: model.SeverityLow, Rationale: "missing doc: function helper", File: "src/a.ts"},
		},
		Suggestions: []model.Suggestion{
			{Title: "Prioritize core API documentation", Description: "Document exports first.", Impact: model.SeverityCritical, Targets: []string{"foo (line 1)"}},
			{Title: "Establish a documentation baseline", Description: "Coverage is low.", Impact: model.SeverityMedium, Targets: []string{}},
		},
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleResult())

	assert.True(t, strings.HasPrefix(got, "# Codebase Analysis Summary\n"))
	assert.Contains(t, got, "- Root path: /repo\n")
	assert.Contains(t, got, "- Documentation coverage: 33.33%\n")
	assert.Contains(t, got, "- typescript: 2\n- javascript: 0\n- python: 0\n")
	assert.Contains(t, got, "## Top files with missing docs\n- /repo/src/a.ts (2/3 entities undocumented)\n- /repo/src/empty.ts (0/0 entities undocumented)")
}

func TestSummary_NoFiles(t *testing.T) {
	got := Summary(&model.AnalysisResult{Summary: model.AnalysisSummary{DocumentationCoverage: 100}})
	assert.Contains(t, got, "- Documentation coverage: 100%")
	assert.True(t, strings.HasSuffix(got, "## Top files with missing docs\n- None"))
}

func TestSummary_TopFilesCapped(t *testing.T) {
	result := &model.AnalysisResult{}
	for i := 0; i < 8; i++ {
		result.Files = append(result.Files, model.FileAnalysis{
			Path:          fmt.Sprintf("/r/f%d.ts", i),
			EntityMetrics: model.EntityMetrics{Total: i, Undocumented: i},
		})
	}

	got := Summary(result)
	assert.Equal(t, 5, strings.Count(got, "entities undocumented"))
	assert.Contains(t, got, "- /r/f7.ts (7/7")
	assert.NotContains(t, got, "/r/f2.ts")
	// Input order is untouched.
	assert.Equal(t, "/r/f0.ts", result.Files[0].Path)
}

func TestMissingDocs(t *testing.T) {
	got := MissingDocs(sampleResult())

	want := "# Missing Documentation\n\n" +
		"## CRITICAL (1)\n\n" +
		"| Entity | Location | Rationale |\n| --- | --- | --- |\n" +
		"| foo | src/a.ts:1 | missing doc: function foo, externally visible |\n\n" +
		"## LOW (1)\n\n" +
		"| Entity | Location | Rationale |\n| --- | --- | --- |\n" +
		"| helper | src/a.ts:9 | missing doc: function helper |"
	assert.Equal(t, want, got)
}

func TestMissingDocs_None(t *testing.T) {
	got := MissingDocs(&model.AnalysisResult{})
	assert.Equal(t, "# Missing Documentation\n\n- No missing documentation detected.", got)
}

func TestMissingDocs_LocationFallback(t *testing.T) {
	result := &model.AnalysisResult{MissingDocs: []model.MissingDocIssue{{
		CodeEntity: model.CodeEntity{Name: "a|b", Location: model.CodeLocation{Line: 7}},
		Severity:   model.SeverityMedium,
	}}}

	got := MissingDocs(result)
	assert.Contains(t, got, `| a\|b | line 7 |`)
	assert.Contains(t, got, "## MEDIUM (1)")
}

func TestSuggestions(t *testing.T) {
	got := Suggestions(sampleResult())

	want := "# Documentation Improvement Suggestions\n\n" +
		"- **Prioritize core API documentation** (critical)\n  Document exports first.\n  - foo (line 1)\n" +
		"- **Establish a documentation baseline** (medium)\n  Coverage is low.\n  - No targets"
	assert.Equal(t, want, got)

	assert.Equal(t, "# Documentation Improvement Suggestions\n\n- No further suggestions.", Suggestions(&model.AnalysisResult{}))
}

func TestDocumentation(t *testing.T) {
	got := Documentation(sampleResult())

	sections := []string{"# Smart Docs Report", "## Overview", "## Missing Documentation", "## Suggestions", "## File Details"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(got, s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}

	assert.Contains(t, got, "| typescript | 2 |\n| javascript | 0 |\n| python | 0 |\n")
	assert.Contains(t, got, "| critical | src/a.ts:1 | foo | missing doc: function foo, externally visible |")
	assert.Contains(t, got, "  - Not applicable")
	assert.Contains(t, got, "### /repo/src/a.ts\n\n- Language: typescript\n- Lines: 10\n- Entities: 3 total, 1 documented, 2 missing\n- Documented rate: 33.33%")
	assert.Contains(t, got, "| ⚠️ | function | foo | 1 | yes | 0 |")
	assert.Contains(t, got, "| ✅ | function | bar | 4 | no | 0 |")
	assert.Contains(t, got, "### /repo/src/empty.ts\n\n- Language: typescript\n- Lines: 1\n- Entities: 0 total, 0 documented, 0 missing\n- Documented rate: 100%")
	assert.Contains(t, got, "| - | - | - | - | - | - |")
}

func TestDocumentation_Empty(t *testing.T) {
	got := Documentation(&model.AnalysisResult{Summary: model.AnalysisSummary{DocumentationCoverage: 100}})

	assert.Contains(t, got, "- No missing documentation detected.")
	assert.Contains(t, got, "- No suggestions")
	assert.True(t, strings.HasSuffix(got, "## File Details\n\n- No analyzable files found."))
}
