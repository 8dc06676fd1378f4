package report

import (
	"fmt"
	"strings"

	"smartdocs/internal/aggregate"
	"smartdocs/internal/model"
)

// Documentation renders the full report used by generate_documentation:
// overview, missing docs, suggestions and per-file details.
func Documentation(result *model.AnalysisResult) string {
	return strings.Join([]string{
		"# Smart Docs Report",
		overview(result.Summary),
		missingDocTable(result.MissingDocs),
		suggestionSection(result.Suggestions),
		fileDetails(result.Files),
	}, "\n\n")
}

func overview(s model.AnalysisSummary) string {
	var b strings.Builder
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- Root path: %s\n", s.RootPath)
	fmt.Fprintf(&b, "- Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "- Total entities: %d\n", s.TotalEntities)
	fmt.Fprintf(&b, "- Documentation coverage: %s\n\n", percent(s.DocumentationCoverage))
	b.WriteString("### Files by language\n\n")
	b.WriteString("| Language | Files |\n| --- | --- |\n")
	for _, lang := range model.Languages {
		fmt.Fprintf(&b, "| %s | %d |\n", lang, s.Languages[lang])
	}
	return b.String()
}

func missingDocTable(issues []model.MissingDocIssue) string {
	if len(issues) == 0 {
		return "## Missing Documentation\n\n- " + NoMissingDocs + "\n"
	}

	var b strings.Builder
	b.WriteString("## Missing Documentation\n\n")
	b.WriteString("| Severity | Location | Name | Rationale |\n| --- | --- | --- | --- |\n")
	for _, issue := range issues {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", issue.Severity, cell(issueLocation(issue)), cell(issue.Name), cell(issue.Rationale))
	}
	return b.String()
}

func suggestionSection(suggestions []model.Suggestion) string {
	var b strings.Builder
	b.WriteString("## Suggestions\n\n")
	if len(suggestions) == 0 {
		b.WriteString("- No suggestions")
		return b.String()
	}
	writeSuggestions(&b, suggestions, "Not applicable")
	return strings.TrimRight(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fileDetails(files []model.FileAnalysis) string {
	if len(files) == 0 {
		return "## File Details\n\n- No analyzable files found."
	}

	sections := make([]string, 0, len(files))
	for _, f := range files {
		m := f.EntityMetrics
		rate := aggregate.Coverage(m.Documented, m.Total)

		var b strings.Builder
		fmt.Fprintf(&b, "### %s\n\n", f.Path)
		fmt.Fprintf(&b, "- Language: %s\n", f.Language)
		fmt.Fprintf(&b, "- Lines: %d\n", f.LinesOfCode)
		fmt.Fprintf(&b, "- Entities: %d total, %d documented, %d missing\n", m.Total, m.Documented, m.Undocumented)
		fmt.Fprintf(&b, "- Documented rate: %s\n\n", percent(rate))
		b.WriteString("| Doc | Type | Name | Line | Exported | Complexity |\n| --- | --- | --- | --- | --- | --- |\n")
		if len(f.Entities) == 0 {
			b.WriteString("| - | - | - | - | - | - |\n")
		}
		for _, e := range f.Entities {
			status := "⚠️"
			if e.HasDoc {
				status = "✅"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %d |\n", status, e.Type, cell(e.Name), e.Location.Line, yesNo(e.Exported), e.ComplexityScore)
		}
		sections = append(sections, b.String())
	}

	return "## File Details\n\n" + strings.Join(sections, "\n")
}
