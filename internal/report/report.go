// Package report renders analysis results as markdown.
package report

import (
	"fmt"
	"strings"

	"smartdocs/internal/aggregate"
	"smartdocs/internal/model"
	"smartdocs/internal/output"
	"smartdocs/internal/severity"
)

// NoMissingDocs is printed when a run found nothing to document.
const NoMissingDocs = "No missing documentation detected."

// cell escapes a value for a markdown table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func percent(v float64) string {
	return output.FormatFloat(v) + "%"
}

// issueLocation prefers the entity summary ("path:line").
func issueLocation(issue model.MissingDocIssue) string {
	if issue.Summary != "" {
		return issue.Summary
	}
	return fmt.Sprintf("line %d", issue.Location.Line)
}

func targetList(b *strings.Builder, targets []string, empty string) {
	if len(targets) == 0 {
		fmt.Fprintf(b, "  - %s\n", empty)
		return
	}
	for _, t := range targets {
		fmt.Fprintf(b, "  - %s\n", t)
	}
}

// Summary renders the codebase overview used by analyze_codebase.
func Summary(result *model.AnalysisResult) string {
	var b strings.Builder
	s := result.Summary

	b.WriteString("# Codebase Analysis Summary\n")
	fmt.Fprintf(&b, "- Root path: %s\n", s.RootPath)
	fmt.Fprintf(&b, "- Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "- Total entities: %d\n", s.TotalEntities)
	fmt.Fprintf(&b, "- Documentation coverage: %s\n", percent(s.DocumentationCoverage))
	b.WriteString("\n## Files by language\n")
	for _, lang := range model.Languages {
		fmt.Fprintf(&b, "- %s: %d\n", lang, s.Languages[lang])
	}

	b.WriteString("\n## Top files with missing docs\n")
	top := aggregate.TopUndocumented(result.Files, aggregate.DefaultTopN)
	if len(top) == 0 {
		b.WriteString("- None\n")
	}
	for _, f := range top {
		fmt.Fprintf(&b, "- %s (%d/%d entities undocumented)\n", f.Path, f.EntityMetrics.Undocumented, f.EntityMetrics.Total)
	}

	return strings.TrimRight(b.String(), "\n")
}

// MissingDocs renders issues grouped by severity, most urgent first.
func MissingDocs(result *model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Missing Documentation\n\n")

	if len(result.MissingDocs) == 0 {
		b.WriteString("- " + NoMissingDocs)
		return b.String()
	}

	sections := make([]string, 0, len(model.Severities))
	for _, sev := range model.Severities {
		issues := severity.Filter(result.MissingDocs, sev)
		if len(issues) == 0 {
			continue
		}

		var s strings.Builder
		fmt.Fprintf(&s, "## %s (%d)\n\n", strings.ToUpper(string(sev)), len(issues))
		s.WriteString("| Entity | Location | Rationale |\n| --- | --- | --- |\n")
		for _, issue := range issues {
			fmt.Fprintf(&s, "| %s | %s | %s |\n", cell(issue.Name), cell(issueLocation(issue)), cell(issue.Rationale))
		}
		sections = append(sections, strings.TrimRight(s.String(), "\n"))
	}
	b.WriteString(strings.Join(sections, "\n\n"))

	return b.String()
}

// Suggestions renders the improvement suggestions.
func Suggestions(result *model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("# Documentation Improvement Suggestions\n\n")

	if len(result.Suggestions) == 0 {
		b.WriteString("- No further suggestions.")
		return b.String()
	}

	writeSuggestions(&b, result.Suggestions, "No targets")
	return strings.TrimRight(b.String(), "\n")
}

func writeSuggestions(b *strings.Builder, suggestions []model.Suggestion, empty string) {
	for _, s := range suggestions {
		fmt.Fprintf(b, "- **%s** (%s)\n  %s\n", s.Title, s.Impact, s.Description)
		targetList(b, s.Targets, empty)
	}
}
