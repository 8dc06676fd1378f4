// Package suggest turns missing-doc issues into prioritized improvement suggestions.
package suggest

import (
	"fmt"

	"smartdocs/internal/model"
	"smartdocs/internal/severity"
)

// MaxTargets caps the target list of every suggestion.
const MaxTargets = 10

// BaselineCoverage is the coverage below which a baseline suggestion is made.
const BaselineCoverage = 70

// Synthesize derives suggestions from a run summary and its issues.
// The output depends only on the inputs and their order.
func Synthesize(summary model.AnalysisSummary, issues []model.MissingDocIssue) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, 3)

	if critical := severity.Filter(issues, model.SeverityCritical); len(critical) > 0 {
		suggestions = append(suggestions, model.Suggestion{
			Title:       "Prioritize core API documentation",
			Description: "Add JSDoc comments or docstrings to exported functions and classes first; they are what other code depends on.",
			Impact:      model.SeverityCritical,
			Targets:     Targets(critical),
		})
	}

	if medium := severity.Filter(issues, model.SeverityMedium); len(medium) > 0 {
		suggestions = append(suggestions, model.Suggestion{
			Title:       "Summarize complex logic",
			Description: "Write a summary plus parameter and return notes for complex methods to keep them maintainable.",
			Impact:      model.SeverityMedium,
			Targets:     Targets(medium),
		})
	}

	if summary.DocumentationCoverage < BaselineCoverage {
		suggestions = append(suggestions, model.Suggestion{
			Title:       "Establish a documentation baseline",
			Description: "Overall coverage is low. Define a minimum documentation guideline and check it during code review.",
			Impact:      model.SeverityMedium,
			Targets:     []string{},
		})
	}

	if len(issues) == 0 {
		suggestions = append(suggestions, model.Suggestion{
			Title:       "Documentation healthy",
			Description: "No missing documentation was found. Keep the current documentation process.",
			Impact:      model.SeverityLow,
			Targets:     []string{},
		})
	}

	return suggestions
}

// Targets renders the first MaxTargets issues as "name (line N)".
func Targets(issues []model.MissingDocIssue) []string {
	n := len(issues)
	if n > MaxTargets {
		n = MaxTargets
	}
	targets := make([]string, 0, n)
	for _, issue := range issues[:n] {
		targets = append(targets, fmt.Sprintf("%s (line %d)", issue.Name, issue.Location.Line))
	}
	return targets
}
