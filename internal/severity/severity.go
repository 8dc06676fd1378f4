// Package severity ranks undocumented entities.
package severity

import (
	"fmt"
	"strings"

	"smartdocs/internal/model"
)

const (
	// MethodThreshold is the complexity above which an undocumented method is critical.
	MethodThreshold = 30
	// FunctionThreshold is the complexity above which an undocumented function is medium.
	FunctionThreshold = 40
	// RationaleThreshold is the complexity above which the score is cited in the rationale.
	RationaleThreshold = 30
)

// Classify returns the severity and rationale for an undocumented entity.
// The entity is not modified.
func Classify(entity model.CodeEntity) (model.Severity, string) {
	return level(entity), rationale(entity)
}

func level(entity model.CodeEntity) model.Severity {
	if entity.Exported || entity.Type == model.EntityClass {
		return model.SeverityCritical
	}
	if entity.Type == model.EntityMethod {
		if entity.ComplexityScore > MethodThreshold {
			return model.SeverityCritical
		}
		return model.SeverityMedium
	}
	if entity.ComplexityScore > FunctionThreshold {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

func rationale(entity model.CodeEntity) string {
	parts := []string{fmt.Sprintf("missing doc: %s %s", entity.Type, entity.Name)}
	if entity.Exported {
		parts = append(parts, "externally visible")
	}
	if entity.ComplexityScore > RationaleThreshold {
		parts = append(parts, fmt.Sprintf("complexity %d", entity.ComplexityScore))
	}
	return strings.Join(parts, ", ")
}

// Issue derives the missing-doc issue for an undocumented entity.
// It returns false for documented entities.
func Issue(entity model.CodeEntity, file string) (model.MissingDocIssue, bool) {
	if entity.HasDoc {
		return model.MissingDocIssue{}, false
	}
	sev, why := Classify(entity)
	return model.MissingDocIssue{
		CodeEntity: entity,
		Severity:   sev,
		Rationale:  why,
		File:       file,
	}, true
}

// Filter returns the issues with the given severity, preserving order.
func Filter(issues []model.MissingDocIssue, sev model.Severity) []model.MissingDocIssue {
	var out []model.MissingDocIssue
	for _, issue := range issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}
