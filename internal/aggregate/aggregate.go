// Package aggregate rolls extracted entities up into per-file and run-level metrics.
package aggregate

import (
	"math"
	"sort"

	"smartdocs/internal/complexity"
	"smartdocs/internal/model"
)

// DefaultTopN is the number of files listed by TopUndocumented when n <= 0.
const DefaultTopN = 5

// BuildFile assembles the analysis of one file.
func BuildFile(path, relPath string, lang model.Language, content string, entities []model.CodeEntity) model.FileAnalysis {
	if entities == nil {
		entities = []model.CodeEntity{}
	}
	return model.FileAnalysis{
		Path:          path,
		RelativePath:  relPath,
		Language:      lang,
		LinesOfCode:   complexity.LineCount(content),
		EntityMetrics: Metrics(entities),
		Entities:      entities,
	}
}

// Metrics counts entities by documentation status and type.
func Metrics(entities []model.CodeEntity) model.EntityMetrics {
	var m model.EntityMetrics
	for _, e := range entities {
		m.Total++
		if e.HasDoc {
			m.Documented++
		} else {
			m.Undocumented++
		}
		switch e.Type {
		case model.EntityFunction:
			m.Functions++
		case model.EntityClass:
			m.Classes++
		case model.EntityMethod:
			m.Methods++
		}
	}
	return m
}

// Summarize computes the run-level summary in one pass over files.
func Summarize(rootPath string, files []model.FileAnalysis) model.AnalysisSummary {
	summary := model.AnalysisSummary{
		RootPath:   rootPath,
		TotalFiles: len(files),
		Languages:  make(map[model.Language]int, len(model.Languages)),
	}
	for _, lang := range model.Languages {
		summary.Languages[lang] = 0
	}

	for _, f := range files {
		summary.Languages[f.Language]++
		summary.TotalEntities += f.EntityMetrics.Total
		summary.DocumentedEntities += f.EntityMetrics.Documented
		summary.UndocumentedEntities += f.EntityMetrics.Undocumented
	}
	summary.DocumentationCoverage = Coverage(summary.DocumentedEntities, summary.TotalEntities)

	return summary
}

// Coverage returns documented/total as a percentage rounded to two decimals.
// A run with no entities is fully covered.
func Coverage(documented, total int) float64 {
	if total == 0 {
		return 100
	}
	return Round2(float64(documented) / float64(total) * 100)
}

// Round2 rounds a non-negative value to two decimals, halves rounding up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// TopUndocumented returns up to n files with the most undocumented entities.
// Ties keep discovery order. The input slice is not reordered.
func TopUndocumented(files []model.FileAnalysis, n int) []model.FileAnalysis {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]model.FileAnalysis, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EntityMetrics.Undocumented > ranked[j].EntityMetrics.Undocumented
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
