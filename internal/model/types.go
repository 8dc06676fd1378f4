// Package model defines the data shared by every stage of a documentation analysis run.
package model

import (
	"path/filepath"
	"strings"
)

// Language is a source language smartdocs can analyze.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
)

// Languages lists the supported languages in report order.
var Languages = []Language{LangTypeScript, LangJavaScript, LangPython}

var extensionLanguages = map[string]Language{
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".py":  LangPython,
}

// LanguageFromExtension maps a file extension (with leading dot) to a language.
// The second return value is false for unsupported extensions.
func LanguageFromExtension(ext string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// LanguageFromPath detects the language from a file path.
func LanguageFromPath(path string) (Language, bool) {
	return LanguageFromExtension(filepath.Ext(path))
}

// IsJSX reports whether the path uses the JSX dialect of its language.
func IsJSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tsx")
}

// CodeLocation is a 1-based position in a source file.
type CodeLocation struct {
	Line   int `json:"line" yaml:"line" toml:"line"`
	Column int `json:"column" yaml:"column" toml:"column"`
}

// EntityType classifies a documentable unit.
type EntityType string

const (
	EntityFunction EntityType = "function"
	EntityClass    EntityType = "class"
	EntityMethod   EntityType = "method"
)

// CodeEntity is a function, class or method found in a file.
type CodeEntity struct {
	Name            string       `json:"name" yaml:"name" toml:"name"`
	Type            EntityType   `json:"type" yaml:"type" toml:"type"`
	Language        Language     `json:"language" yaml:"language" toml:"language"`
	Location        CodeLocation `json:"location" yaml:"location" toml:"location"`
	HasDoc          bool         `json:"hasDoc" yaml:"hasDoc" toml:"hasDoc"`
	Exported        bool         `json:"exported" yaml:"exported" toml:"exported"`
	ComplexityScore int          `json:"complexityScore" yaml:"complexityScore" toml:"complexityScore"`
	// Summary is a short display reference, "relativePath:line".
	Summary string `json:"summary" yaml:"summary" toml:"summary"`
}

// EntityMetrics counts the entities of one file.
type EntityMetrics struct {
	Total        int `json:"total" yaml:"total" toml:"total"`
	Documented   int `json:"documented" yaml:"documented" toml:"documented"`
	Undocumented int `json:"undocumented" yaml:"undocumented" toml:"undocumented"`
	Functions    int `json:"functions" yaml:"functions" toml:"functions"`
	Classes      int `json:"classes" yaml:"classes" toml:"classes"`
	Methods      int `json:"methods" yaml:"methods" toml:"methods"`
}

// FileAnalysis is the per-file result of a run.
type FileAnalysis struct {
	Path          string        `json:"path" yaml:"path" toml:"path"`
	RelativePath  string        `json:"relativePath" yaml:"relativePath" toml:"relativePath"`
	Language      Language      `json:"language" yaml:"language" toml:"language"`
	LinesOfCode   int           `json:"linesOfCode" yaml:"linesOfCode" toml:"linesOfCode"`
	EntityMetrics EntityMetrics `json:"entityMetrics" yaml:"entityMetrics" toml:"entityMetrics"`
	Entities      []CodeEntity  `json:"entities" yaml:"entities" toml:"entities"`
}

// Severity is the urgency of a missing doc.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists severities from most to least urgent.
var Severities = []Severity{SeverityCritical, SeverityMedium, SeverityLow}

// MissingDocIssue is an undocumented entity with its derived severity.
type MissingDocIssue struct {
	CodeEntity `yaml:",inline"`
	Severity   Severity `json:"severity" yaml:"severity" toml:"severity"`
	Rationale  string   `json:"rationale" yaml:"rationale" toml:"rationale"`
	// File is the relative path of the file the entity belongs to.
	File string `json:"file" yaml:"file" toml:"file"`
}

// AnalysisSummary is the run-level rollup.
type AnalysisSummary struct {
	RootPath              string           `json:"rootPath" yaml:"rootPath" toml:"rootPath"`
	TotalFiles            int              `json:"totalFiles" yaml:"totalFiles" toml:"totalFiles"`
	Languages             map[Language]int `json:"languages" yaml:"languages" toml:"languages"`
	TotalEntities         int              `json:"totalEntities" yaml:"totalEntities" toml:"totalEntities"`
	DocumentedEntities    int              `json:"documentedEntities" yaml:"documentedEntities" toml:"documentedEntities"`
	UndocumentedEntities  int              `json:"undocumentedEntities" yaml:"undocumentedEntities" toml:"undocumentedEntities"`
	DocumentationCoverage float64          `json:"documentationCoverage" yaml:"documentationCoverage" toml:"documentationCoverage"`
}

// Suggestion is an actionable improvement derived from the missing docs.
type Suggestion struct {
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Impact      Severity `json:"impact" yaml:"impact" toml:"impact"`
	Targets     []string `json:"targets" yaml:"targets" toml:"targets"`
}

// AnalysisResult is everything one run produces.
type AnalysisResult struct {
	Summary     AnalysisSummary   `json:"summary" yaml:"summary" toml:"summary"`
	Files       []FileAnalysis    `json:"files" yaml:"files" toml:"files"`
	MissingDocs []MissingDocIssue `json:"missingDocs" yaml:"missingDocs" toml:"missingDocs"`
	Suggestions []Suggestion      `json:"suggestions" yaml:"suggestions" toml:"suggestions"`
}
