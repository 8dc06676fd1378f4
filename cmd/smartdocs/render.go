package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/envelope"
	"smartdocs/internal/model"
	"smartdocs/internal/output"
)

const defaultWrapWidth = 100

var (
	headlineStyle = lipgloss.NewStyle().Bold(true)
	goodStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	fairStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	poorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	noteStyle     = lipgloss.NewStyle().Faint(true)
)

// renderReport produces the bytes written for one report in the given format.
func renderReport(kind reportKind, result *model.AnalysisResult, info *analyzer.RunInfo, format output.Format) ([]byte, error) {
	switch {
	case format.Structured():
		return output.Encode(format, buildEnvelope(kind, result, info))
	case format == output.FormatHuman:
		return renderHuman(kind, result, info)
	default:
		md := kind.markdown(result)
		if !strings.HasSuffix(md, "\n") {
			md += "\n"
		}
		return []byte(md), nil
	}
}

func buildEnvelope(kind reportKind, result *model.AnalysisResult, info *analyzer.RunInfo) *envelope.Response {
	b := envelope.New().Data(kind.data(result))
	if info == nil {
		return b.Build()
	}

	b.Run(info.RunID, info.Duration)
	if info.Truncated {
		b.WithTruncation(true, info.FilesDiscovered, 0, "max-files")
	}
	if info.ParseFailures > 0 {
		b.WarningWithCode("PARSE_FAILURES", fmt.Sprintf("%d file(s) could not be parsed", info.ParseFailures))
	}
	for _, lang := range info.SkippedLanguages {
		b.WarningWithCode("LANGUAGE_SKIPPED", fmt.Sprintf("no %s grammar in this build; %s files were skipped", lang, lang))
	}
	return b.Build()
}

func renderHuman(kind reportKind, result *model.AnalysisResult, info *analyzer.RunInfo) ([]byte, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	body, err := renderer.Render(kind.markdown(result))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString(coverageHeadline(result.Summary))
	b.WriteString("\n")
	if note := runNote(info); note != "" {
		b.WriteString(noteStyle.Render(note))
		b.WriteString("\n")
	}
	b.WriteString(body)
	return []byte(b.String()), nil
}

// coverageHeadline is a one-line coverage banner colored by how well the
// codebase is documented.
func coverageHeadline(s model.AnalysisSummary) string {
	style := poorStyle
	switch {
	case s.TotalEntities == 0 || s.DocumentationCoverage >= 80:
		style = goodStyle
	case s.DocumentationCoverage >= 50:
		style = fairStyle
	}
	label := headlineStyle.Render("Documentation coverage:")
	value := style.Render(output.FormatFloat(s.DocumentationCoverage) + "%")
	return fmt.Sprintf("%s %s (%d/%d entities, %d files)", label, value, s.DocumentedEntities, s.TotalEntities, s.TotalFiles)
}

func runNote(info *analyzer.RunInfo) string {
	if info == nil {
		return ""
	}
	var notes []string
	if info.Truncated {
		notes = append(notes, fmt.Sprintf("stopped at %d files", info.MaxFiles))
	}
	if info.ParseFailures > 0 {
		notes = append(notes, fmt.Sprintf("%d parse failure(s)", info.ParseFailures))
	}
	for _, lang := range info.SkippedLanguages {
		notes = append(notes, fmt.Sprintf("%s skipped", lang))
	}
	return strings.Join(notes, "; ")
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w - 4
	}
	return defaultWrapWidth
}
