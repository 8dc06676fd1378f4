package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/model"
	"smartdocs/internal/output"
	"smartdocs/internal/report"
	"smartdocs/internal/severity"
)

var (
	reportFormat   string
	reportOut      string
	reportMaxFiles int
	reportExcludes []string
	severityFilter string
)

// reportKind pairs a markdown renderer with the data a structured format emits.
type reportKind struct {
	name     string
	markdown func(*model.AnalysisResult) string
	data     func(*model.AnalysisResult) interface{}
}

var (
	summaryReport = reportKind{
		name:     "summary",
		markdown: report.Summary,
		data:     func(r *model.AnalysisResult) interface{} { return r },
	}
	documentationReport = reportKind{
		name:     "documentation",
		markdown: report.Documentation,
		data:     func(r *model.AnalysisResult) interface{} { return r },
	}
	missingReport = reportKind{
		name:     "missing",
		markdown: report.MissingDocs,
		data:     func(r *model.AnalysisResult) interface{} { return r.MissingDocs },
	}
	suggestionReport = reportKind{
		name:     "suggestions",
		markdown: report.Suggestions,
		data:     func(r *model.AnalysisResult) interface{} { return r.Suggestions },
	}
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Summarize documentation coverage of a codebase",
	Long: `Analyze every TypeScript, JavaScript and Python file under path (default ".")
and print a coverage summary.

Output formats: markdown (default), human, json, yaml, toml.
With --out, the report is written to a file; a .gz or .zst suffix compresses it.`,
	Example: `  smartdocs analyze .
  smartdocs analyze ./src --format json --max-files 500
  smartdocs analyze . --exclude "**/*.test.ts" --out coverage.json.zst --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: reportRunner(summaryReport),
}

var docsCmd = &cobra.Command{
	Use:   "docs [path]",
	Short: "Generate a full documentation report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  reportRunner(documentationReport),
}

var missingCmd = &cobra.Command{
	Use:   "missing [path]",
	Short: "List undocumented entities grouped by severity",
	Args:  cobra.MaximumNArgs(1),
	RunE:  reportRunner(missingReport),
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [path]",
	Short: "Suggest documentation improvements",
	Args:  cobra.MaximumNArgs(1),
	RunE:  reportRunner(suggestionReport),
}

func init() {
	for _, cmd := range []*cobra.Command{analyzeCmd, docsCmd, missingCmd, suggestCmd} {
		cmd.Flags().StringVarP(&reportFormat, "format", "f", string(output.FormatMarkdown), "Output format (markdown, human, json, yaml, toml)")
		cmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to a file instead of stdout")
		cmd.Flags().IntVar(&reportMaxFiles, "max-files", 0, "Analyze at most this many files (1-5000)")
		cmd.Flags().StringSliceVar(&reportExcludes, "exclude", nil, "Glob patterns to exclude, relative to path")
		rootCmd.AddCommand(cmd)
	}
	missingCmd.Flags().StringVar(&severityFilter, "severity", "", "Only list issues of this severity (critical, medium, low)")
}

func reportRunner(kind reportKind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(reportFormat)
		if err != nil {
			return err
		}
		sev, err := parseSeverity(severityFilter)
		if err != nil {
			return err
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		result, info, err := runAnalysis(ctx, root)
		if err != nil {
			return err
		}
		if sev != "" {
			result = filterSeverity(result, sev)
		}

		data, err := renderReport(kind, result, info, format)
		if err != nil {
			return err
		}

		if reportOut != "" {
			if err := output.WriteFile(reportOut, data); err != nil {
				return fmt.Errorf("failed to write %s: %w", reportOut, err)
			}
			logger.Info("Report written", "path", reportOut, "format", format, "bytes", len(data))
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
}

func runAnalysis(ctx context.Context, root string) (*model.AnalysisResult, *analyzer.RunInfo, error) {
	a := analyzer.NewDefault(appConfig, logger)
	return a.Analyze(ctx, analyzer.Request{
		RootPath:        root,
		MaxFiles:        reportMaxFiles,
		ExcludePatterns: reportExcludes,
	})
}

func parseSeverity(s string) (model.Severity, error) {
	if s == "" {
		return "", nil
	}
	for _, sev := range model.Severities {
		if string(sev) == s {
			return sev, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q (expected critical, medium or low)", s)
}

// filterSeverity returns a shallow copy of result keeping only issues of sev.
func filterSeverity(result *model.AnalysisResult, sev model.Severity) *model.AnalysisResult {
	filtered := *result
	filtered.MissingDocs = severity.Filter(result.MissingDocs, sev)
	if filtered.MissingDocs == nil {
		filtered.MissingDocs = []model.MissingDocIssue{}
	}
	return &filtered
}
