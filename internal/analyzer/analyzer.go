// Package analyzer runs the documentation analysis pipeline over a directory:
// discovery, parsing, extraction, classification and aggregation.
package analyzer

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"smartdocs/internal/aggregate"
	"smartdocs/internal/config"
	"smartdocs/internal/discovery"
	"smartdocs/internal/errors"
	"smartdocs/internal/extract"
	"smartdocs/internal/model"
	"smartdocs/internal/paths"
	"smartdocs/internal/severity"
	"smartdocs/internal/slogutil"
	"smartdocs/internal/suggest"
	"smartdocs/internal/syntax"
)

// ParserFailureName is the entity name of the synthetic issue recorded for a
// file that could not be analyzed.
const ParserFailureName = "ParserFailure"

// RunInfo describes a completed run.
type RunInfo struct {
	RunID    string
	Duration time.Duration
	// FilesDiscovered counts files handed to the parser, including failures.
	FilesDiscovered int
	ParseFailures   int
	// SkippedLanguages lists languages with no grammar in this build.
	SkippedLanguages []model.Language
	// Truncated is set when discovery stopped at the file cap.
	Truncated bool
	MaxFiles  int
}

// Analyzer runs analyses. It is safe for concurrent use.
type Analyzer struct {
	registry  *syntax.Registry
	extractor *extract.Extractor
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates an analyzer. A nil cfg uses defaults and a nil logger discards.
func New(registry *syntax.Registry, extractor *extract.Extractor, cfg *config.Config, logger *slog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Analyzer{
		registry:  registry,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
	}
}

// NewDefault creates an analyzer with the built-in grammars and rules.
func NewDefault(cfg *config.Config, logger *slog.Logger) *Analyzer {
	return New(syntax.DefaultRegistry(), extract.New(), cfg, logger)
}

// fileResult is the outcome of one file, stored at the file's discovery index.
type fileResult struct {
	analysis *model.FileAnalysis
	issues   []model.MissingDocIssue
	failed   bool
	skipped  bool
}

// Analyze runs the pipeline. Run-level failures (bad request, bad root,
// cancellation) are returned as errors; per-file failures become
// ParserFailure issues and the run continues.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.AnalysisResult, *RunInfo, error) {
	start := time.Now()
	info := &RunInfo{RunID: uuid.New().String()}
	logger := a.logger.With("runId", info.RunID)

	if err := req.Validate(); err != nil {
		return nil, info, err
	}

	root, err := paths.ResolveRoot(req.RootPath)
	if err != nil {
		return nil, info, errors.NewInvalidArgumentError("rootPath", err.Error())
	}

	profile, err := config.LoadProfile(root)
	if err != nil {
		logger.Warn("Ignoring unreadable project profile", "root", root, "error", err.Error())
		profile = nil
	}
	maxFiles, patterns := config.Merge(a.cfg, profile, req.MaxFiles, req.ExcludePatterns)
	info.MaxFiles = maxFiles

	exclude, err := discovery.CompileExcludes(patterns)
	if err != nil {
		return nil, info, errors.NewInvalidArgumentError("excludePatterns", err.Error())
	}

	logger.Info("Starting analysis", "root", root, "maxFiles", maxFiles, "excludes", len(patterns))

	discovered, err := discovery.Discover(ctx, discovery.Options{
		Root:        root,
		MaxFiles:    maxFiles,
		MaxFileSize: a.cfg.Analysis.MaxFileSizeBytes,
		Exclude:     exclude,
		Logger:      logger,
	})
	if err != nil {
		var nad *discovery.NotADirectoryError
		if stderrors.As(err, &nad) {
			return nil, info, errors.New(errors.NotADirectory, fmt.Sprintf("root path is not a directory: %s", nad.Path), nad.Err).
				WithDetails(map[string]string{"rootPath": nad.Path})
		}
		return nil, info, a.runError(err)
	}
	files := discovered.Files
	info.Truncated = discovered.Truncated

	results, err := a.analyzeFiles(ctx, logger, files)
	if err != nil {
		return nil, info, a.runError(err)
	}

	skipped := map[model.Language]bool{}
	analyses := make([]model.FileAnalysis, 0, len(files))
	issues := make([]model.MissingDocIssue, 0)
	for i, r := range results {
		if r.skipped {
			if lang := files[i].Language; !skipped[lang] {
				skipped[lang] = true
				info.SkippedLanguages = append(info.SkippedLanguages, lang)
			}
			continue
		}
		info.FilesDiscovered++
		if r.failed {
			info.ParseFailures++
		} else {
			analyses = append(analyses, *r.analysis)
		}
		issues = append(issues, r.issues...)
	}

	summary := aggregate.Summarize(root, analyses)
	result := &model.AnalysisResult{
		Summary:     summary,
		Files:       analyses,
		MissingDocs: issues,
		Suggestions: suggest.Synthesize(summary, issues),
	}

	info.Duration = time.Since(start)
	logger.Info("Analysis complete",
		"files", summary.TotalFiles,
		"entities", summary.TotalEntities,
		"coverage", summary.DocumentationCoverage,
		"parseFailures", info.ParseFailures,
		"duration", info.Duration.String(),
	)
	return result, info, nil
}

func (a *Analyzer) workers() int {
	if a.cfg.Analysis.Workers > 0 {
		return a.cfg.Analysis.Workers
	}
	return runtime.NumCPU()
}

// analyzeFiles processes files on a bounded pool. Results keep discovery order.
func (a *Analyzer) analyzeFiles(ctx context.Context, logger *slog.Logger, files []discovery.SourceFile) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers())
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeFile(gctx, logger, files[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, logger *slog.Logger, file discovery.SourceFile) (res fileResult) {
	if !a.registry.Supports(file.Language) || !a.extractor.Supports(file.Language) {
		logger.Debug("Skipping file without grammar", "path", file.RelativePath, "language", file.Language)
		return fileResult{skipped: true}
	}

	defer func() {
		if r := recover(); r != nil {
			res = failure(file, fmt.Errorf("extraction panicked: %v", r))
			logger.Error("Recovered from extraction panic", "path", file.RelativePath, "panic", fmt.Sprint(r))
		}
	}()

	entities, err := a.extractFile(ctx, file)
	if err != nil {
		logger.Warn("File analysis failed", "path", file.RelativePath, "error", err.Error())
		return failure(file, err)
	}

	fa := aggregate.BuildFile(file.Path, file.RelativePath, file.Language, file.Content, entities)
	issues := make([]model.MissingDocIssue, 0, fa.EntityMetrics.Undocumented)
	for _, e := range fa.Entities {
		if issue, ok := severity.Issue(e, file.RelativePath); ok {
			issues = append(issues, issue)
		}
	}
	return fileResult{analysis: &fa, issues: issues}
}

func (a *Analyzer) extractFile(ctx context.Context, file discovery.SourceFile) ([]model.CodeEntity, error) {
	if file.TooLarge {
		return nil, fmt.Errorf("file size %d exceeds limit of %d bytes", file.Size, a.cfg.Analysis.MaxFileSizeBytes)
	}
	if !utf8.ValidString(file.Content) {
		return nil, fmt.Errorf("file is not valid UTF-8")
	}

	tree, err := a.registry.Parse(ctx, []byte(file.Content), file.Language, syntax.DialectForPath(file.Path))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return a.extractor.File(tree, file.Language, file.RelativePath), nil
}

// failure builds the single synthetic issue recorded for a failed file.
func failure(file discovery.SourceFile, err error) fileResult {
	return fileResult{
		failed: true,
		issues: []model.MissingDocIssue{ParserFailureIssue(file.Language, file.RelativePath, err)},
	}
}

// ParserFailureIssue describes a file that could not be parsed.
func ParserFailureIssue(lang model.Language, relPath string, err error) model.MissingDocIssue {
	return model.MissingDocIssue{
		CodeEntity: model.CodeEntity{
			Name:     ParserFailureName,
			Type:     model.EntityFunction,
			Language: lang,
			Location: model.CodeLocation{Line: 0, Column: 0},
			Summary:  fmt.Sprintf("file %s failed to parse", relPath),
		},
		Severity:  model.SeverityMedium,
		Rationale: fmt.Sprintf("parse error: %v", err),
		File:      relPath,
	}
}

func (a *Analyzer) runError(err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.Cancelled, "analysis cancelled", err)
	}
	return errors.NewOperationError("analysis", err)
}
