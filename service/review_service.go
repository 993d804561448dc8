package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/advisory"
	"github.com/ludo-technologies/jrev/internal/analyzer"
	"github.com/ludo-technologies/jrev/internal/config"
	"github.com/ludo-technologies/jrev/internal/rules"
	"github.com/ludo-technologies/jrev/internal/version"
)

// maxConcurrentChecks caps the per-file check goroutines. The catalog is
// small; this bound only matters when a future catalog grows.
const maxConcurrentChecks = 4

// ReviewServiceImpl implements domain.ReviewService
type ReviewServiceImpl struct {
	catalog  *rules.Catalog
	advisory domain.AdvisoryClient
	reader   domain.FileReader
	executor *ParallelExecutorImpl
	progress domain.ProgressManager

	// advisoryTimeout bounds one advisory call per file
	advisoryTimeout time.Duration

	// comprehensive requests improvement and test suggestions per file
	comprehensive bool
}

// ReviewServiceOption configures a ReviewServiceImpl
type ReviewServiceOption func(*ReviewServiceImpl)

// WithAdvisoryClient enables advisory analysis through the given client
func WithAdvisoryClient(client domain.AdvisoryClient, timeout time.Duration) ReviewServiceOption {
	return func(s *ReviewServiceImpl) {
		s.advisory = client
		if timeout > 0 {
			s.advisoryTimeout = timeout
		}
	}
}

// WithComprehensiveAnalysis also collects improvement and test suggestions
func WithComprehensiveAnalysis() ReviewServiceOption {
	return func(s *ReviewServiceImpl) {
		s.comprehensive = true
	}
}

// WithProgress attaches a progress manager to the review run
func WithProgress(pm domain.ProgressManager) ReviewServiceOption {
	return func(s *ReviewServiceImpl) {
		s.progress = pm
	}
}

// NewReviewService creates a review service with the given catalog and reader
func NewReviewService(catalog *rules.Catalog, reader domain.FileReader, perf *config.PerformanceConfig, opts ...ReviewServiceOption) *ReviewServiceImpl {
	s := &ReviewServiceImpl{
		catalog:         catalog,
		reader:          reader,
		executor:        NewParallelExecutorFromConfig(perf),
		advisoryTimeout: time.Duration(config.DefaultAdvisoryTimeoutSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.progress != nil {
		s.executor.progress = s.progress
	}
	return s
}

// fileReviewTask reviews one file; used by the parallel executor
type fileReviewTask struct {
	service *ReviewServiceImpl
	path    string

	mu     *sync.Mutex
	out    *[]domain.FileReport
	warns  *[]string
}

func (t *fileReviewTask) Name() string    { return t.path }
func (t *fileReviewTask) IsEnabled() bool { return true }

func (t *fileReviewTask) Execute(ctx context.Context) error {
	content, err := t.service.reader.ReadFile(t.path)
	if err != nil {
		t.mu.Lock()
		*t.warns = append(*t.warns, fmt.Sprintf("skipped %s: %v", t.path, err))
		t.mu.Unlock()
		return err
	}

	report, err := t.service.ReviewUnit(ctx, domain.NewSourceUnit(t.path, content))
	if err != nil {
		return err
	}

	t.mu.Lock()
	*t.out = append(*t.out, *report)
	t.mu.Unlock()
	return nil
}

// Review runs the full review pipeline for the given request
func (s *ReviewServiceImpl) Review(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	files, err := s.reader.CollectJavaFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewContractViolation("no Java files found in the given paths")
	}

	slog.Info("starting review", "files", len(files))

	var mu sync.Mutex
	reports := make([]domain.FileReport, 0, len(files))
	var warnings []string

	tasks := make([]domain.ReviewTask, 0, len(files))
	for _, path := range files {
		tasks = append(tasks, &fileReviewTask{
			service: s,
			path:    path,
			mu:      &mu,
			out:     &reports,
			warns:   &warnings,
		})
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		// A contract violation anywhere aborts the run; everything else is
		// reported per file and the run continues.
		if agg, ok := err.(*AggregatedError); ok {
			for _, te := range agg.Errors {
				if domain.IsContractViolation(te.Err) {
					return nil, te.Err
				}
				warnings = append(warnings, te.Error())
			}
		} else {
			return nil, err
		}
	}

	// Deterministic file order regardless of completion order
	sortReportsByPath(reports)

	return &domain.ReviewResponse{
		Aggregate:   domain.NewAggregateReport(reports),
		Warnings:    warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// ReviewUnit reviews a single source unit. The rule checks and the optional
// advisory call run concurrently; their results are merged, deduplicated,
// and scored into one immutable report.
func (s *ReviewServiceImpl) ReviewUnit(ctx context.Context, unit *domain.SourceUnit) (*domain.FileReport, error) {
	if unit == nil {
		return nil, domain.NewContractViolation("source unit is nil")
	}
	if unit.Path == "" {
		return nil, domain.NewContractViolation("source unit has no path")
	}
	if len(unit.Lines) == 0 {
		return nil, domain.NewContractViolation("source unit is empty")
	}

	checks := s.catalog.Checks()
	batches := make([][]domain.Issue, len(checks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)

	for i, chk := range checks {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}
			batches[i] = rules.SafeEvaluate(chk, unit)
			return nil
		})
	}

	// The advisory call runs alongside the checks and is joined before the
	// report is finalized.
	var advisoryIssues []domain.Issue
	var improvements []string
	var generatedTests string
	var degraded bool

	var advisoryWG sync.WaitGroup
	if s.advisory != nil {
		advisoryWG.Add(1)
		go func() {
			defer advisoryWG.Done()
			advisoryIssues, improvements, generatedTests, degraded = s.consultAdvisory(ctx, unit)
		}()
	}

	// Join the advisory goroutine even when the checks fail; it writes the
	// captured variables and must not outlive this call.
	checksErr := g.Wait()
	advisoryWG.Wait()
	if checksErr != nil {
		return nil, checksErr
	}

	all := append(batches, advisoryIssues)
	issues := analyzer.Aggregate(all...)

	return &domain.FileReport{
		FilePath:         unit.Path,
		FileName:         filepath.Base(unit.Path),
		TotalLines:       unit.LineCount(),
		Issues:           issues,
		Score:            analyzer.Score(issues),
		Summary:          domain.Summarize(issues),
		AdvisoryDegraded: degraded,
		Improvements:     improvements,
		GeneratedTests:   generatedTests,
	}, nil
}

// consultAdvisory runs the advisory analysis for one unit. A transport
// failure or timeout degrades the report without adding issues; a response
// that arrives but cannot be parsed adds one info-level marker issue.
func (s *ReviewServiceImpl) consultAdvisory(ctx context.Context, unit *domain.SourceUnit) (issues []domain.Issue, improvements []string, tests string, degraded bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.advisoryTimeout)
	defer cancel()

	raw, err := s.advisory.Invoke(callCtx, advisory.BuildReviewPrompt(unit))
	if err != nil {
		slog.Warn("advisory analysis unavailable", "file", unit.Path, "error", err)
		return nil, nil, "", true
	}

	analysis := advisory.ParseReviewResponse(raw)
	if !analysis.Parsed {
		slog.Warn("advisory response could not be parsed", "file", unit.Path)
		return []domain.Issue{domain.UnparsedIssue()}, nil, "", false
	}
	issues = analysis.Issues

	if s.comprehensive {
		improvements, tests = s.consultExtras(ctx, unit)
	}
	return issues, improvements, tests, false
}

// consultExtras fetches improvement and test suggestions. Failures here are
// logged and dropped; they never degrade the report.
func (s *ReviewServiceImpl) consultExtras(ctx context.Context, unit *domain.SourceUnit) ([]string, string) {
	var improvements []string
	var tests string

	impCtx, cancel := context.WithTimeout(ctx, s.advisoryTimeout)
	raw, err := s.advisory.Invoke(impCtx, advisory.BuildImprovementPrompt(unit))
	cancel()
	if err != nil {
		slog.Debug("improvement suggestions unavailable", "file", unit.Path, "error", err)
	} else if raw != "" {
		improvements = append(improvements, raw)
	}

	testCtx, cancel := context.WithTimeout(ctx, s.advisoryTimeout)
	raw, err = s.advisory.Invoke(testCtx, advisory.BuildTestPrompt(unit))
	cancel()
	if err != nil {
		slog.Debug("test suggestions unavailable", "file", unit.Path, "error", err)
	} else {
		tests = raw
	}

	return improvements, tests
}

// sortReportsByPath orders reports alphabetically by file path
func sortReportsByPath(reports []domain.FileReport) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].FilePath < reports[j].FilePath
	})
}
