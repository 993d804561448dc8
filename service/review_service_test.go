package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
	"github.com/ludo-technologies/jrev/internal/rules"
)

// fakeAdvisoryClient scripts the advisory collaborator for tests
type fakeAdvisoryClient struct {
	response string
	err      error
	delay    time.Duration

	// finished flips once Invoke has fully returned
	finished atomic.Bool
}

func (f *fakeAdvisoryClient) Invoke(ctx context.Context, prompt string) (string, error) {
	defer f.finished.Store(true)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", domain.NewAdvisoryError("advisory call timed out", ctx.Err())
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(opts ...ReviewServiceOption) *ReviewServiceImpl {
	perf := &config.PerformanceConfig{MaxGoroutines: 2, TimeoutSeconds: 10}
	return NewReviewService(rules.NewCatalog(nil), nil, perf, opts...)
}

func javaUnit(lines ...string) *domain.SourceUnit {
	return domain.NewSourceUnit("Sample.java", []byte(strings.Join(lines, "\n")))
}

const advisoryEnvelope = `{
	"issues": [
		{
			"line_number": 2,
			"severity": "warning",
			"category": "logging",
			"message": "exception lacks context in the log call",
			"suggestion": "include the operation name"
		}
	],
	"summary": {"total_issues": 1, "quality_score": 90, "overall": "fine"}
}`

func TestReviewUnit(t *testing.T) {
	t.Run("nil unit is a contract violation", func(t *testing.T) {
		_, err := newTestService().ReviewUnit(context.Background(), nil)
		if !domain.IsContractViolation(err) {
			t.Errorf("expected contract violation, got %v", err)
		}
	})

	t.Run("empty unit is a contract violation", func(t *testing.T) {
		_, err := newTestService().ReviewUnit(context.Background(), &domain.SourceUnit{Path: "X.java"})
		if !domain.IsContractViolation(err) {
			t.Errorf("expected contract violation, got %v", err)
		}
	})

	t.Run("clean file scores 100", func(t *testing.T) {
		report, err := newTestService().ReviewUnit(context.Background(), javaUnit(
			"public class Clean {",
			"    private final int limit = 9;",
			"}",
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Score != 100 {
			t.Errorf("Score = %v, want 100: %+v", report.Score, report.Issues)
		}
		if report.Summary != "no issues found" {
			t.Errorf("Summary = %q", report.Summary)
		}
		if report.AdvisoryDegraded {
			t.Error("AdvisoryDegraded should be false without an advisory client")
		}
	})

	t.Run("empty catch and generic throws score 85", func(t *testing.T) {
		report, err := newTestService().ReviewUnit(context.Background(), javaUnit(
			"public class Worker {",
			"    public void run() throws Exception {",
			"        try {",
			"            work();",
			"        } catch (IOException e) {",
			"        }",
			"    }",
			"}",
		))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.ErrorCount() != 1 {
			t.Errorf("errors = %d, want 1: %+v", report.ErrorCount(), report.Issues)
		}
		if report.WarningCount() != 1 {
			t.Errorf("warnings = %d, want 1: %+v", report.WarningCount(), report.Issues)
		}
		if report.Score != 85 {
			t.Errorf("Score = %v, want 85", report.Score)
		}
	})

	t.Run("report issue order is deterministic", func(t *testing.T) {
		unit := javaUnit(
			"public class Noisy {",
			"    public void log() {",
			"        System.out.println(\"a\");",
			"        System.err.println(\"b\");",
			"    }",
			"}",
		)
		first, err := newTestService().ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			again, err := newTestService().ReviewUnit(context.Background(), unit)
			if err != nil {
				t.Fatal(err)
			}
			if len(again.Issues) != len(first.Issues) {
				t.Fatalf("issue count changed between runs")
			}
			for j := range again.Issues {
				if again.Issues[j] != first.Issues[j] {
					t.Fatalf("issue order changed between runs: %+v vs %+v", again.Issues[j], first.Issues[j])
				}
			}
		}
	})
}

func TestReviewUnitWithAdvisory(t *testing.T) {
	unit := javaUnit(
		"public class Clean {",
		"    private final int limit = 9;",
		"}",
	)

	t.Run("parsed advisory issues are merged", func(t *testing.T) {
		client := &fakeAdvisoryClient{response: advisoryEnvelope}
		svc := newTestService(WithAdvisoryClient(client, time.Second))

		report, err := svc.ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.AdvisoryDegraded {
			t.Error("AdvisoryDegraded should be false on success")
		}
		found := false
		for _, issue := range report.Issues {
			if issue.Category == domain.CategoryLogging && issue.LineNumber == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("advisory issue missing from report: %+v", report.Issues)
		}
		// one warning costs 5 points
		if report.Score != 95 {
			t.Errorf("Score = %v, want 95", report.Score)
		}
	})

	t.Run("unparsable response adds one marker issue", func(t *testing.T) {
		client := &fakeAdvisoryClient{response: "Looks good to me overall."}
		svc := newTestService(WithAdvisoryClient(client, time.Second))

		report, err := svc.ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.AdvisoryDegraded {
			t.Error("an unparsable response is not a degraded run")
		}
		markers := 0
		for _, issue := range report.Issues {
			if issue.Message == domain.UnparsedAdvisoryMessage {
				markers++
				if issue.LineNumber != 0 || issue.Severity != domain.SeverityInfo {
					t.Errorf("marker issue malformed: %+v", issue)
				}
			}
		}
		if markers != 1 {
			t.Errorf("got %d marker issues, want 1", markers)
		}
		// one info costs 1 point
		if report.Score != 99 {
			t.Errorf("Score = %v, want 99", report.Score)
		}
	})

	t.Run("transport failure degrades without issues", func(t *testing.T) {
		client := &fakeAdvisoryClient{err: domain.NewAdvisoryError("connection refused", nil)}
		svc := newTestService(WithAdvisoryClient(client, time.Second))

		report, err := svc.ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.AdvisoryDegraded {
			t.Error("AdvisoryDegraded should be true on transport failure")
		}
		for _, issue := range report.Issues {
			if issue.Category == domain.CategoryAIAnalysis {
				t.Errorf("degraded run must not add advisory issues: %+v", issue)
			}
		}
		if report.Score != 100 {
			t.Errorf("rule-based score must stand: %v", report.Score)
		}
	})

	t.Run("timeout degrades without failing the review", func(t *testing.T) {
		client := &fakeAdvisoryClient{response: advisoryEnvelope, delay: 500 * time.Millisecond}
		svc := newTestService(WithAdvisoryClient(client, 20*time.Millisecond))

		start := time.Now()
		report, err := svc.ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
			t.Errorf("timeout was not enforced, took %v", elapsed)
		}
		if !report.AdvisoryDegraded {
			t.Error("AdvisoryDegraded should be true on timeout")
		}
	})

	t.Run("cancelled run joins the advisory call before returning", func(t *testing.T) {
		client := &fakeAdvisoryClient{response: advisoryEnvelope, delay: 200 * time.Millisecond}
		svc := newTestService(WithAdvisoryClient(client, time.Second))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := svc.ReviewUnit(ctx, unit); err == nil {
			t.Fatal("expected an error from the cancelled context")
		}
		if !client.finished.Load() {
			t.Error("advisory call still in flight after ReviewUnit returned")
		}
	})

	t.Run("comprehensive run collects extras", func(t *testing.T) {
		client := &fakeAdvisoryClient{response: advisoryEnvelope}
		svc := newTestService(
			WithAdvisoryClient(client, time.Second),
			WithComprehensiveAnalysis(),
		)

		report, err := svc.ReviewUnit(context.Background(), unit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Improvements) == 0 {
			t.Error("comprehensive run should carry improvement suggestions")
		}
		if report.GeneratedTests == "" {
			t.Error("comprehensive run should carry generated tests")
		}
	})
}
