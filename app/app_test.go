package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/jrev/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileHelperCollectJavaFiles(t *testing.T) {
	t.Run("collects java files recursively", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")
		writeFile(t, filepath.Join(dir, "sub", "B.java"), "class B {}")
		writeFile(t, filepath.Join(dir, "README.md"), "# readme")

		files, err := NewFileHelper().CollectJavaFiles([]string{dir}, true, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Errorf("got %d files, want 2: %v", len(files), files)
		}
	})

	t.Run("non-recursive stays at the top level", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")
		writeFile(t, filepath.Join(dir, "sub", "B.java"), "class B {}")

		files, err := NewFileHelper().CollectJavaFiles([]string{dir}, false, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("got %d files, want 1: %v", len(files), files)
		}
	})

	t.Run("excluded directories are skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")
		writeFile(t, filepath.Join(dir, "target", "Gen.java"), "class Gen {}")

		files, err := NewFileHelper().CollectJavaFiles([]string{dir}, true, nil, []string{"target"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("got %d files, want 1: %v", len(files), files)
		}
	})

	t.Run("gitignore is respected", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".gitignore"), "Generated.java\n")
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")
		writeFile(t, filepath.Join(dir, "Generated.java"), "class Generated {}")

		files, err := NewFileHelper().CollectJavaFiles([]string{dir}, true, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("got %d files, want 1: %v", len(files), files)
		}

		files, err = NewFileHelperWithOptions(false).CollectJavaFiles([]string{dir}, true, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Errorf("gitignore should be ignored when disabled, got %v", files)
		}
	})

	t.Run("single file path passes through", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "A.java")
		writeFile(t, path, "class A {}")

		files, err := NewFileHelper().CollectJavaFiles([]string{path}, true, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0] != path {
			t.Errorf("got %v, want [%s]", files, path)
		}
	})

	t.Run("missing path is an error", func(t *testing.T) {
		_, err := NewFileHelper().CollectJavaFiles([]string{"/does/not/exist"}, true, nil, nil)
		if err == nil {
			t.Error("expected error for missing path")
		}
	})
}

func TestFileHelperPredicates(t *testing.T) {
	h := NewFileHelper()

	if !h.IsValidJavaFile("Foo.java") || !h.IsValidJavaFile("dir/Foo.JAVA") {
		t.Error("java extension not recognized")
	}
	if h.IsValidJavaFile("Foo.kt") || h.IsValidJavaFile("Foo") {
		t.Error("non-java file accepted")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "A.java")
	writeFile(t, path, "class A {}")

	exists, err := h.FileExists(path)
	if err != nil || !exists {
		t.Errorf("FileExists(%s) = %v, %v", path, exists, err)
	}
	exists, err = h.FileExists(dir)
	if err != nil || exists {
		t.Errorf("a directory is not a file: %v, %v", exists, err)
	}
	exists, err = h.FileExists(filepath.Join(dir, "missing.java"))
	if err != nil || exists {
		t.Errorf("missing file reported as existing: %v, %v", exists, err)
	}
}

// fakeReviewService returns a canned response for use case tests
type fakeReviewService struct {
	response *domain.ReviewResponse
	err      error
	gotReq   domain.ReviewRequest
}

func (f *fakeReviewService) Review(ctx context.Context, req domain.ReviewRequest) (*domain.ReviewResponse, error) {
	f.gotReq = req
	return f.response, f.err
}

func (f *fakeReviewService) ReviewUnit(ctx context.Context, unit *domain.SourceUnit) (*domain.FileReport, error) {
	return nil, nil
}

// fakeReportWriter records what it was asked to write
type fakeReportWriter struct {
	writes int
	format domain.OutputFormat
}

func (f *fakeReportWriter) Write(response *domain.ReviewResponse, format domain.OutputFormat, writer io.Writer) error {
	f.writes++
	f.format = format
	_, err := writer.Write([]byte("report\n"))
	return err
}

// fakeGateService returns a fixed decision
type fakeGateService struct {
	decision domain.GateDecision
}

func (f *fakeGateService) Evaluate(reports []domain.FileReport, cfg domain.GateConfig) domain.GateDecision {
	return f.decision
}

func cannedResponse(score float64) *domain.ReviewResponse {
	return &domain.ReviewResponse{
		Aggregate: domain.NewAggregateReport([]domain.FileReport{
			{FilePath: "A.java", FileName: "A.java", Score: score, Issues: []domain.Issue{}},
		}),
	}
}

func TestReviewUseCase(t *testing.T) {
	t.Run("builder requires a service", func(t *testing.T) {
		_, err := NewReviewUseCaseBuilder().WithReportWriter(&fakeReportWriter{}).Build()
		if err == nil {
			t.Error("expected error without review service")
		}
	})

	t.Run("executes and writes the report", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")

		svc := &fakeReviewService{response: cannedResponse(100)}
		writer := &fakeReportWriter{}
		uc, err := NewReviewUseCaseBuilder().
			WithReviewService(svc).
			WithReportWriter(writer).
			Build()
		if err != nil {
			t.Fatal(err)
		}

		result, err := uc.Execute(context.Background(), domain.ReviewRequest{
			Paths:        []string{dir},
			OutputFormat: domain.OutputFormatJSON,
			OutputWriter: io.Discard,
			Recursive:    true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if writer.writes != 1 || writer.format != domain.OutputFormatJSON {
			t.Errorf("report not written: %+v", writer)
		}
		if len(svc.gotReq.Paths) != 1 {
			t.Errorf("collected paths not passed to service: %v", svc.gotReq.Paths)
		}
		if result.Response == nil {
			t.Error("missing response in result")
		}
	})

	t.Run("no java files is an error", func(t *testing.T) {
		uc, err := NewReviewUseCaseBuilder().
			WithReviewService(&fakeReviewService{response: cannedResponse(100)}).
			WithReportWriter(&fakeReportWriter{}).
			Build()
		if err != nil {
			t.Fatal(err)
		}

		_, err = uc.Execute(context.Background(), domain.ReviewRequest{
			Paths:     []string{t.TempDir()},
			Recursive: true,
		})
		if err == nil {
			t.Error("expected error for empty directory")
		}
	})

	t.Run("gate decision is attached", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "A.java"), "class A {}")

		uc, err := NewReviewUseCaseBuilder().
			WithReviewService(&fakeReviewService{response: cannedResponse(50)}).
			WithGateService(&fakeGateService{decision: domain.GateDecision{Passed: false}}).
			WithReportWriter(&fakeReportWriter{}).
			Build()
		if err != nil {
			t.Fatal(err)
		}

		result, err := uc.ExecuteGate(context.Background(), domain.ReviewRequest{
			Paths:     []string{dir},
			Recursive: true,
		}, domain.DefaultGateConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Decision == nil || result.Decision.Passed {
			t.Errorf("gate decision not attached or wrong: %+v", result.Decision)
		}
	})

	t.Run("report file is written to the output directory", func(t *testing.T) {
		srcDir := t.TempDir()
		writeFile(t, filepath.Join(srcDir, "A.java"), "class A {}")
		outDir := filepath.Join(t.TempDir(), "reports")

		uc, err := NewReviewUseCaseBuilder().
			WithReviewService(&fakeReviewService{response: cannedResponse(100)}).
			WithReportWriter(&fakeReportWriter{}).
			WithOutputDirectory(outDir).
			Build()
		if err != nil {
			t.Fatal(err)
		}

		result, err := uc.Execute(context.Background(), domain.ReviewRequest{
			Paths:        []string{srcDir},
			OutputFormat: domain.OutputFormatMarkdown,
			Recursive:    true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ReportPath == "" {
			t.Fatal("no report path returned")
		}
		if filepath.Ext(result.ReportPath) != ".md" {
			t.Errorf("report extension = %s, want .md", filepath.Ext(result.ReportPath))
		}
		if _, err := os.Stat(result.ReportPath); err != nil {
			t.Errorf("report file missing: %v", err)
		}
	})
}
