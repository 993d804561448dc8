package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/jrev/domain"
)

// ReviewUseCase orchestrates a full review run: collecting files, running
// the review service, and writing the result in the requested format.
type ReviewUseCase struct {
	service    domain.ReviewService
	gate       domain.GateService
	writer     domain.ReportWriter
	fileHelper *FileHelper
	outputDir  string
}

// ReviewResult holds the outcome of one review run
type ReviewResult struct {
	Response *domain.ReviewResponse
	Decision *domain.GateDecision
	Duration time.Duration

	// ReportPath is set when a report file was written
	ReportPath string
}

// Execute performs the review described by the request
func (uc *ReviewUseCase) Execute(ctx context.Context, req domain.ReviewRequest) (*ReviewResult, error) {
	startTime := time.Now()

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to collect Java files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Java files found in the specified paths")
	}
	req.Paths = files

	response, err := uc.service.Review(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &ReviewResult{
		Response: response,
		Duration: time.Since(startTime),
	}

	if req.OutputWriter != nil {
		if err := uc.writer.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	if uc.outputDir != "" {
		path, err := uc.writeReportFile(response, req.OutputFormat)
		if err != nil {
			return nil, err
		}
		result.ReportPath = path
	}

	return result, nil
}

// ExecuteGate runs the review and evaluates the quality gate
func (uc *ReviewUseCase) ExecuteGate(ctx context.Context, req domain.ReviewRequest, gateCfg domain.GateConfig) (*ReviewResult, error) {
	result, err := uc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	decision := uc.gate.Evaluate(result.Response.Aggregate.Files, gateCfg)
	result.Decision = &decision
	return result, nil
}

// writeReportFile writes a timestamped report file into the output directory
func (uc *ReviewUseCase) writeReportFile(response *domain.ReviewResponse, format domain.OutputFormat) (string, error) {
	if err := os.MkdirAll(uc.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := map[domain.OutputFormat]string{
		domain.OutputFormatText:     "txt",
		domain.OutputFormatJSON:     "json",
		domain.OutputFormatYAML:     "yaml",
		domain.OutputFormatMarkdown: "md",
	}[format]
	if ext == "" {
		ext = "txt"
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(uc.outputDir, fmt.Sprintf("java_review_%s.%s", timestamp, ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := uc.writer.Write(response, format, f); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

// ReviewUseCaseBuilder builds a ReviewUseCase
type ReviewUseCaseBuilder struct {
	service    domain.ReviewService
	gate       domain.GateService
	writer     domain.ReportWriter
	fileHelper *FileHelper
	outputDir  string
}

// NewReviewUseCaseBuilder creates a new builder
func NewReviewUseCaseBuilder() *ReviewUseCaseBuilder {
	return &ReviewUseCaseBuilder{}
}

// WithReviewService sets the review service
func (b *ReviewUseCaseBuilder) WithReviewService(s domain.ReviewService) *ReviewUseCaseBuilder {
	b.service = s
	return b
}

// WithGateService sets the gate service
func (b *ReviewUseCaseBuilder) WithGateService(g domain.GateService) *ReviewUseCaseBuilder {
	b.gate = g
	return b
}

// WithReportWriter sets the report writer
func (b *ReviewUseCaseBuilder) WithReportWriter(w domain.ReportWriter) *ReviewUseCaseBuilder {
	b.writer = w
	return b
}

// WithFileHelper sets the file helper
func (b *ReviewUseCaseBuilder) WithFileHelper(fh *FileHelper) *ReviewUseCaseBuilder {
	b.fileHelper = fh
	return b
}

// WithOutputDirectory also writes a timestamped report file into dir
func (b *ReviewUseCaseBuilder) WithOutputDirectory(dir string) *ReviewUseCaseBuilder {
	b.outputDir = dir
	return b
}

// Build creates the ReviewUseCase
func (b *ReviewUseCaseBuilder) Build() (*ReviewUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("review service is required")
	}
	if b.writer == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	uc := &ReviewUseCase{
		service:    b.service,
		gate:       b.gate,
		writer:     b.writer,
		fileHelper: b.fileHelper,
		outputDir:  b.outputDir,
	}
	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}
	return uc, nil
}
