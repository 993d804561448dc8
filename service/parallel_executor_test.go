package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ludo-technologies/jrev/domain"
	"github.com/ludo-technologies/jrev/internal/config"
)

type countingTask struct {
	name    string
	enabled bool
	err     error
	delay   time.Duration
	runs    *atomic.Int32
}

func (t *countingTask) Name() string    { return t.name }
func (t *countingTask) IsEnabled() bool { return t.enabled }

func (t *countingTask) Execute(ctx context.Context) error {
	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	t.runs.Add(1)
	return t.err
}

func TestParallelExecutor(t *testing.T) {
	t.Run("runs all enabled tasks", func(t *testing.T) {
		var runs atomic.Int32
		tasks := []domain.ReviewTask{
			&countingTask{name: "a", enabled: true, runs: &runs},
			&countingTask{name: "b", enabled: true, runs: &runs},
			&countingTask{name: "c", enabled: false, runs: &runs},
		}

		executor := NewParallelExecutor()
		if err := executor.Execute(context.Background(), tasks); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runs.Load() != 2 {
			t.Errorf("ran %d tasks, want 2", runs.Load())
		}
	})

	t.Run("failures do not stop other tasks", func(t *testing.T) {
		var runs atomic.Int32
		boom := errors.New("boom")
		tasks := []domain.ReviewTask{
			&countingTask{name: "bad", enabled: true, err: boom, runs: &runs},
			&countingTask{name: "good", enabled: true, runs: &runs},
		}

		executor := NewParallelExecutor()
		err := executor.Execute(context.Background(), tasks)
		if err == nil {
			t.Fatal("expected aggregated error")
		}

		var agg *AggregatedError
		if !errors.As(err, &agg) {
			t.Fatalf("error is not aggregated: %v", err)
		}
		if len(agg.Errors) != 1 || agg.Errors[0].TaskName != "bad" {
			t.Errorf("unexpected aggregation: %+v", agg.Errors)
		}
		if !errors.Is(err, boom) {
			t.Error("underlying error lost through aggregation")
		}
		if runs.Load() != 2 {
			t.Errorf("ran %d tasks, want 2", runs.Load())
		}
	})

	t.Run("no tasks is a no-op", func(t *testing.T) {
		executor := NewParallelExecutor()
		if err := executor.Execute(context.Background(), nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("config fallback for invalid values", func(t *testing.T) {
		executor := NewParallelExecutorFromConfig(&config.PerformanceConfig{
			MaxGoroutines:  -1,
			TimeoutSeconds: 0,
		})
		if executor.maxConcurrency <= 0 {
			t.Errorf("maxConcurrency = %d, want > 0", executor.maxConcurrency)
		}
		if executor.timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want %v", executor.timeout, DefaultTimeout)
		}
	})

	t.Run("timeout cancels slow tasks", func(t *testing.T) {
		var runs atomic.Int32
		tasks := []domain.ReviewTask{
			&countingTask{name: "slow", enabled: true, delay: time.Second, runs: &runs},
		}

		executor := NewParallelExecutor()
		executor.SetTimeout(20 * time.Millisecond)

		start := time.Now()
		err := executor.Execute(context.Background(), tasks)
		if time.Since(start) > 500*time.Millisecond {
			t.Error("timeout was not enforced")
		}
		if err == nil {
			t.Error("expected an aggregated timeout error")
		}
		if runs.Load() != 0 {
			t.Errorf("slow task should not have completed, runs = %d", runs.Load())
		}
	})
}
