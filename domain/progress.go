package domain

import "context"

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	// StartTask creates a progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress output is shown
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// ReviewTask is a unit of work executed by the parallel executor
type ReviewTask interface {
	// Name identifies the task in error reports
	Name() string

	// IsEnabled reports whether the task should run
	IsEnabled() bool

	// Execute runs the task
	Execute(ctx context.Context) error
}
