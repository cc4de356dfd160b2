package app

import (
	"time"

	"gallery-go/internal/gallery"
)

// Operation describes one CLI invocation. Its ID tags every log line the
// invocation writes.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewOperation starts an operation named after the CLI command.
func NewOperation(name string, clock gallery.Clock) *Operation {
	now := clock.Now().UTC()
	return &Operation{
		ID:        now.Format("20060102T150405Z"),
		Name:      name,
		StartedAt: now,
		Status:    "success",
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Elapsed returns the time since the operation started, to the millisecond.
func (op *Operation) Elapsed(clock gallery.Clock) time.Duration {
	return clock.Now().Sub(op.StartedAt).Truncate(time.Millisecond)
}
