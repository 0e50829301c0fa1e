// Package archive stores copies of rows that maintenance tasks are about to
// delete, so destructive sweeps can be audited or reversed by hand.
package archive

import "context"

// Sink persists one archive object per deleted batch and returns its
// location. name is unique within the task, typically <run-id>-<batch>.
type Sink interface {
	Store(ctx context.Context, task, name string, payload []byte) (string, error)
}

// NopSink discards payloads. Used when no archive bucket is configured.
type NopSink struct{}

func (NopSink) Store(ctx context.Context, task, name string, payload []byte) (string, error) {
	return "", nil
}
