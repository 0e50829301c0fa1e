package models

import (
	"database/sql"
	"time"
)

// Run statuses stored in maintenance_runs.status.
const (
	RunStatusRunning = "running"
	RunStatusOK      = "ok"
	RunStatusFailed  = "failed"
)

// Run is one recorded execution of a maintenance task.
type Run struct {
	ID           string
	Task         string
	Status       string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	RowsExamined int64
	RowsChanged  int64
	Detail       string
}

// Report summarizes a finished task run for callers (CLI output, admin API).
type Report struct {
	Task         string    `json:"task"`
	RunID        string    `json:"run_id"`
	RowsExamined int64     `json:"rows_examined"`
	RowsChanged  int64     `json:"rows_changed"`
	Conflicts    []string  `json:"conflicts,omitempty"`
	ArchivedTo   string    `json:"archived_to,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}
