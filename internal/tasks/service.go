// Package tasks implements the maintenance procedures from the upgrade
// runbook: folding usernames and emails to lowercase, sweeping orphaned
// characters, purging duplicate API keys, and expiring stale authorization
// requests. Every run is recorded in maintenance_runs and rows are archived
// before deletion when an archive sink is configured.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authmaint/internal/archive"
	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/logging"
	"github.com/dmitrijs2005/authmaint/internal/metrics"
	"github.com/dmitrijs2005/authmaint/internal/models"
	"github.com/dmitrijs2005/authmaint/internal/repositories/repomanager"
)

// Task names as used on the command line and the admin API.
const (
	TaskCasefold = "casefold"
	TaskOrphans  = "orphans"
	TaskDupKeys  = "dupkeys"
	TaskAuthReqs = "authreqs"
)

// Names lists all tasks in their recommended execution order.
func Names() []string {
	return []string{TaskCasefold, TaskOrphans, TaskDupKeys, TaskAuthReqs}
}

// IsDestructive reports whether a task deletes rows and therefore needs
// operator confirmation.
func IsDestructive(name string) bool {
	switch name {
	case TaskOrphans, TaskDupKeys, TaskAuthReqs:
		return true
	}
	return false
}

// result is the internal outcome of one task body.
type result struct {
	examined   int64
	changed    int64
	conflicts  []string
	archivedTo string
	detail     string
}

// Service runs maintenance tasks against the application database.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sink        archive.Sink
	logger      logging.Logger
	batchSize   int
}

// NewService constructs a task Service. sink may be archive.NopSink{} when
// archival is disabled.
func NewService(db *sql.DB, m repomanager.RepositoryManager, sink archive.Sink, logger logging.Logger, batchSize int) *Service {
	return &Service{
		db:          db,
		repomanager: m,
		sink:        sink,
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Run executes the named task, records its maintenance_runs row, and returns
// a report. The run row is closed as failed when the task body errors.
func (s *Service) Run(ctx context.Context, name string) (*models.Report, error) {
	run := &models.Run{ID: uuid.New().String(), Task: name}

	runRepo := s.repomanager.Runs(s.db)
	if err := runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("error recording run start: %w", err)
	}

	log := s.logger.With("task", name, "run_id", run.ID)
	log.Info(ctx, "task started")
	start := time.Now()

	var res result
	var err error
	switch name {
	case TaskCasefold:
		res, err = s.runCasefold(ctx)
	case TaskOrphans:
		res, err = s.runOrphans(ctx, run.ID)
	case TaskDupKeys:
		res, err = s.runDupKeys(ctx, run.ID)
	case TaskAuthReqs:
		res, err = s.runAuthReqs(ctx)
	default:
		err = fmt.Errorf("%w: %s", common.ErrorUnknownTask, name)
	}

	elapsed := time.Since(start)

	status := models.RunStatusOK
	detail := res.detail
	if err != nil {
		status = models.RunStatusFailed
		detail = err.Error()
	}

	if finishErr := runRepo.Finish(ctx, run.ID, status, res.examined, res.changed, detail); finishErr != nil {
		log.Error(ctx, "error recording run finish", "error", finishErr)
		if err == nil {
			err = finishErr
		}
	}

	metrics.ObserveRun(name, status, res.examined, res.changed, elapsed.Seconds())

	if err != nil {
		log.Error(ctx, "task failed", "error", err)
		return nil, err
	}

	log.Info(ctx, "task finished",
		"rows_examined", res.examined, "rows_changed", res.changed, "elapsed", elapsed)

	return &models.Report{
		Task:         name,
		RunID:        run.ID,
		RowsExamined: res.examined,
		RowsChanged:  res.changed,
		Conflicts:    res.conflicts,
		ArchivedTo:   res.archivedTo,
		StartedAt:    start,
		FinishedAt:   start.Add(elapsed),
	}, nil
}

// RunMigrations applies the embedded schema migrations.
func (s *Service) RunMigrations(ctx context.Context) error {
	return s.repomanager.RunMigrations(ctx, s.db)
}

// ListRuns returns the most recent recorded runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.repomanager.Runs(s.db).List(ctx, limit)
}

// GetAccount looks an account up by username. Used by the token command.
func (s *Service) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
}
