package runs

import (
	"context"

	"github.com/dmitrijs2005/authmaint/internal/models"
)

type Repository interface {
	// Create records the start of a task run.
	Create(ctx context.Context, run *models.Run) error

	// Finish closes a run with its outcome and row counts.
	Finish(ctx context.Context, id, status string, examined, changed int64, detail string) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]models.Run, error)
}
