package runs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, run *models.Run) error {
	query :=
		`INSERT INTO maintenance_runs (id, task, status)
		 VALUES ($1, $2, $3)
		 RETURNING started_at
		 `

	err := r.db.QueryRowContext(ctx, query, run.ID, run.Task, models.RunStatusRunning).Scan(&run.StartedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	run.Status = models.RunStatusRunning

	return nil
}

func (r *PostgresRepository) Finish(ctx context.Context, id, status string, examined, changed int64, detail string) error {
	query :=
		`UPDATE maintenance_runs
		 SET status = $2, finished_at = now(), rows_examined = $3, rows_changed = $4, detail = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, status, examined, changed, detail)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]models.Run, error) {
	query :=
		`SELECT id, task, status, started_at, finished_at, rows_examined, rows_changed, detail
		 FROM maintenance_runs
		 ORDER BY started_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Run
	for rows.Next() {
		var m models.Run
		if err := rows.Scan(&m.ID, &m.Task, &m.Status, &m.StartedAt, &m.FinishedAt, &m.RowsExamined, &m.RowsChanged, &m.Detail); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
