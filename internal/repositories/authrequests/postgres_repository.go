package authrequests

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountExpired(ctx context.Context) (int64, error) {
	query :=
		`SELECT count(*) FROM auth_requests
		 WHERE expires < now()
		 `

	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM auth_requests
		 WHERE expires < now()
		 `

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
