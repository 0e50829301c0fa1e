package accounts

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, admin, created_at, modified_at FROM accounts
		 WHERE username = $1
		 `

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Admin, &a.CreatedAt, &a.ModifiedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListCaseSensitive(ctx context.Context) ([]models.Account, error) {
	query :=
		`SELECT id, username, email FROM accounts
		 WHERE username <> lower(username) OR email <> lower(email)
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListFoldConflicts(ctx context.Context) ([]models.Account, error) {
	query :=
		`SELECT a.id, a.username, a.email FROM accounts a
		 WHERE a.username <> lower(a.username)
		   AND EXISTS (
		     SELECT 1 FROM accounts b
		     WHERE b.id <> a.id AND lower(b.username) = lower(a.username)
		   )
		 ORDER BY a.username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) FoldCase(ctx context.Context, id string) error {
	query :=
		`UPDATE accounts
		 SET username = lower(username), email = lower(email), modified_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
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
