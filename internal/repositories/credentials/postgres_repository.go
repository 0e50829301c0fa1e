package credentials

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListDuplicateBatch(ctx context.Context, limit int) ([]models.Credential, error) {
	// The survivor per key ID is the row with the earliest created_at,
	// id breaking ties; everything ranked behind it is a duplicate.
	query :=
		`SELECT id, account_id, key_id, verification_code, verified, created_at FROM (
		   SELECT id, account_id, key_id, verification_code, verified, created_at,
		          row_number() OVER (PARTITION BY key_id ORDER BY created_at, id) AS rn
		   FROM credentials
		 ) ranked
		 WHERE rn > 1
		 ORDER BY key_id, created_at
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Credential
	for rows.Next() {
		var c models.Credential
		if err := rows.Scan(&c.ID, &c.AccountID, &c.KeyID, &c.VerificationCode, &c.Verified, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM credentials WHERE id IN (%s)`, dbx.Placeholders(len(ids)))

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
