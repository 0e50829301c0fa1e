package characters

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

func (r *PostgresRepository) ListOrphanBatch(ctx context.Context, limit int) ([]models.Character, error) {
	query :=
		`SELECT c.id, c.account_id, c.credential_id, c.char_id, c.name, c.corporation
		 FROM characters c
		 LEFT JOIN credentials k ON k.id = c.credential_id
		 WHERE k.id IS NULL OR NOT k.verified
		 ORDER BY c.char_id
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Character
	for rows.Next() {
		var c models.Character
		if err := rows.Scan(&c.ID, &c.AccountID, &c.CredentialID, &c.CharID, &c.Name, &c.Corporation); err != nil {
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

	query := fmt.Sprintf(`DELETE FROM characters WHERE id IN (%s)`, dbx.Placeholders(len(ids)))

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
