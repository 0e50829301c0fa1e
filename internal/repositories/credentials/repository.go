package credentials

import (
	"context"

	"github.com/dmitrijs2005/authmaint/internal/models"
)

type Repository interface {
	// ListDuplicateBatch returns up to limit credential rows that share a
	// key ID with an older row. The oldest row per key ID is never listed.
	ListDuplicateBatch(ctx context.Context, limit int) ([]models.Credential, error)

	// DeleteByIDs removes the given credentials and reports how many rows
	// were actually deleted.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
