package characters

import (
	"context"

	"github.com/dmitrijs2005/authmaint/internal/models"
)

type Repository interface {
	// ListOrphanBatch returns up to limit characters whose owning credential
	// is gone or no longer verified.
	ListOrphanBatch(ctx context.Context, limit int) ([]models.Character, error)

	// DeleteByIDs removes the given characters and reports how many rows
	// were actually deleted.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
