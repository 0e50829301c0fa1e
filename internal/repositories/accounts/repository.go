package accounts

import (
	"context"

	"github.com/dmitrijs2005/authmaint/internal/models"
)

type Repository interface {
	// GetByUsername looks an account up by its exact username.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// ListCaseSensitive returns accounts whose username or email is not
	// already lowercase.
	ListCaseSensitive(ctx context.Context) ([]models.Account, error)

	// ListFoldConflicts returns accounts whose lowered username collides
	// with another account's lowered username.
	ListFoldConflicts(ctx context.Context) ([]models.Account, error)

	// FoldCase lowercases the username and email of a single account.
	FoldCase(ctx context.Context, id string) error
}
