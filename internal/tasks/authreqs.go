package tasks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
)

// runAuthReqs sweeps expired authorization requests. These rows carry no
// recoverable state, so they are not archived. Count and delete share one
// transaction: now() is fixed at transaction start, so both statements use
// the same expiry cutoff and the counts agree.
func (s *Service) runAuthReqs(ctx context.Context) (result, error) {
	var res result

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.AuthRequests(tx)

		expired, err := repo.CountExpired(ctx)
		if err != nil {
			return fmt.Errorf("error counting expired auth requests: %w", err)
		}
		res.examined = expired

		deleted, err := repo.DeleteExpired(ctx)
		if err != nil {
			return fmt.Errorf("error deleting expired auth requests: %w", err)
		}
		res.changed = deleted
		return nil
	})

	return res, err
}
