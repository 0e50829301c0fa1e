package tasks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
)

// runCasefold lowercases usernames and email addresses that still carry
// uppercase characters. Accounts whose lowered username would collide with
// another account are skipped and reported; merging accounts is an operator
// decision, not ours.
func (s *Service) runCasefold(ctx context.Context) (result, error) {
	repo := s.repomanager.Accounts(s.db)

	conflicting, err := repo.ListFoldConflicts(ctx)
	if err != nil {
		return result{}, fmt.Errorf("error listing fold conflicts: %w", err)
	}

	skip := make(map[string]struct{}, len(conflicting))
	conflicts := make([]string, 0, len(conflicting))
	for _, a := range conflicting {
		skip[a.ID] = struct{}{}
		conflicts = append(conflicts, a.Username)
	}

	candidates, err := repo.ListCaseSensitive(ctx)
	if err != nil {
		return result{}, fmt.Errorf("error listing case-sensitive accounts: %w", err)
	}

	res := result{examined: int64(len(candidates)), conflicts: conflicts}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Accounts(tx)
		for _, a := range candidates {
			if _, ok := skip[a.ID]; ok {
				continue
			}
			if err := repoTx.FoldCase(ctx, a.ID); err != nil {
				return fmt.Errorf("error folding account %s: %w", a.ID, err)
			}
			res.changed++
		}
		return nil
	})
	if err != nil {
		return result{examined: res.examined, conflicts: conflicts}, err
	}

	if len(conflicts) > 0 {
		res.detail = fmt.Sprintf("%d accounts skipped: lowercase username collision", len(conflicts))
		s.logger.Warn(ctx, "casefold skipped conflicting accounts", "usernames", conflicts)
	}

	return res, nil
}
