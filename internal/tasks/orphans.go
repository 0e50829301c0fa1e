package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/models"
)

// runOrphans deletes characters whose owning credential no longer exists or
// is no longer verified. Deletes run in batches; each batch is archived
// before its transaction commits, so an archive failure leaves the rows in
// place.
func (s *Service) runOrphans(ctx context.Context, runID string) (result, error) {
	var res result

	for batch := 1; ; batch++ {
		rows, err := s.repomanager.Characters(s.db).ListOrphanBatch(ctx, s.batchSize)
		if err != nil {
			return res, fmt.Errorf("error listing orphaned characters: %w", err)
		}
		if len(rows) == 0 {
			return res, nil
		}
		res.examined += int64(len(rows))

		payload, err := characterLines(rows)
		if err != nil {
			return res, fmt.Errorf("error encoding archive payload: %w", err)
		}
		loc, err := s.sink.Store(ctx, TaskOrphans, fmt.Sprintf("%s-%04d", runID, batch), payload)
		if err != nil {
			return res, err
		}
		if res.archivedTo == "" {
			res.archivedTo = loc
		}

		ids := make([]string, len(rows))
		for i, c := range rows {
			ids[i] = c.ID
		}

		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			n, err := s.repomanager.Characters(tx).DeleteByIDs(ctx, ids)
			if err != nil {
				return err
			}
			res.changed += n
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("error deleting orphaned characters: %w", err)
		}

		s.logger.Info(ctx, "orphan batch deleted", "batch", batch, "rows", len(ids))
	}
}

// characterLines renders characters as JSON lines for archival.
func characterLines(rows []models.Character) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range rows {
		rec := map[string]any{
			"id":         c.ID,
			"account_id": c.AccountID,
			"char_id":    c.CharID,
			"name":       c.Name,
		}
		if c.CredentialID.Valid {
			rec["credential_id"] = c.CredentialID.String
		}
		if c.Corporation != "" {
			rec["corporation"] = c.Corporation
		}
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
