package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/authmaint/internal/dbx"
	"github.com/dmitrijs2005/authmaint/internal/models"
)

// runDupKeys purges credential rows that duplicate an older row's key ID.
// The oldest row per key ID survives. Characters attached to a purged row
// keep their account but lose the credential link and become candidates for
// the orphans task, which is why the runbook orders dupkeys before a final
// orphan sweep on badly damaged databases.
func (s *Service) runDupKeys(ctx context.Context, runID string) (result, error) {
	var res result

	for batch := 1; ; batch++ {
		rows, err := s.repomanager.Credentials(s.db).ListDuplicateBatch(ctx, s.batchSize)
		if err != nil {
			return res, fmt.Errorf("error listing duplicate keys: %w", err)
		}
		if len(rows) == 0 {
			return res, nil
		}
		res.examined += int64(len(rows))

		payload, err := credentialLines(rows)
		if err != nil {
			return res, fmt.Errorf("error encoding archive payload: %w", err)
		}
		loc, err := s.sink.Store(ctx, TaskDupKeys, fmt.Sprintf("%s-%04d", runID, batch), payload)
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
			n, err := s.repomanager.Credentials(tx).DeleteByIDs(ctx, ids)
			if err != nil {
				return err
			}
			res.changed += n
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("error deleting duplicate keys: %w", err)
		}

		s.logger.Info(ctx, "duplicate key batch deleted", "batch", batch, "rows", len(ids))
	}
}

// credentialLines renders credentials as JSON lines for archival. The
// verification code is included on purpose: the archive is the only place
// the purged secret survives for manual recovery.
func credentialLines(rows []models.Credential) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range rows {
		rec := map[string]any{
			"id":                c.ID,
			"account_id":        c.AccountID,
			"key_id":            c.KeyID,
			"verification_code": c.VerificationCode,
			"verified":          c.Verified,
			"created_at":        c.CreatedAt,
		}
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
