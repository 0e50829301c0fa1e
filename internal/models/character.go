package models

import "database/sql"

// Character is a game character discovered through an account's credential.
// CredentialID is nulled when the owning credential row is deleted; such
// characters are orphans and are removed by the orphans task.
type Character struct {
	ID           string
	AccountID    string
	CredentialID sql.NullString
	CharID       int64
	Name         string
	Corporation  string
}
