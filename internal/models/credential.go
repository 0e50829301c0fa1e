package models

import "time"

// Credential is an API key registered by an account. KeyID is assigned by the
// upstream API and is expected to be unique; historical data contains
// duplicate rows sharing a KeyID, which the dupkeys task removes.
type Credential struct {
	ID               string
	AccountID        string
	KeyID            int64
	VerificationCode string
	Verified         bool
	CreatedAt        time.Time
}
