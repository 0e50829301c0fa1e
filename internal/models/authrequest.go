package models

import "time"

// AuthRequest is a pending third-party authorization handshake. Rows are
// short-lived and swept once Expires has passed.
type AuthRequest struct {
	ID         string
	AccountID  string
	AppName    string
	SuccessURL string
	FailureURL string
	Expires    time.Time
}
