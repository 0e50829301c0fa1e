package models

import "time"

// Account is a user account. Usernames and email addresses are stored
// lowercase; rows predating that rule are folded by the casefold task.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Admin        bool
	CreatedAt    time.Time
	ModifiedAt   time.Time
}
