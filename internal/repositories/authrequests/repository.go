package authrequests

import "context"

type Repository interface {
	// CountExpired reports how many authorization requests have passed
	// their expiry.
	CountExpired(ctx context.Context) (int64, error)

	// DeleteExpired removes expired authorization requests and reports how
	// many rows were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
