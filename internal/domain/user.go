package domain

import "time"

// User is the domain model for reporters, keyed by the Messenger sender id.
// Rows are created lazily on first report submission and never updated.
type User struct {
	ID         string
	FacebookID string
	Name       *string
	CreatedAt  time.Time
}
