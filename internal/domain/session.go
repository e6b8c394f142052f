package domain

import "time"

// Session is an anonymous ownership handle: exactly one ledger belongs to
// exactly one session, created empty and discarded with it.
type Session struct {
	ID        string
	CreatedAt time.Time
}
