package tracker

import "time"

// Entry is one job a user applied to outside the board and tracks by hand.
type Entry struct {
	ID           int64
	UserID       int64
	JobLink      string
	AppliedOn    time.Time
	LastUpdateOn time.Time
	Status       string
	CreatedAt    time.Time
}

const DateLayout = "2006-01-02"
