package review

import "time"

type Review struct {
	ID             int64
	UserID         int64
	AuthorUsername string
	Department     string
	Locations      string
	JobTitle       string
	JobDescription string
	HourlyPay      string
	Benefits       string
	Review         string
	Rating         int
	Recommendation bool
	Upvotes        int
	CreatedAt      time.Time
}

// Filter narrows a search. Empty strings and nil bounds match everything.
type Filter struct {
	Title     string
	Location  string
	MinRating *int
	MaxRating *int
}

const (
	MinRating = 1
	MaxRating = 5
)
