package experience

import "time"

type Experience struct {
	ID          int64
	Username    string
	JobTitle    string
	CompanyName string
	Location    string
	Duration    string
	Description string
	Skills      *string
	CreatedAt   time.Time
}

// Candidate is an experience joined to its non-recruiter owner.
type Candidate struct {
	Experience Experience
	UserID     int64
	Email      string
	ImageFile  string
}

type SearchType string

const (
	SearchByRole   SearchType = "role"
	SearchBySkills SearchType = "skills"
)

func (t SearchType) Valid() bool {
	return t == SearchByRole || t == SearchBySkills
}
