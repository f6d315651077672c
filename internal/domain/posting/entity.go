package posting

import "time"

type Posting struct {
	ID                int64
	RecruiterID       int64
	RecruiterUsername string
	JobTitle          string
	JobDescription    string
	JobLink           string
	JobLocation       string
	JobPayRate        string
	MaxHoursAllowed   int
	CreatedAt         time.Time
}
