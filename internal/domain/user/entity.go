package user

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	ImageFile    string
	IsRecruiter  bool
	CreatedAt    time.Time
}

const DefaultImageFile = "default.jpg"
