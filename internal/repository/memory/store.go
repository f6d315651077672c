// Package memory holds the relational core in process. The server falls back
// to it when no database is configured; tests use it as their fake.
package memory

import (
	"sync"
	"time"

	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/domain/meeting"
	"campus-jobs/internal/domain/posting"
	"campus-jobs/internal/domain/review"
	"campus-jobs/internal/domain/tracker"
	"campus-jobs/internal/domain/user"
)

type appKey struct {
	postingID   int64
	recruiterID int64
	applicantID int64
}

// Store is shared by every repository it hands out so the same lock guards
// cross-table rules such as the posting cascade.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	users       map[int64]user.User
	reviews     map[int64]review.Review
	postings    map[int64]posting.Posting
	apps        map[appKey]application.Application
	experiences map[int64]experience.Experience
	meetings    map[int64]meeting.Meeting
	tracked     map[int64]tracker.Entry
}

func New() *Store {
	return &Store{
		now:         func() time.Time { return time.Now().UTC() },
		seq:         map[string]int64{},
		users:       map[int64]user.User{},
		reviews:     map[int64]review.Review{},
		postings:    map[int64]posting.Posting{},
		apps:        map[appKey]application.Application{},
		experiences: map[int64]experience.Experience{},
		meetings:    map[int64]meeting.Meeting{},
		tracked:     map[int64]tracker.Entry{},
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Reviews() *ReviewRepository {
	return &ReviewRepository{s: s}
}

func (s *Store) Postings() *PostingRepository {
	return &PostingRepository{s: s}
}

func (s *Store) Applications() *ApplicationRepository {
	return &ApplicationRepository{s: s}
}

func (s *Store) Experiences() *ExperienceRepository {
	return &ExperienceRepository{s: s}
}

func (s *Store) Meetings() *MeetingRepository {
	return &MeetingRepository{s: s}
}

func (s *Store) Tracker() *TrackerRepository {
	return &TrackerRepository{s: s}
}

// next must be called with mu held for writing.
func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) username(id int64) string {
	return s.users[id].Username
}

func (s *Store) userByUsername(username string) (user.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return user.User{}, false
}
