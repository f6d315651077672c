package dto

import (
	"time"

	"campus-jobs/internal/domain/tracker"
)

type TrackerEntryResponse struct {
	ID           int64     `json:"id"`
	JobLink      string    `json:"job_link"`
	AppliedOn    string    `json:"applied_on"`
	LastUpdateOn string    `json:"last_update_on"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewTrackerEntryResponse(e tracker.Entry) TrackerEntryResponse {
	return TrackerEntryResponse{
		ID:           e.ID,
		JobLink:      e.JobLink,
		AppliedOn:    e.AppliedOn.Format(tracker.DateLayout),
		LastUpdateOn: e.LastUpdateOn.Format(tracker.DateLayout),
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

func NewTrackerList(in []tracker.Entry) []TrackerEntryResponse {
	out := make([]TrackerEntryResponse, 0, len(in))
	for _, e := range in {
		out = append(out, NewTrackerEntryResponse(e))
	}
	return out
}
