package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"campus-jobs/internal/feed"
)

const EventUpdateJobs = "update_jobs"

type Event struct {
	Type        string         `json:"type"`
	Jobs        []feed.Listing `json:"jobs"`
	RefreshedAt string         `json:"refreshed_at"`
}

func NewUpdateJobsEvent(snap feed.Snapshot) Event {
	jobs := snap.Listings
	if jobs == nil {
		jobs = []feed.Listing{}
	}
	return Event{
		Type:        EventUpdateJobs,
		Jobs:        jobs,
		RefreshedAt: snap.RefreshedAt.UTC().Format(time.RFC3339),
	}
}

// FeedUpdated broadcasts the snapshot to every connected client.
func (h *Hub) FeedUpdated(_ context.Context, snap feed.Snapshot) {
	if h == nil {
		return
	}
	b, err := json.Marshal(NewUpdateJobsEvent(snap))
	if err != nil {
		h.logger.Error("ws encode update_jobs", zap.Error(err))
		return
	}
	h.Broadcast(b)
}
