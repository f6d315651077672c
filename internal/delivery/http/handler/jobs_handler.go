package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/feed"
	"campus-jobs/internal/pkg/response"
)

type FeedReader interface {
	Get(ctx context.Context) feed.Snapshot
}

type JobsHandler struct {
	feed FeedReader
}

func NewJobsHandler(f FeedReader) *JobsHandler {
	return &JobsHandler{feed: f}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/jobs", h.List)
}

// List returns the last scraped snapshot; it never triggers a scrape.
func (h *JobsHandler) List(c fiber.Ctx) error {
	return response.OK(c, h.feed.Get(c.Context()))
}
