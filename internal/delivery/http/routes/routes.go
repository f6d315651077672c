package routes

import (
	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/handler"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/ws"
)

// Registry holds every HTTP handler the server exposes.
type Registry struct {
	Auth        *middleware.AuthMiddleware
	Health      *handler.HealthHandler
	AuthH       *handler.AuthHandler
	Users       *handler.UserHandler
	Reviews     *handler.ReviewHandler
	Postings    *handler.PostingHandler
	Apps        *handler.ApplicationHandler
	Experiences *handler.ExperienceHandler
	Meetings    *handler.MeetingHandler
	Tracker     *handler.TrackerHandler
	Jobs        *handler.JobsHandler
	WS          *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/jobs", r.WS.HandleJobs)
	}

	r.registerV1(app.Group("/api").Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	auth := r.Auth.Middleware()

	r.AuthH.RegisterRoutes(v1)
	r.Users.RegisterRoutes(v1, auth)
	r.Reviews.RegisterRoutes(v1, auth)
	r.Postings.RegisterRoutes(v1, auth)
	r.Apps.RegisterRoutes(v1, auth)
	r.Experiences.RegisterRoutes(v1, auth)
	r.Meetings.RegisterRoutes(v1, auth)
	r.Tracker.RegisterRoutes(v1, auth)
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(v1)
	}
}
