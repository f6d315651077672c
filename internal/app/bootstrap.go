package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/handler"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/delivery/http/routes"
	"campus-jobs/internal/feed"
	"campus-jobs/internal/pkg/jwt"
	"campus-jobs/internal/usecase"
	ucapplication "campus-jobs/internal/usecase/application"
	ucexperience "campus-jobs/internal/usecase/experience"
	ucmeeting "campus-jobs/internal/usecase/meeting"
	ucposting "campus-jobs/internal/usecase/posting"
	ucreview "campus-jobs/internal/usecase/review"
	uctracker "campus-jobs/internal/usecase/tracker"
	ucuser "campus-jobs/internal/usecase/user"
	"campus-jobs/internal/ws"
)

// NewServer wires usecases and handlers on top of c and returns the fiber
// app. hub and feedStore may be nil, which disables the live feed routes.
func NewServer(c *Container, hub *ws.Hub, feedStore *feed.Store) *fiber.App {
	cfg := c.Config
	repos := c.Repos

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authUC := usecase.NewAuthUsecase(repos.Users, jwtSvc)
	userUC := ucuser.NewService(repos.Users, repos.Experiences)
	reviewUC := ucreview.NewService(repos.Reviews)
	postingUC := ucposting.NewService(repos.Postings, repos.Users, c.Events, c.Logger)
	applicationUC := ucapplication.NewService(repos.Applications, repos.Postings, repos.Users, c.Events, c.Logger)
	experienceUC := ucexperience.NewService(repos.Experiences, repos.Users)
	meetingUC := ucmeeting.NewService(repos.Meetings, repos.Users, c.Events, c.Logger)
	trackerUC := uctracker.NewService(repos.Tracker)

	checks := map[string]handler.Check{}
	for name, fn := range c.Checks() {
		checks[name] = fn
	}

	reg := &routes.Registry{
		Auth:        middleware.NewAuthMiddleware(jwtSvc),
		Health:      handler.NewHealthHandler(checks),
		AuthH:       handler.NewAuthHandler(authUC, jwtSvc.AccessTTL(), jwtSvc.RefreshTTL(), cfg.JWT.CookieSecure),
		Users:       handler.NewUserHandler(userUC),
		Reviews:     handler.NewReviewHandler(reviewUC),
		Postings:    handler.NewPostingHandler(postingUC),
		Apps:        handler.NewApplicationHandler(applicationUC),
		Experiences: handler.NewExperienceHandler(experienceUC),
		Meetings:    handler.NewMeetingHandler(meetingUC),
		Tracker:     handler.NewTrackerHandler(trackerUC),
	}
	if feedStore != nil {
		reg.Jobs = handler.NewJobsHandler(feedStore)
	}
	if hub != nil {
		var snapshots ws.SnapshotSource
		if feedStore != nil {
			snapshots = feedStore
		}
		reg.WS = ws.NewHandler(hub, snapshots, c.Logger)
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	reg.Register(f)

	return f
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
