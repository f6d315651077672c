package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/domain/experience"
	"campus-jobs/internal/pkg/response"
	ucexperience "campus-jobs/internal/usecase/experience"
)

type ExperienceHandler struct {
	uc *ucexperience.Service
}

type experienceRequest struct {
	JobTitle    string `json:"job_title" validate:"required,max=100"`
	CompanyName string `json:"company_name" validate:"required,max=100"`
	Location    string `json:"location" validate:"max=100"`
	Duration    string `json:"duration" validate:"max=50"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
}

func NewExperienceHandler(uc *ucexperience.Service) *ExperienceHandler {
	return &ExperienceHandler{uc: uc}
}

func (h *ExperienceHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/experiences", auth, h.Add)
	r.Get("/experiences", auth, h.List)
	r.Get("/candidates", auth, h.SearchCandidates)
}

func (h *ExperienceHandler) Add(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req experienceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := h.uc.Add(c.Context(), userID, ucexperience.AddInput{
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		Duration:    req.Duration,
		Description: req.Description,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return response.Created(c, dto.NewExperienceResponse(e))
}

// List returns the caller's experiences, or another user's with ?username=.
func (h *ExperienceHandler) List(c fiber.Ctx) error {
	var (
		out []experience.Experience
		err error
	)
	if username := strings.TrimSpace(c.Query("username")); username != "" {
		out, err = h.uc.ListByUsername(c.Context(), username)
	} else {
		var userID int64
		if userID, err = middleware.UserID(c); err != nil {
			return err
		}
		out, err = h.uc.ListMine(c.Context(), userID)
	}
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewExperienceList(out))
}

func (h *ExperienceHandler) SearchCandidates(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.SearchCandidates(c.Context(), userID, c.Query("type"), c.Query("q"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewCandidateList(out))
}
