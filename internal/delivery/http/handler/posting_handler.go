package handler

import (
	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	ucposting "campus-jobs/internal/usecase/posting"
)

type PostingHandler struct {
	uc *ucposting.Service
}

type postingRequest struct {
	PostingID       int64  `json:"posting_id" validate:"required,gt=0"`
	JobTitle        string `json:"job_title" validate:"required,max=100"`
	JobDescription  string `json:"job_description"`
	JobLink         string `json:"job_link" validate:"omitempty,url"`
	JobLocation     string `json:"job_location" validate:"max=100"`
	JobPayRate      string `json:"job_pay_rate" validate:"max=50"`
	MaxHoursAllowed int    `json:"max_hours_allowed" validate:"gte=0"`
}

func NewPostingHandler(uc *ucposting.Service) *PostingHandler {
	return &PostingHandler{uc: uc}
}

func (h *PostingHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/postings", h.List)
	r.Get("/postings/rss", h.RSS)
	r.Get("/postings/:id", h.Get)
	r.Post("/postings", auth, h.Create)
	r.Delete("/postings/:id", auth, h.Delete)
	r.Get("/recruiter/postings", auth, h.ListMine)
}

func (h *PostingHandler) List(c fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewPostingList(out))
}

func (h *PostingHandler) RSS(c fiber.Ctx) error {
	doc, err := h.uc.RSS(c.Context(), c.BaseURL())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
	return c.SendString(doc)
}

func (h *PostingHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewPostingResponse(p))
}

func (h *PostingHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req postingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), userID, ucposting.CreateInput{
		PostingID:       req.PostingID,
		JobTitle:        req.JobTitle,
		JobDescription:  req.JobDescription,
		JobLink:         req.JobLink,
		JobLocation:     req.JobLocation,
		JobPayRate:      req.JobPayRate,
		MaxHoursAllowed: req.MaxHoursAllowed,
	})
	if err != nil {
		return err
	}
	return response.Created(c, dto.NewPostingResponse(p))
}

func (h *PostingHandler) Delete(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id, userID); err != nil {
		return err
	}
	return response.OK(c, nil)
}

func (h *PostingHandler) ListMine(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListByRecruiter(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewPostingList(out))
}
