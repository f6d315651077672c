package handler

import (
	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	uctracker "campus-jobs/internal/usecase/tracker"
)

type TrackerHandler struct {
	uc *uctracker.Service
}

type trackerCreateRequest struct {
	JobLink      string `json:"job_link" validate:"required,url"`
	AppliedOn    string `json:"applied_on" validate:"required,datetime=2006-01-02"`
	LastUpdateOn string `json:"last_update_on" validate:"omitempty,datetime=2006-01-02"`
	Status       string `json:"status" validate:"required,max=50"`
}

type trackerStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type trackerLastUpdateRequest struct {
	LastUpdateOn string `json:"last_update_on" validate:"required,datetime=2006-01-02"`
}

func NewTrackerHandler(uc *uctracker.Service) *TrackerHandler {
	return &TrackerHandler{uc: uc}
}

func (h *TrackerHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/tracker", auth, h.List)
	r.Post("/tracker", auth, h.Create)
	r.Patch("/tracker/:id/status", auth, h.UpdateStatus)
	r.Patch("/tracker/:id/last-update", auth, h.UpdateLastUpdate)
	r.Delete("/tracker/:id", auth, h.Delete)
}

func (h *TrackerHandler) List(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewTrackerList(out))
}

func (h *TrackerHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req trackerCreateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := h.uc.Create(c.Context(), userID, uctracker.CreateInput{
		JobLink:      req.JobLink,
		AppliedOn:    req.AppliedOn,
		LastUpdateOn: req.LastUpdateOn,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return response.Created(c, dto.NewTrackerEntryResponse(e))
}

func (h *TrackerHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req trackerStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := h.uc.UpdateStatus(c.Context(), id, userID, req.Status)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewTrackerEntryResponse(e))
}

func (h *TrackerHandler) UpdateLastUpdate(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req trackerLastUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := h.uc.UpdateLastUpdate(c.Context(), id, userID, req.LastUpdateOn)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewTrackerEntryResponse(e))
}

func (h *TrackerHandler) Delete(c fiber.Ctx) error {
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
