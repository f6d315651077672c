package handler

import (
	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/domain/application"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/response"
	ucapplication "campus-jobs/internal/usecase/application"
)

type ApplicationHandler struct {
	uc *ucapplication.Service
}

type applyRequest struct {
	RecruiterID int64 `json:"recruiter_id" validate:"gte=0"`
}

func NewApplicationHandler(uc *ucapplication.Service) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/postings/:id/apply", auth, h.Apply)
	r.Get("/postings/:id/applications", auth, h.ListForPosting)
	r.Post("/postings/:id/shortlist/:applicantId", auth, h.ToggleShortlist)
	r.Get("/postings/:id/shortlisted", auth, h.ListShortlistedForPosting)
	r.Get("/shortlisted", auth, h.ListShortlisted)
	r.Get("/applications/me", auth, h.ListMine)
}

// Apply is idempotent: a repeat returns 200 with result "already_exists"
// instead of 201.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	postingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req applyRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return err
		}
	}

	res, err := h.uc.Apply(c.Context(), ucapplication.ApplyInput{
		PostingID:   postingID,
		RecruiterID: req.RecruiterID,
		ApplicantID: userID,
	})
	if err != nil {
		return err
	}

	body := dto.ApplyResponse{PostingID: postingID, Result: string(res)}
	if res == application.Created {
		return response.Created(c, body)
	}
	return response.OK(c, body)
}

func (h *ApplicationHandler) ListForPosting(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	postingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.ListForPosting(c.Context(), postingID, userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewApplicationList(out))
}

func (h *ApplicationHandler) ToggleShortlist(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	postingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	applicantID, err := paramID(c, "applicantId")
	if err != nil {
		return err
	}

	state, err := h.uc.ToggleShortlist(c.Context(), postingID, userID, applicantID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.ShortlistToggleResponse{
		PostingID:   postingID,
		ApplicantID: applicantID,
		Shortlisted: state,
	})
}

func (h *ApplicationHandler) ListShortlistedForPosting(c fiber.Ctx) error {
	postingID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return h.listShortlisted(c, &postingID)
}

func (h *ApplicationHandler) ListShortlisted(c fiber.Ctx) error {
	raw, err := queryInt(c, "posting_id")
	if err != nil {
		return err
	}
	var postingID *int64
	if raw != nil {
		if *raw <= 0 {
			return errs.Validation("invalid posting_id", nil)
		}
		id := int64(*raw)
		postingID = &id
	}
	return h.listShortlisted(c, postingID)
}

func (h *ApplicationHandler) listShortlisted(c fiber.Ctx, postingID *int64) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	groups, err := h.uc.ListShortlisted(c.Context(), userID, postingID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewShortlistGroups(groups))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewApplicationList(out))
}
