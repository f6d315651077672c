package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/response"
	ucmeeting "campus-jobs/internal/usecase/meeting"
)

type MeetingHandler struct {
	uc *ucmeeting.Service
}

// looseID accepts a JSON number or string and keeps the raw text, so the
// usecase can tell a missing posting id from a malformed one.
type looseID string

func (l *looseID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = looseID(s)
		return nil
	}
	*l = looseID(b)
	return nil
}

// Fields are checked by the usecase in a fixed order, so there are no
// validate tags here.
type meetingRequest struct {
	ApplicantUsername string  `json:"applicant_username"`
	MeetingTime       string  `json:"meeting_time"`
	PostingID         looseID `json:"posting_id"`
}

func NewMeetingHandler(uc *ucmeeting.Service) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

func (h *MeetingHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/meetings", auth, h.Schedule)
	r.Get("/meetings/recruiter", auth, h.ListForRecruiter)
	r.Get("/meetings/applicant", auth, h.ListForApplicant)
}

func (h *MeetingHandler) Schedule(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req meetingRequest
	if err := c.Bind().Body(&req); err != nil {
		return errs.Validation("invalid request payload", err)
	}

	m, err := h.uc.Schedule(c.Context(), userID, ucmeeting.ScheduleInput{
		ApplicantUsername: strings.TrimSpace(req.ApplicantUsername),
		MeetingTime:       req.MeetingTime,
		PostingID:         string(req.PostingID),
	})
	if err != nil {
		return err
	}
	return response.Created(c, dto.NewMeetingResponse(m))
}

func (h *MeetingHandler) ListForRecruiter(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListForRecruiter(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewMeetingList(out))
}

func (h *MeetingHandler) ListForApplicant(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListForApplicant(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewMeetingList(out))
}
