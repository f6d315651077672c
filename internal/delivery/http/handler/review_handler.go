package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	ucreview "campus-jobs/internal/usecase/review"
)

type ReviewHandler struct {
	uc *ucreview.Service
}

type reviewRequest struct {
	Department     string `json:"department" validate:"max=100"`
	Locations      string `json:"locations" validate:"max=200"`
	JobTitle       string `json:"job_title" validate:"required,max=100"`
	JobDescription string `json:"job_description"`
	HourlyPay      string `json:"hourly_pay" validate:"max=50"`
	Benefits       string `json:"benefits"`
	Review         string `json:"review" validate:"required"`
	Rating         int    `json:"rating" validate:"gte=1,lte=5"`
	Recommendation bool   `json:"recommendation"`
}

func (r reviewRequest) fields() ucreview.Fields {
	return ucreview.Fields{
		Department:     r.Department,
		Locations:      r.Locations,
		JobTitle:       r.JobTitle,
		JobDescription: r.JobDescription,
		HourlyPay:      r.HourlyPay,
		Benefits:       r.Benefits,
		Review:         r.Review,
		Rating:         r.Rating,
		Recommendation: r.Recommendation,
	}
}

func NewReviewHandler(uc *ucreview.Service) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// RegisterRoutes keeps reads public; everything else goes through auth.
func (h *ReviewHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/reviews", h.Search)
	r.Get("/reviews/:id", h.Get)

	r.Post("/reviews", auth, h.Create)
	r.Put("/reviews/:id", auth, h.Update)
	r.Delete("/reviews/:id", auth, h.Delete)
	r.Post("/reviews/:id/upvote", auth, h.Upvote)
	r.Post("/reviews/:id/downvote", auth, h.Downvote)
}

func (h *ReviewHandler) Search(c fiber.Ctx) error {
	in := ucreview.SearchInput{
		Title:    strings.TrimSpace(c.Query("title")),
		Location: strings.TrimSpace(c.Query("location")),
	}
	var err error
	if in.MinRating, err = queryInt(c, "min_rating"); err != nil {
		return err
	}
	if in.MaxRating, err = queryInt(c, "max_rating"); err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	if page != nil {
		in.Page = *page
	}
	size, err := queryInt(c, "page_size")
	if err != nil {
		return err
	}
	if size != nil {
		in.PageSize = *size
	}

	res, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Paged(c, dto.NewReviewList(res.Items), response.PageMeta{
		Page:       res.Page,
		PageSize:   res.PageSize,
		Total:      res.Total,
		TotalPages: res.TotalPages(),
	})
}

func (h *ReviewHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	rv, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewReviewResponse(rv))
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	rv, err := h.uc.Create(c.Context(), userID, req.fields())
	if err != nil {
		return err
	}
	return response.Created(c, dto.NewReviewResponse(rv))
}

func (h *ReviewHandler) Update(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	rv, err := h.uc.Update(c.Context(), id, userID, req.fields())
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewReviewResponse(rv))
}

func (h *ReviewHandler) Delete(c fiber.Ctx) error {
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

func (h *ReviewHandler) Upvote(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.Upvote(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, dto.VoteResponse{ID: id, Upvotes: n})
}

func (h *ReviewHandler) Downvote(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.Downvote(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, dto.VoteResponse{ID: id, Upvotes: n})
}
