package handler

import (
	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	ucuser "campus-jobs/internal/usecase/user"
)

type UserHandler struct {
	uc *ucuser.Service
}

func NewUserHandler(uc *ucuser.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/users/me", auth, h.GetMe)
	r.Get("/users/:username/profile", auth, h.Profile)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	u, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewUserResponse(u))
}

func (h *UserHandler) Profile(c fiber.Ctx) error {
	prof, err := h.uc.Profile(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return response.OK(c, dto.NewProfileResponse(prof))
}
