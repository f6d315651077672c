package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/delivery/http/dto"
	"campus-jobs/internal/delivery/http/middleware"
	"campus-jobs/internal/pkg/response"
	"campus-jobs/internal/usecase"
	ucauth "campus-jobs/internal/usecase/auth"
)

type AuthHandler struct {
	uc           *usecase.Auth
	accessTTL    time.Duration
	refreshTTL   time.Duration
	cookieSecure bool
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	IsRecruiter bool   `json:"is_recruiter"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc *usecase.Auth, accessTTL, refreshTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, accessTTL: accessTTL, refreshTTL: refreshTTL, cookieSecure: cookieSecure}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/logout", h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		IsRecruiter: req.IsRecruiter,
	})
	if err != nil {
		return err
	}

	h.setCookies(c, sess)
	return response.Created(c, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sess, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	h.setCookies(c, sess)
	return response.OK(c, dto.NewSessionResponse(sess))
}

// Refresh takes the refresh token from the body, the Authorization header or
// the refresh cookie, in that order.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req refreshRequest
	if len(c.Body()) > 0 {
		_ = c.Bind().Body(&req)
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get("Authorization"))
	}
	if tok == "" {
		tok = strings.TrimSpace(c.Cookies(middleware.RefreshCookie))
	}

	sess, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return err
	}

	h.setCookies(c, sess)
	return response.OK(c, dto.NewSessionResponse(sess))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.ClearCookie(middleware.SessionCookie, middleware.RefreshCookie)
	return response.OK(c, nil)
}

func (h *AuthHandler) setCookies(c fiber.Ctx, sess usecase.Session) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  now.Add(h.accessTTL),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshCookie,
		Value:    sess.RefreshToken,
		Path:     "/api/v1/auth",
		Expires:  now.Add(h.refreshTTL),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
