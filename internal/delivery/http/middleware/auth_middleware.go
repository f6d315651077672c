package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/jwt"
)

const (
	CtxUserIDKey   = "user_id"
	CtxIdentityKey = "identity"

	SessionCookie = "session"
	RefreshCookie = "refresh_token"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware accepts the access token from the Authorization header or, for
// browser clients, from the session cookie.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(c.Cookies(SessionCookie))
		}
		if token == "" {
			return errs.Unauthenticated("Unauthorized", nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return errs.Unauthenticated("Token expired", err)
			}
			return errs.Unauthenticated("Invalid token", err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxIdentityKey, claims.Identity())

		return c.Next()
	}
}

func UserID(c fiber.Ctx) (int64, error) {
	id, ok := c.Locals(CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, errs.Unauthenticated("Unauthorized", nil)
	}
	return id, nil
}

func Identity(c fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(CtxIdentityKey).(jwt.Identity)
	return id, ok
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
