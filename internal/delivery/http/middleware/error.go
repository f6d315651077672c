package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/response"
	"campus-jobs/internal/pkg/validate"
)

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.String("path", c.Path()),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			}
			var e *errs.Error
			if errors.As(err, &e) && len(e.StackTrace()) > 0 {
				fields = append(fields, zap.ByteString("stack", e.StackTrace()))
			}
			m.logger.Error("request failed", fields...)
		}
		return response.Error(c, status, msg, data)
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return fiber.StatusNotFound
	case errs.KindForbidden:
		return fiber.StatusForbidden
	case errs.KindDuplicateKey:
		return fiber.StatusConflict
	case errs.KindValidation:
		return fiber.StatusBadRequest
	case errs.KindUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func normalizeError(err error) (int, string, interface{}) {
	var e *errs.Error
	if errors.As(err, &e) {
		status := StatusFor(e.Kind)
		if status >= fiber.StatusInternalServerError {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := e.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		var data interface{}
		if fields := validate.Fields(err); fields != nil {
			data = fields
		}
		return status, msg, data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= fiber.StatusInternalServerError {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
