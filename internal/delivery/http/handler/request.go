package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"campus-jobs/internal/pkg/errs"
	"campus-jobs/internal/pkg/validate"
)

// bind decodes the JSON body into req and runs its validate tags.
func bind(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return errs.Validation("invalid request payload", err)
	}
	return validate.Struct(req)
}

func paramID(c fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validation("invalid "+name, err)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.Validation("invalid "+name, err)
	}
	return &v, nil
}
