package http

import (
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
