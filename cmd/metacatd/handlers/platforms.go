package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiod/metacat/pkg/domain"
	"github.com/aiod/metacat/pkg/utils/slices"
)

func ListPlatformsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(
			http.StatusOK,
			slices.Map(
				domain.KnownPlatforms(),
				func(p domain.Platform) string { return string(p) },
			),
		)
	}
}
