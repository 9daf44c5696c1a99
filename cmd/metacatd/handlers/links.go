package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/aiod/metacat/pkg/api/types/errors"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	domerr "github.com/aiod/metacat/pkg/domain/errors"
)

// LinkHandler relates a dataset and a publication. Relating an already
// related pair is a no-op.
func LinkHandler(dbLinks kdb.LinkInterface, datasetKey string, publicationKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		datasetId, herr := datasetId(c, datasetKey)
		if herr != nil {
			return herr
		}
		publicationId, herr := publicationId(c, publicationKey)
		if herr != nil {
			return herr
		}

		if err := dbLinks.Link(ctx, datasetId, publicationId); errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(
				fmt.Sprintf(
					"dataset %d or publication %d is not found",
					datasetId, publicationId,
				),
				err,
			)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// UnlinkHandler removes the relation. Unrelating an unrelated pair is a
// no-op, too.
func UnlinkHandler(dbLinks kdb.LinkInterface, datasetKey string, publicationKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		datasetId, herr := datasetId(c, datasetKey)
		if herr != nil {
			return herr
		}
		publicationId, herr := publicationId(c, publicationKey)
		if herr != nil {
			return herr
		}

		if err := dbLinks.Unlink(ctx, datasetId, publicationId); err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
