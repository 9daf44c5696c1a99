package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bindcatalog "github.com/aiod/metacat/pkg/api-types-binding/catalog"
	apicatalog "github.com/aiod/metacat/pkg/api/types/catalog"
	apierr "github.com/aiod/metacat/pkg/api/types/errors"
	"github.com/aiod/metacat/pkg/domain"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	domerr "github.com/aiod/metacat/pkg/domain/errors"
	"github.com/aiod/metacat/pkg/utils/slices"
)

func FindPublicationHandler(dbPublications kdb.PublicationInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		publications, err := dbPublications.Find(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK, slices.Map(publications, bindcatalog.ComposePublication),
		)
	}
}

func GetPublicationHandler(dbPublications kdb.PublicationInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := publicationId(c, paramKey)
		if herr != nil {
			return herr
		}

		publication, err := dbPublications.Get(ctx, id)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(fmt.Sprintf("publication %d is not found", id), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		datasets, err := dbPublications.Datasets(ctx, id)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			bindcatalog.ComposePublicationWithDatasets(publication, datasets),
		)
	}
}

func RegisterPublicationHandler(dbPublications kdb.PublicationInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := apicatalog.PublicationSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(&spec); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		publication := domain.Publication{Title: spec.Title, URL: spec.URL}
		if err := publication.Validate(); err != nil {
			return apierr.BadRequest(err.Error(), err)
		}

		registered, err := dbPublications.Register(ctx, publication)
		if errors.Is(err, domerr.ErrConflict) {
			return apierr.Conflict(err.Error(), apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindcatalog.ComposePublication(registered))
	}
}

func DeletePublicationHandler(dbPublications kdb.PublicationInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := publicationId(c, paramKey)
		if herr != nil {
			return herr
		}

		if err := dbPublications.Delete(ctx, id); errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(fmt.Sprintf("publication %d is not found", id), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func publicationId(c echo.Context, paramKey string) (int, *echo.HTTPError) {
	raw := c.Param(paramKey)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest(
			fmt.Sprintf("publication id should be an integer: %s", raw), err,
		)
	}
	return id, nil
}
