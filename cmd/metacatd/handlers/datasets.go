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

func FindDatasetHandler(dbDatasets kdb.DatasetInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		platforms := make([]domain.Platform, 0)
		for _, name := range c.QueryParams()["platform"] {
			platform, err := domain.AsPlatform(name)
			if err != nil {
				return apierr.BadRequest(
					fmt.Sprintf("platform should be one of %v", domain.KnownPlatforms()),
					err,
				)
			}
			platforms = append(platforms, platform)
		}

		datasets, err := dbDatasets.Find(ctx, platforms)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK, slices.Map(datasets, bindcatalog.ComposeDataset),
		)
	}
}

func GetDatasetHandler(dbDatasets kdb.DatasetInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := datasetId(c, paramKey)
		if herr != nil {
			return herr
		}

		dataset, err := dbDatasets.Get(ctx, id)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(fmt.Sprintf("dataset %d is not found", id), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		publications, err := dbDatasets.Publications(ctx, id)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(
			http.StatusOK,
			bindcatalog.ComposeDatasetWithPublications(dataset, publications),
		)
	}
}

func RegisterDatasetHandler(dbDatasets kdb.DatasetInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		dataset, herr := datasetFromBody(c)
		if herr != nil {
			return herr
		}

		registered, err := dbDatasets.Register(ctx, dataset)
		if errors.Is(err, domerr.ErrConflict) {
			return apierr.Conflict(err.Error(), apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindcatalog.ComposeDataset(registered))
	}
}

func ReplaceDatasetHandler(dbDatasets kdb.DatasetInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := datasetId(c, paramKey)
		if herr != nil {
			return herr
		}
		dataset, herr := datasetFromBody(c)
		if herr != nil {
			return herr
		}

		replaced, err := dbDatasets.Replace(ctx, id, dataset)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(fmt.Sprintf("dataset %d is not found", id), err)
		} else if errors.Is(err, domerr.ErrConflict) {
			return apierr.Conflict(err.Error(), apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindcatalog.ComposeDataset(replaced))
	}
}

func DeleteDatasetHandler(dbDatasets kdb.DatasetInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := datasetId(c, paramKey)
		if herr != nil {
			return herr
		}

		if err := dbDatasets.Delete(ctx, id); errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(fmt.Sprintf("dataset %d is not found", id), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func datasetId(c echo.Context, paramKey string) (int, *echo.HTTPError) {
	raw := c.Param(paramKey)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.BadRequest(
			fmt.Sprintf("dataset id should be an integer: %s", raw), err,
		)
	}
	return id, nil
}

// datasetFromBody decodes and validates a dataset spec from the request.
func datasetFromBody(c echo.Context) (domain.Dataset, *echo.HTTPError) {
	spec := apicatalog.DatasetSpec{}
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&spec); err != nil {
		return domain.Dataset{}, apierr.NewErrorMessage(
			http.StatusBadRequest,
			"format error",
			apierr.WithAdvice(err.Error()),
			apierr.WithError(err),
		)
	}

	platform, err := domain.AsPlatform(spec.Platform)
	if err != nil {
		return domain.Dataset{}, apierr.BadRequest(
			fmt.Sprintf("platform should be one of %v", domain.KnownPlatforms()),
			err,
		)
	}

	dataset := domain.Dataset{
		Name:                       spec.Name,
		Platform:                   platform,
		PlatformSpecificIdentifier: spec.PlatformSpecificIdentifier,
	}
	if err := dataset.Validate(); err != nil {
		return domain.Dataset{}, apierr.BadRequest(err.Error(), err)
	}
	return dataset, nil
}
