package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	bindcatalog "github.com/aiod/metacat/pkg/api-types-binding/catalog"
	apierr "github.com/aiod/metacat/pkg/api/types/errors"
	"github.com/aiod/metacat/pkg/connectors"
	"github.com/aiod/metacat/pkg/domain"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	domerr "github.com/aiod/metacat/pkg/domain/errors"
)

// GetMetaHandler fetches live extended metadata for a dataset addressed by
// its surrogate id.
func GetMetaHandler(
	dbDatasets kdb.DatasetInterface,
	registry *connectors.Registry,
	paramKey string,
) echo.HandlerFunc {
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

		return fetchMeta(c, registry, dataset)
	}
}

// GetMetaByIdentifierHandler fetches live extended metadata for a dataset
// addressed by (platform, platform specific identifier).
//
// The platform name is validated before anything else; an unknown name
// never reaches the catalog nor the platform.
func GetMetaByIdentifierHandler(
	dbDatasets kdb.DatasetInterface,
	registry *connectors.Registry,
	platformKey string,
	identifierKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		platform, err := domain.AsPlatform(c.Param(platformKey))
		if err != nil {
			return apierr.BadRequest(
				fmt.Sprintf("platform should be one of %v", domain.KnownPlatforms()),
				err,
			)
		}
		identifier, err := decodeParam(c, identifierKey)
		if err != nil {
			return apierr.BadRequest("identifier is not decodable", err)
		}

		dataset, err := dbDatasets.GetByIdentifier(ctx, platform, identifier)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(
				fmt.Sprintf(
					"dataset '%s' on %s is not found in the catalog",
					identifier, platform,
				),
				err,
			)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		return fetchMeta(c, registry, dataset)
	}
}

func fetchMeta(c echo.Context, registry *connectors.Registry, dataset domain.Dataset) error {
	ctx := c.Request().Context()

	connector, err := registry.Datasets(string(dataset.Platform))
	if errors.Is(err, connectors.ErrNoConnector) {
		return apierr.NewErrorMessage(
			http.StatusNotImplemented,
			fmt.Sprintf("platform %s has no connector yet", dataset.Platform),
			apierr.WithError(err),
		)
	} else if err != nil {
		return apierr.BadRequest(
			fmt.Sprintf("platform should be one of %v", domain.KnownPlatforms()),
			err,
		)
	}

	metadata, err := connector.Fetch(ctx, dataset)
	switch {
	case err == nil:
		// pass
	case errors.Is(err, connectors.ErrBadIdentifier):
		return apierr.BadRequest(err.Error(), err)
	case errors.Is(err, connectors.ErrUpstream):
		upstream := connectors.Upstream{}
		errors.As(err, &upstream)
		return apierr.UpstreamFailure(
			upstream.Status,
			fmt.Sprintf("%s: %s", upstream.Platform, upstream.Message),
			err,
		)
	case errors.Is(err, connectors.ErrNotIntegral), errors.Is(err, connectors.ErrAmbiguous):
		return apierr.NewErrorMessage(
			http.StatusInternalServerError,
			fmt.Sprintf("%s sent inconsistent data: %s", dataset.Platform, err),
			apierr.WithError(err),
		)
	default:
		return apierr.InternalServerError(err)
	}

	return c.JSON(http.StatusOK, bindcatalog.ComposeMetadata(metadata))
}

// decodeParam reads a path parameter which may carry percent-encoded
// characters (composite identifiers hold "|" and "/").
func decodeParam(c echo.Context, paramKey string) (string, error) {
	return url.PathUnescape(c.Param(paramKey))
}
