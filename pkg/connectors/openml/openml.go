// Package openml is a connector for the OpenML platform.
//
// OpenML addresses datasets with a numeric id. Extended metadata comes
// from two endpoints: the dataset description and, separately, the data
// qualities (statistics).
package openml

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/aiod/metacat/pkg/connectors"
	"github.com/aiod/metacat/pkg/domain"
)

type connector struct {
	base   string
	client *http.Client
}

// New builds the OpenML dataset connector.
//
// base is the API root, like "https://www.openml.org/api/v1/json".
// client may be nil; http.DefaultClient is used then.
func New(base string, client *http.Client) connectors.DatasetConnector {
	if client == nil {
		client = http.DefaultClient
	}
	return &connector{base: base, client: client}
}

func (c *connector) Platform() domain.Platform {
	return domain.OpenML
}

type description struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type quality struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (c *connector) Fetch(ctx context.Context, dataset domain.Dataset) (domain.Metadata, error) {
	identifier := dataset.PlatformSpecificIdentifier
	if !isDecimal(identifier) {
		return domain.Metadata{}, connectors.BadIdentifier{
			Identifier: identifier,
			Expected:   "a decimal OpenML dataset id",
		}
	}

	var envelope struct {
		Description description `json:"data_set_description"`
	}
	if err := c.get(
		ctx, fmt.Sprintf("%s/data/%s", c.base, identifier),
		"fetching the dataset description", &envelope,
	); err != nil {
		return domain.Metadata{}, err
	}

	var qualitiesEnvelope struct {
		Qualities struct {
			Quality []quality `json:"quality"`
		} `json:"data_qualities"`
	}
	if err := c.get(
		ctx, fmt.Sprintf("%s/data/qualities/%s", c.base, identifier),
		"fetching the data qualities", &qualitiesEnvelope,
	); err != nil {
		return domain.Metadata{}, err
	}

	qualities := map[string]string{}
	for _, q := range qualitiesEnvelope.Qualities.Quality {
		qualities[q.Name] = q.Value
	}

	metadata := domain.Metadata{
		Name:    envelope.Description.Name,
		FileURL: envelope.Description.URL,
	}
	if envelope.Description.Description != "" {
		description := envelope.Description.Description
		metadata.Description = &description
	}

	var err error
	if metadata.NumberOfSamples, err = asInt(qualities, "NumberOfInstances"); err != nil {
		return domain.Metadata{}, err
	}
	if metadata.NumberOfFeatures, err = asInt(qualities, "NumberOfFeatures"); err != nil {
		return domain.Metadata{}, err
	}
	if _, ok := qualities["NumberOfClasses"]; ok {
		classes, err := asInt(qualities, "NumberOfClasses")
		if err != nil {
			return domain.Metadata{}, err
		}
		metadata.NumberOfClasses = &classes
	}

	return metadata, nil
}

func (c *connector) FetchAll(ctx context.Context, limit int) *connectors.Cursor {
	return connectors.Produce(ctx, limit, func(yield func(domain.Dataset) bool) error {
		var envelope struct {
			Data struct {
				Dataset []struct {
					Did  int    `json:"did"`
					Name string `json:"name"`
				} `json:"dataset"`
			} `json:"data"`
		}
		if err := c.get(
			ctx, fmt.Sprintf("%s/data/list", c.base),
			"listing the datasets", &envelope,
		); err != nil {
			return err
		}

		for _, d := range envelope.Data.Dataset {
			descriptor := domain.Dataset{
				Name:                       d.Name,
				Platform:                   domain.OpenML,
				PlatformSpecificIdentifier: strconv.Itoa(d.Did),
			}
			if !yield(descriptor) {
				return nil
			}
		}
		return nil
	})
}

// get performs one GET round-trip and decodes the response into dest.
//
// Non-2xx responses are translated into an Upstream error carrying the
// platform's own message. OpenML reports a missing dataset as 412 with the
// message "Unknown dataset"; that is remapped to a 404.
func (c *connector) get(ctx context.Context, url string, during string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return connectors.Upstream{
			Platform: domain.OpenML, During: during, Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectors.Upstream{
			Platform: domain.OpenML, Status: resp.StatusCode,
			During: during, Message: err.Error(),
		}
	}

	if resp.StatusCode < 200 || 300 <= resp.StatusCode {
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.Unmarshal(body, &envelope)

		status := resp.StatusCode
		if status == http.StatusPreconditionFailed &&
			envelope.Error.Message == "Unknown dataset" {
			status = http.StatusNotFound
		}
		return connectors.Upstream{
			Platform: domain.OpenML, Status: status,
			During: during, Message: envelope.Error.Message,
		}
	}

	return json.Unmarshal(body, dest)
}

// asInt reads a quality value as an exact integer.
//
// OpenML reports qualities as floating-point-looking strings. A fractional
// value where an integer is expected is upstream data corruption, not
// something to truncate.
func asInt(qualities map[string]string, name string) (int, error) {
	value, ok := qualities[name]
	if !ok {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, connectors.NotIntegral{Quality: name, Value: value}
	}
	if math.Trunc(parsed) != parsed {
		return 0, connectors.NotIntegral{Quality: name, Value: value}
	}
	return int(parsed), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || '9' < r {
			return false
		}
	}
	return true
}
