// Package huggingface is a connector for the HuggingFace datasets server.
//
// HuggingFace has no single dataset id the way OpenML does. A catalog row
// addresses one (dataset, config, split) combination, packed into a
// composite identifier; see Decode and Encode.
package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/aiod/metacat/pkg/connectors"
	"github.com/aiod/metacat/pkg/domain"
)

type connector struct {
	base   string
	client *http.Client
}

// New builds the HuggingFace dataset connector.
//
// base is the datasets server root, like
// "https://datasets-server.huggingface.co". client may be nil;
// http.DefaultClient is used then.
func New(base string, client *http.Client) connectors.DatasetConnector {
	if client == nil {
		client = http.DefaultClient
	}
	return &connector{base: base, client: client}
}

func (c *connector) Platform() domain.Platform {
	return domain.HuggingFace
}

type split struct {
	Dataset     string `json:"dataset"`
	Config      string `json:"config"`
	Split       string `json:"split"`
	NumExamples int    `json:"num_examples"`
}

type parquetFile struct {
	Config string `json:"config"`
	Split  string `json:"split"`
	URL    string `json:"url"`
}

func (c *connector) Fetch(ctx context.Context, dataset domain.Dataset) (domain.Metadata, error) {
	name, config, splitName, err := Decode(dataset.PlatformSpecificIdentifier)
	if err != nil {
		return domain.Metadata{}, err
	}

	splits, err := c.splits(ctx, name)
	if err != nil {
		return domain.Metadata{}, err
	}
	matched := []split{}
	for _, s := range splits {
		if s.Config == config && s.Split == splitName {
			matched = append(matched, s)
		}
	}
	if len(matched) != 1 {
		return domain.Metadata{}, ambiguousSplits(name, config, splitName, matched)
	}

	var parquet struct {
		ParquetFiles []parquetFile `json:"parquet_files"`
	}
	if err := c.get(
		ctx, fmt.Sprintf("%s/parquet?dataset=%s", c.base, url.QueryEscape(name)),
		"fetching the parquet files", &parquet,
	); err != nil {
		return domain.Metadata{}, err
	}
	files := []parquetFile{}
	for _, f := range parquet.ParquetFiles {
		if f.Config == config && f.Split == splitName {
			files = append(files, f)
		}
	}
	if len(files) != 1 {
		matches := make([]string, len(files))
		for nth, f := range files {
			matches[nth] = f.URL
		}
		return domain.Metadata{}, connectors.Ambiguous{
			What: fmt.Sprintf(
				"parquet file of %s (config %s, split %s)", name, config, splitName,
			),
			Matches: matches,
		}
	}

	return domain.Metadata{
		Name:            dataset.Name,
		FileURL:         files[0].URL,
		NumberOfSamples: matched[0].NumExamples,
		// the datasets server reports no feature or class counts
		NumberOfFeatures: 0,
		NumberOfClasses:  nil,
	}, nil
}

func (c *connector) FetchAll(ctx context.Context, limit int) *connectors.Cursor {
	return connectors.Produce(ctx, limit, func(yield func(domain.Dataset) bool) error {
		var valid struct {
			Valid []string `json:"valid"`
		}
		if err := c.get(
			ctx, fmt.Sprintf("%s/valid", c.base),
			"listing the valid datasets", &valid,
		); err != nil {
			return err
		}

		for _, name := range valid.Valid {
			splits, err := c.splits(ctx, name)
			if err != nil {
				return err
			}
			for _, s := range splits {
				identifier, err := Encode(name, s.Config, s.Split)
				if err != nil {
					return err
				}
				descriptor := domain.Dataset{
					Name: fmt.Sprintf(
						"%s config:%s split:%s", name, s.Config, s.Split,
					),
					Platform:                   domain.HuggingFace,
					PlatformSpecificIdentifier: identifier,
				}
				if !yield(descriptor) {
					return nil
				}
			}
		}
		return nil
	})
}

func (c *connector) splits(ctx context.Context, name string) ([]split, error) {
	var envelope struct {
		Splits []split `json:"splits"`
	}
	if err := c.get(
		ctx, fmt.Sprintf("%s/splits?dataset=%s", c.base, url.QueryEscape(name)),
		"fetching the splits", &envelope,
	); err != nil {
		return nil, err
	}
	return envelope.Splits, nil
}

// get performs one GET round-trip and decodes the response into dest.
//
// The datasets server reports failures as {"error": "<message>"}.
func (c *connector) get(ctx context.Context, url string, during string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return connectors.Upstream{
			Platform: domain.HuggingFace, During: during, Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectors.Upstream{
			Platform: domain.HuggingFace, Status: resp.StatusCode,
			During: during, Message: err.Error(),
		}
	}

	if resp.StatusCode < 200 || 300 <= resp.StatusCode {
		var envelope struct {
			Error string `json:"error"`
		}
		json.Unmarshal(body, &envelope)
		return connectors.Upstream{
			Platform: domain.HuggingFace, Status: resp.StatusCode,
			During: during, Message: envelope.Error,
		}
	}

	return json.Unmarshal(body, dest)
}

func ambiguousSplits(name string, config string, splitName string, matched []split) error {
	matches := make([]string, len(matched))
	for nth, s := range matched {
		matches[nth] = fmt.Sprintf("%s/%s/%s", s.Dataset, s.Config, s.Split)
	}
	return connectors.Ambiguous{
		What: fmt.Sprintf(
			"split of %s (config %s, split %s)", name, config, splitName,
		),
		Matches: matches,
	}
}
