// Package example is a connector serving fixed data, for demonstrations
// and tests which should not reach out to a real platform.
package example

import (
	"context"

	"github.com/aiod/metacat/pkg/connectors"
	"github.com/aiod/metacat/pkg/domain"
	"github.com/aiod/metacat/pkg/utils/pointer"
)

var datasets = []domain.Dataset{
	{
		Name:                       "Higgs",
		Platform:                   domain.OpenML,
		PlatformSpecificIdentifier: "42769",
	},
	{
		Name:                       "porto-seguro",
		Platform:                   domain.OpenML,
		PlatformSpecificIdentifier: "42742",
	},
	{
		Name:                       "rotten_tomatoes config:default split:train",
		Platform:                   domain.HuggingFace,
		PlatformSpecificIdentifier: "rotten_tomatoes|default|train",
	},
	{
		Name:                       "rotten_tomatoes config:default split:validation",
		Platform:                   domain.HuggingFace,
		PlatformSpecificIdentifier: "rotten_tomatoes|default|validation",
	},
	{
		Name:                       "rotten_tomatoes config:default split:test",
		Platform:                   domain.HuggingFace,
		PlatformSpecificIdentifier: "rotten_tomatoes|default|test",
	},
}

var publications = []domain.Publication{
	{
		Title: "AMLB: an AutoML Benchmark",
		URL:   "https://arxiv.org/abs/2207.12560",
	},
	{
		Title: "Searching for exotic particles in high-energy physics with deep learning",
		URL:   "https://www.nature.com/articles/ncomms5308",
	},
}

type datasetConnector struct{}

// NewDatasetConnector builds the example dataset connector.
func NewDatasetConnector() connectors.DatasetConnector {
	return datasetConnector{}
}

func (datasetConnector) Platform() domain.Platform {
	return domain.Example
}

func (datasetConnector) Fetch(_ context.Context, dataset domain.Dataset) (domain.Metadata, error) {
	return domain.Metadata{
		Name:             dataset.Name,
		Description:      pointer.Ref("Example"),
		FileURL:          "test",
		NumberOfSamples:  30,
		NumberOfFeatures: 20,
		NumberOfClasses:  pointer.Ref(10),
	}, nil
}

func (datasetConnector) FetchAll(ctx context.Context, limit int) *connectors.Cursor {
	return connectors.Produce(ctx, limit, func(yield func(domain.Dataset) bool) error {
		for _, d := range datasets {
			if !yield(d) {
				return nil
			}
		}
		return nil
	})
}

type publicationConnector struct{}

// NewPublicationConnector builds the example publication connector.
func NewPublicationConnector() connectors.PublicationConnector {
	return publicationConnector{}
}

func (publicationConnector) Platform() domain.Platform {
	return domain.Example
}

func (publicationConnector) FetchAll(context.Context) ([]domain.Publication, error) {
	found := make([]domain.Publication, len(publications))
	copy(found, publications)
	return found, nil
}
