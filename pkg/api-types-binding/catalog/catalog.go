package catalog

import (
	apicatalog "github.com/aiod/metacat/pkg/api/types/catalog"
	"github.com/aiod/metacat/pkg/domain"
	"github.com/aiod/metacat/pkg/utils/slices"
)

func ComposeDataset(d domain.Dataset) apicatalog.Dataset {
	return apicatalog.Dataset{
		Id:                         d.Id,
		Name:                       d.Name,
		Platform:                   string(d.Platform),
		PlatformSpecificIdentifier: d.PlatformSpecificIdentifier,
	}
}

// ComposeDatasetWithPublications expands the relation one hop. The nested
// publications carry no datasets of their own; the relation is not walked
// recursively.
func ComposeDatasetWithPublications(
	d domain.Dataset, publications []domain.Publication,
) apicatalog.Dataset {
	composed := ComposeDataset(d)
	composed.Publications = slices.Map(publications, ComposePublication)
	return composed
}

func ComposePublication(p domain.Publication) apicatalog.Publication {
	return apicatalog.Publication{Id: p.Id, Title: p.Title, URL: p.URL}
}

func ComposePublicationWithDatasets(
	p domain.Publication, datasets []domain.Dataset,
) apicatalog.Publication {
	composed := ComposePublication(p)
	composed.Datasets = slices.Map(datasets, ComposeDataset)
	return composed
}

func ComposeMetadata(m domain.Metadata) apicatalog.Metadata {
	return apicatalog.Metadata{
		Name:             m.Name,
		Description:      m.Description,
		FileURL:          m.FileURL,
		NumberOfSamples:  m.NumberOfSamples,
		NumberOfFeatures: m.NumberOfFeatures,
		NumberOfClasses:  m.NumberOfClasses,
	}
}
