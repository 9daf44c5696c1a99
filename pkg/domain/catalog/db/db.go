package db

import (
	"context"

	"github.com/aiod/metacat/pkg/domain"
)

// DatasetInterface is the persistence contract for dataset rows.
//
// Every method is a single unit of work: it acquires a connection (and a
// transaction, for writes), finishes it before returning, and never hands a
// session to the caller.
type DatasetInterface interface {
	// Get returns the dataset with the given surrogate key.
	//
	// # Returns
	//
	// - domain.Dataset
	//
	// - error: ErrMissing when no such row exists.
	Get(ctx context.Context, id int) (domain.Dataset, error)

	// GetByIdentifier returns the dataset addressed by
	// (platform, platform specific identifier).
	//
	// # Returns
	//
	// - domain.Dataset
	//
	// - error: ErrMissing when no such row exists.
	GetByIdentifier(ctx context.Context, platform domain.Platform, identifier string) (domain.Dataset, error)

	// Find lists datasets. When platforms is not empty, only rows from
	// those platforms are returned. Rows are ordered by id.
	Find(ctx context.Context, platforms []domain.Platform) ([]domain.Dataset, error)

	// Register inserts a new dataset and returns it with its assigned id.
	//
	// # Returns
	//
	// - domain.Dataset: the stored row
	//
	// - error: dberrors/postgres.Conflict (unwrapping to ErrConflict) when
	// (platform, identifier) is already taken; the conflict names the
	// existing row's id.
	Register(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error)

	// Replace overwrites the whole row identified by id. No partial update.
	//
	// # Returns
	//
	// - domain.Dataset: the row after replacement
	//
	// - error: ErrMissing when id does not exist; ErrConflict when the new
	// (platform, identifier) collides with another row.
	Replace(ctx context.Context, id int, dataset domain.Dataset) (domain.Dataset, error)

	// Delete removes the row and its links to publications.
	//
	// # Returns
	//
	// - error: ErrMissing when id does not exist.
	Delete(ctx context.Context, id int) error

	// Publications lists the publications linked to the dataset, one hop only.
	Publications(ctx context.Context, id int) ([]domain.Publication, error)
}

// PublicationInterface is the persistence contract for publication rows.
type PublicationInterface interface {
	Get(ctx context.Context, id int) (domain.Publication, error)

	Find(ctx context.Context) ([]domain.Publication, error)

	// Register inserts a new publication.
	//
	// (title, url) is unique; collisions return Conflict naming the
	// existing row's id.
	Register(ctx context.Context, publication domain.Publication) (domain.Publication, error)

	// Delete removes the row and its links to datasets.
	Delete(ctx context.Context, id int) error

	// Datasets lists the datasets linked to the publication, one hop only.
	Datasets(ctx context.Context, id int) ([]domain.Dataset, error)
}

// LinkInterface mutates the dataset-publication relation.
//
// The relation is symmetric; both ends must exist.
type LinkInterface interface {
	// Link associates a dataset with a publication. Linking twice is a no-op.
	//
	// # Returns
	//
	// - error: ErrMissing when either end does not exist.
	Link(ctx context.Context, datasetId int, publicationId int) error

	// Unlink removes the association. Unlinking a pair which is not linked
	// is a no-op.
	Unlink(ctx context.Context, datasetId int, publicationId int) error
}

type CatalogDatabase interface {
	Datasets() DatasetInterface
	Publications() PublicationInterface
	Links() LinkInterface
	Close() error
}
