package connectors

import (
	"context"

	"github.com/aiod/metacat/pkg/domain"
)

// DatasetConnector adapts one external platform to the catalog.
//
// Connectors are stateless between calls. Every Fetch/FetchAll is a fresh
// set of upstream round-trips; nothing is cached.
type DatasetConnector interface {
	// Platform names the platform this connector serves.
	//
	// Pure and constant. The registry indexes connectors with it.
	Platform() domain.Platform

	// Fetch retrieves extended metadata for one dataset.
	//
	// The dataset's platform specific identifier is decoded first; a
	// malformed identifier fails before any upstream call.
	//
	// # Returns
	//
	// - domain.Metadata: never partial. When a connector needs several
	// upstream lookups and any of them fails, no Metadata is returned.
	//
	// - error: BadIdentifier, Upstream, Ambiguous or NotIntegral for the
	// expected failure classes.
	Fetch(ctx context.Context, dataset domain.Dataset) (domain.Metadata, error)

	// FetchAll enumerates every dataset the platform currently offers.
	//
	// The sequence is lazy: platforms which need one secondary listing per
	// dataset name issue those lookups on demand, as the cursor is
	// consumed. limit bounds the number of produced descriptors;
	// limit <= 0 means unlimited.
	FetchAll(ctx context.Context, limit int) *Cursor
}

// PublicationConnector adapts a platform offering publications.
type PublicationConnector interface {
	Platform() domain.Platform

	FetchAll(ctx context.Context) ([]domain.Publication, error)
}
