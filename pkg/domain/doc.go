package domain

// domain package contains the Domain Models for the metadata catalog.
//
// `domain/catalog.go` has the high-level entities: Dataset, Publication and
// Metadata, together with the closed Platform enum.
//
// `domain/catalog` directory contains the "physical" representation of the
// entities, the RDB. `domain/catalog/db` exposes the client interfaces to
// handle them, and `domain/catalog/db/postgres` implements the interfaces
// against Postgres.
//
// # Entities
//
// Core entities in the domain are:
//
// - `Dataset`: a record saying "this dataset exists on this platform under
// this identifier". The catalog stores only this triplet (plus a name);
// richer information is fetched on demand from the platform itself.
//
// - `Publication`: a paper. Datasets and Publications are related
// many-to-many, and the relation is mutable from either side.
//
// - `Metadata`: extended information about one Dataset, composed from the
// platform's own API at request time. It lives for a single request/response
// cycle and is never persisted.
