package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/aiod/metacat/pkg/conn/db/postgres/pool"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
)

type catalogDBPostgres struct {
	pool         *pgxpool.Pool
	datasets     kdb.DatasetInterface
	publications kdb.PublicationInterface
	links        kdb.LinkInterface
}

// New connects to Postgres and returns the catalog database.
//
// The schema is bootstrapped (idempotently) before the database is handed
// to the caller.
func New(ctx context.Context, url string) (kdb.CatalogDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	p := kpool.Wrap(pool)
	if err := Bootstrap(ctx, p); err != nil {
		pool.Close()
		return nil, err
	}

	return &catalogDBPostgres{
		pool:         pool,
		datasets:     newDatasets(p),
		publications: newPublications(p),
		links:        newLinks(p),
	}, nil
}

func (c *catalogDBPostgres) Datasets() kdb.DatasetInterface {
	return c.datasets
}

func (c *catalogDBPostgres) Publications() kdb.PublicationInterface {
	return c.publications
}

func (c *catalogDBPostgres) Links() kdb.LinkInterface {
	return c.links
}

// SeedExample fills an empty catalog with the example fixture.
func (c *catalogDBPostgres) SeedExample(ctx context.Context) error {
	return SeedExample(ctx, kpool.Wrap(c.pool))
}

func (c *catalogDBPostgres) Close() error {
	c.pool.Close()
	return nil
}

func isPgError(err error, code string) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgError(err, pgerrcode.UniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgError(err, pgerrcode.ForeignKeyViolation)
}
