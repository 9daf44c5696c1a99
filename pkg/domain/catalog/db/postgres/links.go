package postgres

import (
	"context"
	"fmt"

	kpool "github.com/aiod/metacat/pkg/conn/db/postgres/pool"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	kpgerr "github.com/aiod/metacat/pkg/domain/errors/dberrors/postgres"
)

type pgLinks struct {
	pool kpool.Pool
}

func newLinks(pool kpool.Pool) kdb.LinkInterface {
	return &pgLinks{pool: pool}
}

func (l *pgLinks) Link(ctx context.Context, datasetId int, publicationId int) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "dataset_publication" ("dataset_id", "publication_id")
		values ($1, $2)
		on conflict do nothing
		`,
		datasetId, publicationId,
	); err != nil {
		if isForeignKeyViolation(err) {
			return kpgerr.Missing{
				Table: "datasets or publications",
				Identity: fmt.Sprintf(
					"dataset %d or publication %d", datasetId, publicationId,
				),
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

func (l *pgLinks) Unlink(ctx context.Context, datasetId int, publicationId int) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		delete from "dataset_publication"
		where "dataset_id" = $1 and "publication_id" = $2
		`,
		datasetId, publicationId,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
