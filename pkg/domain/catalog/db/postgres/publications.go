package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	kpool "github.com/aiod/metacat/pkg/conn/db/postgres/pool"
	"github.com/aiod/metacat/pkg/domain"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	kpgerr "github.com/aiod/metacat/pkg/domain/errors/dberrors/postgres"
)

type pgPublications struct {
	pool kpool.Pool
}

func newPublications(pool kpool.Pool) kdb.PublicationInterface {
	return &pgPublications{pool: pool}
}

func (p *pgPublications) Get(ctx context.Context, id int) (domain.Publication, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return domain.Publication{}, err
	}
	defer conn.Release()

	var publication domain.Publication
	if err := conn.QueryRow(
		ctx,
		`select "id", "title", "url" from "publications" where "id" = $1`,
		id,
	).Scan(&publication.Id, &publication.Title, &publication.URL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Publication{}, kpgerr.Missing{
				Table: "publications", Identity: fmt.Sprintf("id %d", id),
			}
		}
		return domain.Publication{}, err
	}
	return publication, nil
}

func (p *pgPublications) Find(ctx context.Context) ([]domain.Publication, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx, `select "id", "title", "url" from "publications" order by "id"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	publications := []domain.Publication{}
	for rows.Next() {
		var publication domain.Publication
		if err := rows.Scan(
			&publication.Id, &publication.Title, &publication.URL,
		); err != nil {
			return nil, err
		}
		publications = append(publications, publication)
	}
	return publications, rows.Err()
}

func (p *pgPublications) Register(ctx context.Context, publication domain.Publication) (domain.Publication, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Publication{}, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(
		ctx,
		`insert into "publications" ("title", "url") values ($1, $2) returning "id"`,
		publication.Title, publication.URL,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			tx.Rollback(ctx)
			return domain.Publication{}, p.conflictWith(ctx, publication)
		}
		return domain.Publication{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Publication{}, err
	}

	publication.Id = id
	return publication, nil
}

func (p *pgPublications) Delete(ctx context.Context, id int) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `delete from "dataset_publication" where "publication_id" = $1`, id,
	); err != nil {
		return err
	}

	var deleted int
	if err := tx.QueryRow(
		ctx, `delete from "publications" where "id" = $1 returning "id"`, id,
	).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table: "publications", Identity: fmt.Sprintf("id %d", id),
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

func (p *pgPublications) Datasets(ctx context.Context, id int) ([]domain.Dataset, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var found bool
	if err := conn.QueryRow(
		ctx, `select exists (select 1 from "publications" where "id" = $1)`, id,
	).Scan(&found); err != nil {
		return nil, err
	}
	if !found {
		return nil, kpgerr.Missing{
			Table: "publications", Identity: fmt.Sprintf("id %d", id),
		}
	}

	rows, err := conn.Query(
		ctx,
		`
		select "d"."id", "d"."name", "d"."platform", "d"."platform_specific_identifier"
		from "datasets" as "d"
		inner join "dataset_publication" as "dp"
			on "d"."id" = "dp"."dataset_id"
		where "dp"."publication_id" = $1
		order by "d"."id"
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDatasets(rows)
}

func (p *pgPublications) conflictWith(ctx context.Context, publication domain.Publication) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	var existing int
	if err := conn.QueryRow(
		ctx,
		`select "id" from "publications" where "title" = $1 and "url" = $2`,
		publication.Title, publication.URL,
	).Scan(&existing); err != nil {
		return err
	}

	return kpgerr.Conflict{
		Table:      "publications",
		Identity:   fmt.Sprintf("'%s' (%s)", publication.Title, publication.URL),
		ExistingId: existing,
	}
}
