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

type pgDatasets struct {
	pool kpool.Pool
}

func newDatasets(pool kpool.Pool) kdb.DatasetInterface {
	return &pgDatasets{pool: pool}
}

func (d *pgDatasets) Get(ctx context.Context, id int) (domain.Dataset, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer conn.Release()

	return scanDataset(
		conn.QueryRow(
			ctx,
			`
			select "id", "name", "platform", "platform_specific_identifier"
			from "datasets" where "id" = $1
			`,
			id,
		),
		fmt.Sprintf("id %d", id),
	)
}

func (d *pgDatasets) GetByIdentifier(
	ctx context.Context, platform domain.Platform, identifier string,
) (domain.Dataset, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer conn.Release()

	return scanDataset(
		conn.QueryRow(
			ctx,
			`
			select "id", "name", "platform", "platform_specific_identifier"
			from "datasets"
			where "platform" = $1 and "platform_specific_identifier" = $2
			`,
			string(platform), identifier,
		),
		fmt.Sprintf("%s '%s'", platform, identifier),
	)
}

func (d *pgDatasets) Find(ctx context.Context, platforms []domain.Platform) ([]domain.Dataset, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	names := make([]string, len(platforms))
	for nth, p := range platforms {
		names[nth] = string(p)
	}

	rows, err := conn.Query(
		ctx,
		`
		select "id", "name", "platform", "platform_specific_identifier"
		from "datasets"
		where cardinality($1::varchar[]) = 0 or "platform" = any($1::varchar[])
		order by "id"
		`,
		names,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDatasets(rows)
}

func (d *pgDatasets) Register(ctx context.Context, dataset domain.Dataset) (domain.Dataset, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(
		ctx,
		`
		insert into "datasets" ("name", "platform", "platform_specific_identifier")
		values ($1, $2, $3)
		returning "id"
		`,
		dataset.Name, string(dataset.Platform), dataset.PlatformSpecificIdentifier,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			tx.Rollback(ctx)
			return domain.Dataset{}, d.conflictWith(ctx, dataset)
		}
		return domain.Dataset{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Dataset{}, err
	}

	dataset.Id = id
	return dataset, nil
}

func (d *pgDatasets) Replace(ctx context.Context, id int, dataset domain.Dataset) (domain.Dataset, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer tx.Rollback(ctx)

	var replaced int
	if err := tx.QueryRow(
		ctx,
		`
		update "datasets"
		set "name" = $2, "platform" = $3, "platform_specific_identifier" = $4
		where "id" = $1
		returning "id"
		`,
		id, dataset.Name, string(dataset.Platform), dataset.PlatformSpecificIdentifier,
	).Scan(&replaced); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dataset{}, kpgerr.Missing{
				Table: "datasets", Identity: fmt.Sprintf("id %d", id),
			}
		}
		if isUniqueViolation(err) {
			tx.Rollback(ctx)
			return domain.Dataset{}, d.conflictWith(ctx, dataset)
		}
		return domain.Dataset{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Dataset{}, err
	}

	dataset.Id = id
	return dataset, nil
}

func (d *pgDatasets) Delete(ctx context.Context, id int) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `delete from "dataset_publication" where "dataset_id" = $1`, id,
	); err != nil {
		return err
	}

	var deleted int
	if err := tx.QueryRow(
		ctx, `delete from "datasets" where "id" = $1 returning "id"`, id,
	).Scan(&deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table: "datasets", Identity: fmt.Sprintf("id %d", id),
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

func (d *pgDatasets) Publications(ctx context.Context, id int) ([]domain.Publication, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	var found bool
	if err := conn.QueryRow(
		ctx, `select exists (select 1 from "datasets" where "id" = $1)`, id,
	).Scan(&found); err != nil {
		return nil, err
	}
	if !found {
		return nil, kpgerr.Missing{
			Table: "datasets", Identity: fmt.Sprintf("id %d", id),
		}
	}

	rows, err := conn.Query(
		ctx,
		`
		select "p"."id", "p"."title", "p"."url"
		from "publications" as "p"
		inner join "dataset_publication" as "dp"
			on "p"."id" = "dp"."publication_id"
		where "dp"."dataset_id" = $1
		order by "p"."id"
		`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	publications := []domain.Publication{}
	for rows.Next() {
		var p domain.Publication
		if err := rows.Scan(&p.Id, &p.Title, &p.URL); err != nil {
			return nil, err
		}
		publications = append(publications, p)
	}
	return publications, rows.Err()
}

// conflictWith builds the Conflict error for a failed write, naming the
// row already holding (platform, identifier).
func (d *pgDatasets) conflictWith(ctx context.Context, dataset domain.Dataset) error {
	identity := fmt.Sprintf(
		"%s '%s'", dataset.Platform, dataset.PlatformSpecificIdentifier,
	)

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	var existing int
	if err := conn.QueryRow(
		ctx,
		`
		select "id" from "datasets"
		where "platform" = $1 and "platform_specific_identifier" = $2
		`,
		string(dataset.Platform), dataset.PlatformSpecificIdentifier,
	).Scan(&existing); err != nil {
		return err
	}

	return kpgerr.Conflict{
		Table: "datasets", Identity: identity, ExistingId: existing,
	}
}

func scanDataset(row pgx.Row, identity string) (domain.Dataset, error) {
	var (
		dataset  domain.Dataset
		platform string
	)
	if err := row.Scan(
		&dataset.Id, &dataset.Name, &platform, &dataset.PlatformSpecificIdentifier,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dataset{}, kpgerr.Missing{
				Table: "datasets", Identity: identity,
			}
		}
		return domain.Dataset{}, err
	}
	dataset.Platform = domain.Platform(platform)
	return dataset, nil
}

func collectDatasets(rows pgx.Rows) ([]domain.Dataset, error) {
	datasets := []domain.Dataset{}
	for rows.Next() {
		var (
			dataset  domain.Dataset
			platform string
		)
		if err := rows.Scan(
			&dataset.Id, &dataset.Name, &platform, &dataset.PlatformSpecificIdentifier,
		); err != nil {
			return nil, err
		}
		dataset.Platform = domain.Platform(platform)
		datasets = append(datasets, dataset)
	}
	return datasets, rows.Err()
}
