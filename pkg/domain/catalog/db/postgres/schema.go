package postgres

import (
	"context"

	kpool "github.com/aiod/metacat/pkg/conn/db/postgres/pool"
	"github.com/aiod/metacat/pkg/domain"
)

var ddl = []string{
	`
	create table if not exists "datasets" (
		"id" serial primary key,
		"name" varchar(150) not null,
		"platform" varchar(30) not null,
		"platform_specific_identifier" varchar(250) not null,
		constraint "datasets_platform_identifier" unique ("platform", "platform_specific_identifier")
	)
	`,
	`
	create table if not exists "publications" (
		"id" serial primary key,
		"title" varchar(250) not null,
		"url" varchar(250) not null,
		constraint "publications_title_url" unique ("title", "url")
	)
	`,
	`
	create table if not exists "dataset_publication" (
		"dataset_id" int not null references "datasets" ("id"),
		"publication_id" int not null references "publications" ("id"),
		primary key ("dataset_id", "publication_id")
	)
	`,
}

// Bootstrap creates the catalog tables when they do not exist yet.
func Bootstrap(ctx context.Context, pool kpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, query := range ddl {
		if _, err := tx.Exec(ctx, query); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SeedExample inserts the example datasets and publications, with the links
// between them, unless the catalog already holds any row.
func SeedExample(ctx context.Context, pool kpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var empty bool
	if err := tx.QueryRow(
		ctx,
		`
		select not exists (select 1 from "datasets")
			and not exists (select 1 from "publications")
		`,
	).Scan(&empty); err != nil {
		return err
	}
	if !empty {
		return nil
	}

	datasetIds := map[string]int{}
	for _, d := range []domain.Dataset{
		{Name: "Higgs", Platform: domain.OpenML, PlatformSpecificIdentifier: "42769"},
		{Name: "porto-seguro", Platform: domain.OpenML, PlatformSpecificIdentifier: "42742"},
	} {
		var id int
		if err := tx.QueryRow(
			ctx,
			`
			insert into "datasets" ("name", "platform", "platform_specific_identifier")
			values ($1, $2, $3)
			returning "id"
			`,
			d.Name, string(d.Platform), d.PlatformSpecificIdentifier,
		).Scan(&id); err != nil {
			return err
		}
		datasetIds[d.Name] = id
	}

	publications := []struct {
		publication domain.Publication
		datasets    []string
	}{
		{
			publication: domain.Publication{
				Title: "AMLB: an AutoML Benchmark",
				URL:   "https://arxiv.org/abs/2207.12560",
			},
			datasets: []string{"Higgs", "porto-seguro"},
		},
		{
			publication: domain.Publication{
				Title: "Searching for exotic particles in high-energy physics with deep learning",
				URL:   "https://www.nature.com/articles/ncomms5308",
			},
			datasets: []string{"Higgs"},
		},
	}

	for _, entry := range publications {
		var id int
		if err := tx.QueryRow(
			ctx,
			`insert into "publications" ("title", "url") values ($1, $2) returning "id"`,
			entry.publication.Title, entry.publication.URL,
		).Scan(&id); err != nil {
			return err
		}
		for _, name := range entry.datasets {
			if _, err := tx.Exec(
				ctx,
				`insert into "dataset_publication" ("dataset_id", "publication_id") values ($1, $2)`,
				datasetIds[name], id,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
