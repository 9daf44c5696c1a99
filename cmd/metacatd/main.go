package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aiod/metacat/pkg/configs/server"
	"github.com/aiod/metacat/pkg/connectors"
	"github.com/aiod/metacat/pkg/connectors/example"
	"github.com/aiod/metacat/pkg/connectors/huggingface"
	"github.com/aiod/metacat/pkg/connectors/openml"
	kdb "github.com/aiod/metacat/pkg/domain/catalog/db"
	kpg "github.com/aiod/metacat/pkg/domain/catalog/db/postgres"
	domerr "github.com/aiod/metacat/pkg/domain/errors"
	"github.com/aiod/metacat/pkg/utils/echoutil"
	"github.com/aiod/metacat/pkg/utils/filewatch"

	"github.com/aiod/metacat/cmd/metacatd/handlers"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pport := flag.Int("port", 0, "port to listen on. overrides the config when nonzero")
	populate := flag.String("populate", "nothing", "fill the catalog from a platform at startup. nothing|example|openml|huggingface")
	populateLimit := flag.Int("populate-limit", 500, "max datasets registered per --populate run. 0 means unlimited")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := server.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancel()
	context.AfterFunc(ctx, func() {
		log.Println("config file is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown by config update: %s", err)
		}
	})

	// get dbaccesor
	db, err := kpg.New(ctx, conf.Database())
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	registry := connectors.New(
		[]connectors.DatasetConnector{
			example.NewDatasetConnector(),
			openml.New(conf.Connectors().OpenML().BaseURL(), nil),
			huggingface.New(conf.Connectors().HuggingFace().BaseURL(), nil),
		},
		[]connectors.PublicationConnector{
			example.NewPublicationConnector(),
		},
	)

	if *populate != "nothing" {
		if err := populateCatalog(ctx, db, registry, *populate, *populateLimit); err != nil {
			log.Fatalf("can not populate catalog from %s: %s", *populate, err)
		}
	}

	// handlers
	{
		e.GET("/api/platforms/", handlers.ListPlatformsHandler())
		e.GET(
			"/api/platforms/:platform/datasets/:identifier/meta/",
			handlers.GetMetaByIdentifierHandler(db.Datasets(), registry, "platform", "identifier"),
		)
	}

	{
		datasetId := "datasetId"
		e.GET("/api/datasets/", handlers.FindDatasetHandler(db.Datasets()))
		e.POST("/api/datasets/", handlers.RegisterDatasetHandler(db.Datasets()))

		e.GET("/api/datasets/:datasetId/", handlers.GetDatasetHandler(db.Datasets(), datasetId))
		e.PUT("/api/datasets/:datasetId/", handlers.ReplaceDatasetHandler(db.Datasets(), datasetId))
		e.DELETE("/api/datasets/:datasetId/", handlers.DeleteDatasetHandler(db.Datasets(), datasetId))

		e.GET(
			"/api/datasets/:datasetId/meta/",
			handlers.GetMetaHandler(db.Datasets(), registry, datasetId),
		)

		e.PUT(
			"/api/datasets/:datasetId/publications/:publicationId/",
			handlers.LinkHandler(db.Links(), datasetId, "publicationId"),
		)
		e.DELETE(
			"/api/datasets/:datasetId/publications/:publicationId/",
			handlers.UnlinkHandler(db.Links(), datasetId, "publicationId"),
		)
	}

	{
		publicationId := "publicationId"
		e.GET("/api/publications/", handlers.FindPublicationHandler(db.Publications()))
		e.POST("/api/publications/", handlers.RegisterPublicationHandler(db.Publications()))
		e.GET("/api/publications/:publicationId/", handlers.GetPublicationHandler(db.Publications(), publicationId))
		e.DELETE("/api/publications/:publicationId/", handlers.DeletePublicationHandler(db.Publications(), publicationId))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	port := conf.Port()
	if *pport != 0 {
		port = int32(*pport)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(fmt.Sprintf(":%d", port), cert, key))
	} else {
		e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
	}
}

type exampleSeeder interface {
	SeedExample(ctx context.Context) error
}

// populateCatalog registers every dataset the named platform offers,
// up to limit. Rows already in the catalog are skipped, so running the
// daemon with --populate repeatedly is safe.
func populateCatalog(
	ctx context.Context,
	db kdb.CatalogDatabase,
	registry *connectors.Registry,
	platform string,
	limit int,
) error {
	if platform == "example" {
		if seeder, ok := db.(exampleSeeder); ok {
			if err := seeder.SeedExample(ctx); err != nil {
				return err
			}
		}
	}

	connector, err := registry.Datasets(platform)
	if err != nil {
		return err
	}

	registered, skipped := 0, 0
	cursor := connector.FetchAll(ctx, limit)
	for {
		descriptor, ok, err := cursor.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := db.Datasets().Register(ctx, descriptor); errors.Is(err, domerr.ErrConflict) {
			skipped += 1
		} else if err != nil {
			return err
		} else {
			registered += 1
		}
	}
	log.Printf("populated %d datasets from %s (%d already known)", registered, platform, skipped)

	if pubConnector, err := registry.Publications(platform); err == nil {
		publications, err := pubConnector.FetchAll(ctx)
		if err != nil {
			return err
		}
		for _, p := range publications {
			if _, err := db.Publications().Register(ctx, p); err != nil && !errors.Is(err, domerr.ErrConflict) {
				return err
			}
		}
	}

	return nil
}
