package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/twmb/franz-go/pkg/sr"

	"github.com/wnstore/storefront/config"
	"github.com/wnstore/storefront/internal/adapter/httphandler"
	"github.com/wnstore/storefront/internal/adapter/kafka"
	"github.com/wnstore/storefront/internal/adapter/objstorage"
	"github.com/wnstore/storefront/internal/adapter/storage"
	"github.com/wnstore/storefront/internal/core/domain"
	"github.com/wnstore/storefront/internal/core/service"
	"github.com/wnstore/storefront/pkg/schema"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	events     kafka.CatalogEventsProducer
	catalog    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CatalogEvents + "-value"
	eventSerde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	events, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CatalogEvents,
		),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.events = events
}

func (app *App) initCoreService() {
	repo := storage.NewProductsRepository(app.sqldb)
	images := objstorage.NewImagesClient(
		app.cfg.ImageStore.BaseURL,
		app.cfg.ImageStore.Bucket,
		app.cfg.ImageStore.ServiceKey,
	)

	app.catalog = service.New(
		repo,
		app.events,
		images,
		service.WithTTL(app.cfg.Cache.TTL),
		service.WithMaxRows(app.cfg.Cache.MaxRows),
		service.WithFetchTimeout(app.cfg.Cache.FetchTimeout),
		service.WithCategoryMapping(
			toCategoryMapping(app.cfg.Catalog.Categories),
			app.cfg.Catalog.DefaultImage,
		),
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.catalog)
	httphandler.RegisterAdmin(mux, app.catalog, app.catalog, app.cfg.AdminToken)

	handler := httphandler.RequestID(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.events.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

func toCategoryMapping(
	src map[string]config.CategoryMeta,
) map[string]domain.CategoryMeta {
	m := make(map[string]domain.CategoryMeta, len(src))
	for key, meta := range src {
		m[key] = domain.CategoryMeta{
			Name:        meta.Name,
			Description: meta.Description,
			Image:       meta.Image,
		}
	}
	return m
}
