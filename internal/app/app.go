package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/session"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx            context.Context
	cfg            config.Config
	sqldb          storage.SQLDB
	cartEventSerde schema.Serde
	eventsProducer kafka.CartEventsProducer
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initEventsProducer()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.CartEvents + "-value"
	cartEventSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.cartEventSerde = cartEventSerde
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CartEvents,
		),
		kafka.ProducerEncoderOpt(app.cartEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventsProducer = producer
}

func (app *App) initHTTPServer() {
	catalogRepo := storage.NewCatalogRepository(app.sqldb)
	cartRepo := storage.NewCartRepository(app.sqldb)
	s := service.New(catalogRepo, cartRepo, app.eventsProducer)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, s, s)
	httphandler.RegisterCart(mux, s)

	sessionCfg := httphandler.SessionConfig{
		CookieName: app.cfg.Session.CookieName,
		TTL:        time.Duration(app.cfg.Session.TTLDays) * 24 * time.Hour,
	}
	handler := httphandler.WithSession(mux, session.NewProvider(), sessionCfg)
	handler = httphandler.AllowJSON(handler)

	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.eventsProducer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
