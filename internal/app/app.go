package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type coreServices struct {
	cart     port.CartAggregator
	searcher port.ProductSearcher
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	catalog    catalog.Store
	kvStore    storage.KVStore
	services   coreServices
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initStorage()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	app.catalog = catalog.Generate(app.cfg.Catalog.Size, app.cfg.Catalog.Seed)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	kvStore, err := storage.NewKVStore(app.cfg.HistoryDBPath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.kvStore = kvStore
}

func (app *App) initCoreServices() {
	app.services.cart = service.NewCartService()
	app.services.searcher = service.NewSearchService(
		app.catalog,
		app.kvStore,
		clockwork.NewRealClock(),
		app.cfg.Search.SearchingDelay,
	)
}

func (app *App) initInboundAdapters() {
	handler := httphandler.NewRouter(
		app.catalog, app.services.cart, app.services.searcher,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.kvStore.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
