package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "QuoteVault/internal/domain/repository"
	"QuoteVault/internal/usecase"
	"QuoteVault/pkg/config"
	xhttp "QuoteVault/pkg/http"
	applogger "QuoteVault/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	kv         drepo.KeyValue
	indicators *usecase.IndicatorStore
	favorites  *usecase.FavoritesStore
	wallet     *usecase.WalletStore
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	kv drepo.KeyValue,
	indicators *usecase.IndicatorStore,
	favorites *usecase.FavoritesStore,
	wallet *usecase.WalletStore,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		kv:         kv,
		indicators: indicators,
		favorites:  favorites,
		wallet:     wallet,
		handler:    handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm from the last persisted state so the first request after a restart
	// serves the previous snapshot instead of an empty collection.
	a.indicators.Warm(ctx)
	a.favorites.Load(ctx)
	a.wallet.Load(ctx)

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("store", a.cfg.Store.Backend),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.kv.Close(); err != nil {
		a.log.Warn("store close error", applogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return nil
}
