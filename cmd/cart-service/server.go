package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-service/internal/api"
	"github.com/Cheertaboi/cart-service/internal/api/middleware"
	"github.com/Cheertaboi/cart-service/internal/cart"
	"github.com/Cheertaboi/cart-service/internal/catalog"
	"github.com/Cheertaboi/cart-service/internal/config"
	"github.com/Cheertaboi/cart-service/internal/repository"
	"github.com/Cheertaboi/cart-service/internal/service"
	"github.com/Cheertaboi/cart-service/pkg/db"
)

func loadConfig(addr string, dev, devSet bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if devSet {
		cfg.Log.Development = dev
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.Catalog.Source != config.CatalogPostgres {
		return catalog.Default(), nil
	}

	dbCfg, err := db.LoadPostgresConfig()
	if err != nil {
		return nil, err
	}
	conn, err := db.NewPostgresConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	// products are read once; the connection is not needed afterwards
	defer conn.Close()

	c, err := repository.NewProductRepo(conn).LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded from postgres", zap.Int("products", len(c.Products())), zap.String("host", dbCfg.Host))
	return c, nil
}

func newServer(cfg *config.Config, svc *service.CartService, logger *zap.Logger) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Logger(logger))
	r.Mount("/", api.NewRouter(svc))

	return &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	c, err := buildCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Error("catalog unavailable", zap.Error(err))
		return err
	}

	svc := service.NewCartService(c, logger, cart.WithThreshold(cfg.Promotion.Threshold))
	srv := newServer(cfg, svc, logger)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	idleConnsClosed := make(chan struct{})
	go func() {
		defer close(idleConnsClosed)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting cart-service", zap.String("addr", cfg.HTTP.Addr), zap.String("catalog", cfg.Catalog.Source))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-idleConnsClosed
		return fmt.Errorf("listen: %w", err)
	}

	<-idleConnsClosed
	logger.Info("server stopped")
	return nil
}
