package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/config"
	"github.com/hariskhan14/bazario/internal/db"
	"github.com/hariskhan14/bazario/internal/events"
	"github.com/hariskhan14/bazario/internal/logging"
	loggingmw "github.com/hariskhan14/bazario/internal/middleware/logging"
	"github.com/hariskhan14/bazario/internal/pricing"
	"github.com/hariskhan14/bazario/internal/repo"
	"github.com/hariskhan14/bazario/internal/search"
	"github.com/hariskhan14/bazario/internal/service/catalog"
	"github.com/hariskhan14/bazario/internal/service/orders"
	httpserver "github.com/hariskhan14/bazario/internal/transport/http"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(database); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Warn("kafka brokers not configured, event publishing disabled")
	}

	var indexer *search.Indexer
	var searchHandler *httpserver.SearchHandler
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Error("elasticsearch connect failed", "error", err)
			os.Exit(1)
		}
		indexer = &search.Indexer{ES: esClient, Index: cfg.ESIndex}
		searchHandler = &httpserver.SearchHandler{ES: esClient, Index: cfg.ESIndex}
	} else {
		logger.Warn("ES_URL not configured, product search disabled")
	}

	store := repo.NewGormRepo(database)
	rates := pricing.Rates{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
	}

	orderSvc := orders.NewService(store, rates, cfg.OrderNumberPrefix, producer)
	catalogSvc := catalog.NewService(store, indexer, producer)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Orders:  &httpserver.OrderHandler{Svc: orderSvc, WhatsAppNumber: cfg.WhatsAppNumber},
		Catalog: &httpserver.CatalogHandler{Svc: catalogSvc},
		Search:  searchHandler,
		Auth:    &auth.Verifier{JWTSecret: cfg.JWTAccessSecret},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
