package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/cart"
	"github.com/fullstackvinod/krishAlignUser/internal/config"
	"github.com/fullstackvinod/krishAlignUser/internal/db"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
	"github.com/fullstackvinod/krishAlignUser/internal/httpserver"
	"github.com/fullstackvinod/krishAlignUser/internal/logging"
	"github.com/fullstackvinod/krishAlignUser/internal/migrate"
	catalogrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/catalog"
	orderrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/order"
	cartsvc "github.com/fullstackvinod/krishAlignUser/internal/service/cart"
	catalogsvc "github.com/fullstackvinod/krishAlignUser/internal/service/catalog"
	ordersvc "github.com/fullstackvinod/krishAlignUser/internal/service/order"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.Must(cfg.LogLevel, cfg.LogFormat).Named("api")
	defer func() { _ = logger.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var (
		catalogRepo catalogrepo.Repository
		orderRepo   orderrepo.Repository
		pinger      httpserver.Pinger
	)
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer dbpool.Close()
		if err := migrate.Apply(ctx, dbpool); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		catalogRepo = catalogrepo.NewPostgres(dbpool, logger.Named("catalog"))
		orderRepo = orderrepo.NewPostgres(dbpool, logger.Named("orders"))
		pinger = dbpool
	default:
		data, err := fixtures.Load()
		if err != nil {
			logger.Fatal("load fixtures", zap.Error(err))
		}
		catalogRepo = catalogrepo.NewFixtures(data)
		orderRepo = orderrepo.NewFixtures(data)
	}
	logger.Info("catalog ready", zap.String("source", cfg.CatalogSource))

	catalogService := catalogsvc.New(catalogRepo)
	orderService := ordersvc.New(orderRepo)
	pricing := cart.Pricing{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		DeliveryFee:           cfg.Pricing.DeliveryFee,
		TaxRate:               cfg.Pricing.TaxRate,
	}
	cartService := cartsvc.New(catalogService, pricing, cfg.CartSessionTTL, logger.Named("cart"))
	go cartService.RunSweeper(ctx, sweepInterval(cfg.CartSessionTTL))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pinger, httpserver.Deps{
		CatalogSvc:     catalogService,
		OrderSvc:       orderService,
		CartSvc:        cartService,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// sweepInterval checks for expired carts a few times per TTL, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
