package main

import (
	"context"

	"github.com/fullstackvinod/krishAlignUser/internal/config"
	"github.com/fullstackvinod/krishAlignUser/internal/db"
	"github.com/fullstackvinod/krishAlignUser/internal/fixtures"
	"github.com/fullstackvinod/krishAlignUser/internal/logging"
	"github.com/fullstackvinod/krishAlignUser/internal/migrate"
	catalogrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/catalog"
	orderrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/order"
	"github.com/fullstackvinod/krishAlignUser/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.Must(cfg.LogLevel, cfg.LogFormat).Named("seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	data, err := fixtures.Load()
	if err != nil {
		logger.Fatal("load fixtures", zap.Error(err))
	}

	st, err := seed.Apply(ctx, data,
		catalogrepo.NewPostgres(pool, logger.Named("catalog")),
		orderrepo.NewPostgres(pool, logger.Named("orders")),
	)
	if err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied",
		zap.Int("categories", st.Categories),
		zap.Int("ingredients", st.Ingredients),
		zap.Int("combos", st.Combos),
		zap.Int("alternatives", st.Alternatives),
		zap.Int("orders", st.Orders),
	)
}
