package main

import (
	"context"
	"flag"

	"github.com/fullstackvinod/krishAlignUser/internal/config"
	"github.com/fullstackvinod/krishAlignUser/internal/db"
	"github.com/fullstackvinod/krishAlignUser/internal/logging"
	"github.com/fullstackvinod/krishAlignUser/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	var (
		down    int
		version bool
	)
	flag.IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	flag.BoolVar(&version, "version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg := config.FromEnv()
	logger := logging.Must(cfg.LogLevel, cfg.LogFormat).Named("migrate")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	switch {
	case version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			logger.Fatal("read schema version", zap.Error(err))
		}
		logger.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case down > 0:
		if err := migrate.Down(ctx, pool, down); err != nil {
			logger.Fatal("roll back migrations", zap.Error(err))
		}
		logger.Info("migrations rolled back", zap.Int("steps", down))
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}
}
