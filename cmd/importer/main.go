package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fullstackvinod/krishAlignUser/internal/config"
	"github.com/fullstackvinod/krishAlignUser/internal/db"
	"github.com/fullstackvinod/krishAlignUser/internal/importer"
	"github.com/fullstackvinod/krishAlignUser/internal/logging"
	catalogrepo "github.com/fullstackvinod/krishAlignUser/internal/repository/catalog"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to combo CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logging.Must(cfg.LogLevel, cfg.LogFormat).Named("importer")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, catalogrepo.NewPostgres(pool, logger.Named("catalog")))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d combos in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
