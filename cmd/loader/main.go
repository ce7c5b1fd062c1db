package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sngm3741/restaurant-directory/api/internal/config"
	mongodoc "github.com/sngm3741/restaurant-directory/api/internal/infrastructure/mongo"
	"github.com/sngm3741/restaurant-directory/api/internal/ingest/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type loaderOptions struct {
	dataDir string
	dryRun  bool
}

func parseFlags(cfg config.Config) loaderOptions {
	var opts loaderOptions
	flag.StringVar(&opts.dataDir, "dir", cfg.DataDir, "JSON ダンプを置いたディレクトリ")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "書き込みを行わず件数だけを報告する")
	flag.Parse()
	return opts
}

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[restaurant-loader] ", log.LstdFlags|log.Lshortfile)
	opts := parseFlags(cfg)

	if err := run(cfg, opts, logger); err != nil {
		logger.Fatalf("取り込みを中断しました: %v", err)
	}
}

// run は接続から切断までを 1 回の取り込みとして実行する。致命的なエラーは切断後に返す。
func run(cfg config.Config, opts loaderOptions, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return err
	}
	logger.Printf("MongoDB に接続しました: db=%s collection=%s", cfg.MongoDatabase, cfg.RestaurantCollection)

	repo := mongodoc.NewIngestRepository(client.Database(cfg.MongoDatabase), cfg.RestaurantCollection)
	if !opts.dryRun {
		if err := repo.EnsureIndexes(connectCtx); err != nil {
			return err
		}
	}

	loader := application.NewLoader(application.LoaderConfig{
		Store:   repo,
		Logger:  logger,
		Timeout: cfg.OperationTimeout,
		DryRun:  opts.dryRun,
	})
	_, err = loader.Run(ctx, opts.dataDir)
	return err
}
