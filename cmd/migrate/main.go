package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"campus-jobs/internal/config"
	"campus-jobs/internal/database/migration"
	dbpostgres "campus-jobs/internal/database/postgres"
	"campus-jobs/internal/logger"
	"campus-jobs/migrations"
)

func main() {
	status := flag.Bool("status", false, "list pending migrations without applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(cfg.App.AppName, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if !cfg.Database.Configured() {
		l.Fatal("DB_HOST, DB_NAME and DB_USER are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName+"-migrate", l)
	if err != nil {
		l.Fatal("connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	runner := migration.Runner{FS: migrations.FS, Logger: l}
	if *status {
		pending, err := runner.Pending(ctx, db.SQLDB())
		if err != nil {
			l.Fatal("status failed", zap.Error(err))
		}
		for _, m := range pending {
			l.Info("pending migration", zap.Int64("version", m.Version), zap.String("file", m.Filename))
		}
		l.Info("migration status", zap.Int("pending", len(pending)))
		return
	}

	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		l.Fatal("migration failed", zap.Error(err))
	}
	l.Info("migrations applied")
}
