package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"herptracker/internal/adapters/blob"
	"herptracker/internal/adapters/blob/core"
	"herptracker/internal/adapters/blob/s3"
	"herptracker/internal/adapters/storage/postgres"
	"herptracker/internal/adapters/storage/sqlite"
	"herptracker/internal/adapters/storage/sqlstore"
	"herptracker/internal/config"
	"herptracker/internal/platform/httpclient"
	"herptracker/internal/platform/logger"
	"herptracker/internal/platform/metrics"
	"herptracker/internal/router"
)

// app es el grafo armado una sola vez al arrancar: DB, imágenes, router, server.
type app struct {
	log    logger.Logger
	db     *sql.DB
	server *http.Server
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{log: log}

	opts := router.Options{
		Logger:         log,
		Metrics:        metrics.New(cfg.App.Name),
		Location:       loc,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		RecordsLimit:   cfg.App.RecordsLimit,
	}

	log.Info("app: initializing database", map[string]any{"driver": cfg.DB.Driver})
	switch cfg.DB.Driver {
	case "sqlite":
		a.db, err = sqlite.Open(ctx, cfg.DB.SQLitePath)
		opts.Dialect = sqlstore.SQLite
	case "postgres":
		a.db, err = postgres.Open(ctx, cfg.DB.DSN)
		opts.Dialect = sqlstore.Postgres
	case "memory":
		log.Warn("app: using in-memory store, data is lost on exit", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Driver, err)
	}
	opts.DB = a.db

	log.Info("app: initializing image store", map[string]any{"driver": cfg.Uploads.Driver})
	images, err := blob.Open(ctx, blob.Config{
		Driver: core.Driver(cfg.Uploads.Driver),
		Dir:    cfg.Uploads.Dir,
		S3: s3.Config{
			Region:          cfg.Uploads.S3.Region,
			Bucket:          cfg.Uploads.S3.Bucket,
			Prefix:          cfg.Uploads.S3.Prefix,
			Endpoint:        cfg.Uploads.S3.Endpoint,
			AccessKeyID:     cfg.Uploads.S3.AccessKeyID,
			SecretAccessKey: cfg.Uploads.S3.SecretAccessKey,
			PathStyle:       cfg.Uploads.S3.PathStyle,
			HTTPClient:      httpclient.New(httpclient.DefaultTimeout, nil),
		},
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open image store: %w", err)
	}
	opts.Images = images

	handler, err := router.NewRouter(opts)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.server = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // subidas de imágenes
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
