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

	"go.uber.org/zap"

	"presence-analyzer/internal/directory"
	"presence-analyzer/internal/platform/cache"
	"presence-analyzer/internal/platform/config"
	"presence-analyzer/internal/platform/db"
	"presence-analyzer/internal/platform/logger"
	"presence-analyzer/internal/platform/metrics"
	"presence-analyzer/internal/presence"
	"presence-analyzer/internal/server"
)

// @title       Presence Analyzer API
// @version     1.0
// @BasePath    /api/v1
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 設定読み込み
	path := os.Getenv("PRESENCE_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log.Info("starting", zap.String("mode", cfg.Mode), zap.String("source", cfg.Source.Kind))

	loader, closeSource, err := newLoader(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	m := metrics.New()
	records := cache.New[*presence.RecordStore](cfg.CacheWindow(), loader.Load,
		cache.WithObserver[*presence.RecordStore](m.CacheObserver("presence")))

	// URL 未設定なら全員 Anonymous user
	dir := directory.NewService(cfg.Directory.URL, cfg.DirectoryTimeout(), cfg.DirectoryWindow(),
		m.CacheObserver("directory"), log.Named("directory"))

	r, err := server.NewRouter(server.Deps{
		Mode:      cfg.Mode,
		Presence:  presence.NewService(records, log.Named("presence")),
		Directory: dir,
		Metrics:   m,
		Log:       log.Named("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func newLoader(cfg *config.Config, log *zap.Logger) (presence.Loader, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceMySQL:
		conn, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to DB", zap.String("db", cfg.DB.DBName))
		l, err := presence.NewSQLLoader(conn, cfg.Source.Table, log.Named("presence"))
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return l, func() { conn.Close() }, nil
	default:
		return presence.NewCSVLoader(cfg.Source.Path, cfg.Source.Encoding, log.Named("presence")), func() {}, nil
	}
}
