package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"library-backend/internal/platform/cache"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/db"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Printf("[INFO] mode:%s", cfg.Mode)

	if err := ensureDataDirs(cfg); err != nil {
		return err
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[INFO] connected to DB: %s", dbLabel(cfg.DB))

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(ctx, conn, cfg.DB.Driver); err != nil {
			return err
		}
	}

	c, err := cache.Open(cfg.Cache.Driver, cfg.Cache.Path, cfg.Cache.TTL)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: newRouter(cfg, conn, c),
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if certFile, keyFile, ok := cfg.TLSFiles(); ok {
			log.Printf("[INFO] listening on https://%s", srv.Addr)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Printf("[WARN] no certificate configured, listening on http://%s", srv.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	log.Println("[INFO] shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ensureDataDirs は SQLite / bolt のファイルを置くディレクトリを作る。
func ensureDataDirs(cfg *config.Config) error {
	var paths []string
	if cfg.DB.Driver == db.DriverSQLite {
		paths = append(paths, cfg.DB.Path)
	}
	if cfg.Cache.Driver == "bolt" {
		paths = append(paths, cfg.Cache.Path)
	}
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}

func dbLabel(c config.DatabaseConfig) string {
	if c.Driver == db.DriverSQLite {
		return c.Path
	}
	return c.DBName
}
