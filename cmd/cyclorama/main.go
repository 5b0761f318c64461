// Package main is the entry point for the cyclorama scene server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/cyclorama/internal/catalog"
	"github.com/Faultbox/cyclorama/internal/config"
	"github.com/Faultbox/cyclorama/internal/logger"
	"github.com/Faultbox/cyclorama/internal/server"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", config.UserConfigPath())
		return
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Cyclorama ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scenes, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	if _, err := scenes.Scene(cfg.Viewer.DefaultScene); err != nil {
		logger.Warn("default scene missing from catalog", zap.String("scene", cfg.Viewer.DefaultScene))
	}
	logger.Info("catalog loaded", zap.Int("scenes", scenes.Len()), zap.String("path", cfg.Catalog.Path))

	store := catalog.NewStore(scenes, logger.Log)
	if cfg.Catalog.Watch {
		if err := store.Watch(ctx, cfg.Catalog.Path); err != nil {
			return err
		}
		logger.Info("watching catalog", zap.String("path", cfg.Catalog.Path))
	}

	return server.New(store, cfg.Server, cfg.Viewer, logger.Log).Run(ctx)
}

// loadCatalog reads and validates the catalog file, or the built-in one when
// path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if path == "" {
		c, err = catalog.Default()
	} else {
		c, err = catalog.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}
