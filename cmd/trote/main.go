package main

import (
	"context"
	"fmt"
	"os"

	"github.com/javiermolinar/trote/internal/config"
	"github.com/javiermolinar/trote/internal/storage"
	"github.com/javiermolinar/trote/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	app := ui.NewApp(store, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
