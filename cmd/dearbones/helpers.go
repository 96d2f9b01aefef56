package main

import (
	"context"
	"fmt"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/config"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.Log, debugMode)
	return cfg, nil
}

// openApp loads the config and opens the store. Callers must Close the app.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return app, nil
}

// withApp runs fn against an open app and closes it afterwards.
func withApp(ctx context.Context, fn func(app *bootstrap.App) error) (err error) {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(context.WithoutCancel(ctx)); closeErr != nil && err == nil {
			err = fmt.Errorf("close store: %w", closeErr)
		}
	}()
	return fn(app)
}
