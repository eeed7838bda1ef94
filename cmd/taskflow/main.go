// Package main is the entry point for the taskflow CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskflow/internal/cli"
	"taskflow/internal/commands"
	"taskflow/internal/config"
	"taskflow/internal/kvstore"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
		if cfg.Store == config.StoreMemory {
			return kvstore.NewMemory(), nil
		}
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
		store, err := kvstore.OpenSQLite(ctx, cfg.StorePath())
		if err != nil {
			return nil, err
		}
		cfg.Log().Debug("store opened", "path", store.Path())
		return store, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, cli.WithPrompt(cli.TerminalPrompt))

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
