package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/djr812/ExpenseTracker/internal/cli"
	"github.com/djr812/ExpenseTracker/internal/log"
	"github.com/djr812/ExpenseTracker/internal/shell"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()
	store := cli.InitStore(logger, cfg)
	defer store.Close()

	// Ctrl+C ends the session; the deferred Close still runs.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh := shell.New(store, cfg, logger, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		logger.Error("Session ended with error", log.FieldError, err)
		os.Exit(1)
	}
}
