package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/crmclient/internal/buildinfo"
	"github.com/dmitrijs2005/crmclient/internal/client/cli"
	"github.com/dmitrijs2005/crmclient/internal/client/config"
	"github.com/dmitrijs2005/crmclient/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error(ctx, "client stopped", "error", err)
	}
}
