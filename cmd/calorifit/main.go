package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Vero970/ProjFit/internal/cli"
	"github.com/Vero970/ProjFit/internal/client"
	"github.com/Vero970/ProjFit/internal/config"
	"github.com/Vero970/ProjFit/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Terminal output belongs to the form; only errors are logged.
	zapLogger, err := logger.New(cfg.Environment, "error")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(client.New(cfg, zapLogger)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
