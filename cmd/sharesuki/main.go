package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/sharesuki/internal/cli"
	"github.com/yigit/sharesuki/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}
