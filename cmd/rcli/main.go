// Command rcli signs and verifies tokens and serves a directory over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/rcli/internal/cli/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := command.App().RunContext(ctx, os.Args); err != nil {
		slog.Error("Command failed.", "reason", err)
		stop()
		os.Exit(1)
	}
}
