package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/rcli/internal/config"
	"github.com/ferdiebergado/rcli/internal/fileserver"
)

// Serve exposes opts.Root over HTTP until ctx is canceled.
func Serve(ctx context.Context, opts *config.ServerOptions) (err error) {
	dir, err := fileserver.Open(opts.Root)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dir.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close root: %w", closeErr))
		}
	}()

	a := New(opts, dir, NewProviders())
	if err := a.Start(ctx); err != nil {
		return errors.Join(fmt.Errorf("start server: %w", err), a.Shutdown())
	}

	if err := a.Shutdown(); err != nil {
		return err
	}
	slog.Info("Server shutdown gracefully.")
	return nil
}
