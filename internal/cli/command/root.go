package command

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/urfave/cli/v2"

	"github.com/ferdiebergado/rcli/internal/config"
	"github.com/ferdiebergado/rcli/internal/pkg/logging"
	"github.com/ferdiebergado/rcli/internal/platform/validation"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

const envFile = ".env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "rcli",
		Usage:   "Sign and verify tokens, serve a directory over HTTP",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			JWTCommand(),
			HTTPCommand(),
		},
		Before: setup,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"RCLI_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "Application environment; production switches logs to JSON",
		},
	}
}

// setup loads the optional .env file and installs the logger.
func setup(c *cli.Context) error {
	if appEnv(c) != "production" {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
	}

	opts, err := loadOptions(c, nil)
	if err != nil {
		return err
	}

	logging.SetupLogger(opts.Env, opts.Log.Level, c.App.ErrWriter)
	return nil
}

// appEnv resolves the environment from --env, then RCLI_ENV, the same keys
// config.Load reads it from.
func appEnv(c *cli.Context) string {
	if c.IsSet("env") {
		return c.String("env")
	}
	return env.Get(config.EnvPrefix+"ENV", "development")
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}

	if err := env.Load(path); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// loadOptions layers the explicitly set global flags and the given
// command-level overrides on top of the configuration sources.
func loadOptions(c *cli.Context, overrides map[string]any) (*config.Options, error) {
	merged := make(map[string]any, len(overrides)+2)
	if c.IsSet("log-level") {
		merged["log.level"] = c.String("log-level")
	}
	if c.IsSet("env") {
		merged["env"] = c.String("env")
	}
	for k, v := range overrides {
		merged[k] = v
	}

	opts, err := config.Load(c.String("config"), merged, validation.NewGoPlaygroundValidator())
	if err != nil {
		return nil, err
	}

	slog.Debug("Options resolved.", slog.Any("options", opts))
	return opts, nil
}
