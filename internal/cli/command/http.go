package command

import (
	"github.com/urfave/cli/v2"

	"github.com/ferdiebergado/rcli/internal/app"
)

// HTTPCommand returns the http subcommand group.
func HTTPCommand() *cli.Command {
	return &cli.Command{
		Name:  "http",
		Usage: "HTTP utilities",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve a directory over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Directory to serve (default: server.root)",
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on (default: server.port)",
					},
				},
				Action: httpServe,
			},
		},
	}
}

func httpServe(c *cli.Context) error {
	overrides := map[string]any{}
	if c.IsSet("dir") {
		overrides["server.root"] = c.String("dir")
	}
	if c.IsSet("port") {
		overrides["server.port"] = c.Int("port")
	}

	opts, err := loadOptions(c, overrides)
	if err != nil {
		return err
	}

	return app.Serve(c.Context, opts.Server)
}
