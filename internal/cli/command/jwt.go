package command

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ferdiebergado/rcli/internal/platform/jwt"
)

// JWTCommand returns the jwt subcommand group.
func JWTCommand() *cli.Command {
	return &cli.Command{
		Name:  "jwt",
		Usage: "Sign and verify tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "sign",
				Usage: "Sign a token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "sub",
						Aliases:  []string{"s"},
						Usage:    "Subject",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "aud",
						Aliases:  []string{"a"},
						Usage:    "Audience",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "exp",
						Aliases: []string{"e"},
						Usage:   "Expiry such as 14d, 12h, 23m or 1s (default: jwt.expiry)",
					},
					secretFlag(),
				},
				Action: jwtSign,
			},
			{
				Name:  "verify",
				Usage: "Verify a token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Usage:    "Token to verify",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print the verified claims",
					},
					secretFlag(),
				},
				Action: jwtVerify,
			},
		},
	}
}

var newJWTSigner = func(secret string) (jwt.Signer, error) {
	return jwt.NewGolangJWTSigner(secret)
}

func secretFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "secret",
		Usage: "HMAC signing secret (overrides jwt.secret / RCLI_JWT_SECRET)",
	}
}

func newSigner(c *cli.Context) (jwt.Signer, string, error) {
	overrides := map[string]any{}
	if c.IsSet("secret") {
		overrides["jwt.secret"] = c.String("secret")
	}

	opts, err := loadOptions(c, overrides)
	if err != nil {
		return nil, "", err
	}

	signer, err := newJWTSigner(opts.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrEmptySecret) {
			return nil, "", fmt.Errorf("%w: set --secret, jwt.secret or RCLI_JWT_SECRET", err)
		}
		return nil, "", err
	}

	return signer, opts.JWT.Expiry, nil
}

func jwtSign(c *cli.Context) error {
	signer, defaultExpiry, err := newSigner(c)
	if err != nil {
		return err
	}

	expiry := defaultExpiry
	if c.IsSet("exp") {
		expiry = c.String("exp")
	}

	token, err := signer.Sign(c.String("sub"), c.String("aud"), expiry)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}

func jwtVerify(c *cli.Context) error {
	signer, _, err := newSigner(c)
	if err != nil {
		return err
	}

	claims, err := signer.Verify(c.String("token"))
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}

	if !c.Bool("verbose") {
		_, err = fmt.Fprintln(c.App.Writer, "Token is valid.")
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(claims)
}
