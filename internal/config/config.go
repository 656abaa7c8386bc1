package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	timex "github.com/ferdiebergado/rcli/internal/pkg/time"
	"github.com/ferdiebergado/rcli/internal/platform/validation"
)

// EnvPrefix marks environment variables read as configuration.
// RCLI_SERVER_READ_TIMEOUT maps to server.read_timeout.
const EnvPrefix = "RCLI_"

var ErrInvalid = errors.New("invalid configuration")

type ServerOptions struct {
	Root            string         `koanf:"root" validate:"required"`
	Host            string         `koanf:"host"`
	Port            int            `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     timex.Duration `koanf:"read_timeout"`
	WriteTimeout    timex.Duration `koanf:"write_timeout"`
	IdleTimeout     timex.Duration `koanf:"idle_timeout"`
	ShutdownTimeout timex.Duration `koanf:"shutdown_timeout"`
	MountPrefix     string         `koanf:"mount_prefix" validate:"omitempty,startswith=/,endswith=/"`
	MetricsAddress  string         `koanf:"metrics_address" validate:"omitempty,hostname_port"`
}

type JWTOptions struct {
	Secret string `koanf:"secret"`
	Expiry string `koanf:"expiry" validate:"required"`
}

type LogOptions struct {
	Level string `koanf:"level" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

type Options struct {
	Env    string         `koanf:"env"`
	Server *ServerOptions `koanf:"server" validate:"required"`
	JWT    *JWTOptions    `koanf:"jwt" validate:"required"`
	Log    *LogOptions    `koanf:"log" validate:"required"`
}

func (o *Options) LogValue() slog.Value {
	secret := ""
	if o.JWT.Secret != "" {
		secret = "[REDACTED]"
	}

	return slog.GroupValue(
		slog.String("env", o.Env),
		slog.Any("server", o.Server),
		slog.Group("jwt", slog.String("secret", secret), slog.String("expiry", o.JWT.Expiry)),
		slog.Any("log", o.Log),
	)
}

func defaults() map[string]any {
	return map[string]any{
		"env":                     "development",
		"server.root":             ".",
		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "10s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "60s",
		"server.shutdown_timeout": "10s",
		"server.mount_prefix":     "/tower/",
		"server.metrics_address":  "",
		"jwt.secret":              "",
		"jwt.expiry":              "14d",
		"log.level":               "info",
	}
}

// Load builds the options from defaults, the optional YAML cfgFile, RCLI_*
// environment variables and finally overrides, each layer replacing the previous.
func Load(cfgFile string, overrides map[string]any, v validation.Validator) (*Options, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	var opts Options
	if err := k.UnmarshalWithConf("", &opts, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           &opts,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if errs := v.ValidateStruct(&opts); len(errs) > 0 {
		return nil, validationError(errs)
	}

	slog.Debug("Config loaded.", "config_file", cfgFile, slog.Any("config", &opts))
	return &opts, nil
}

// envKey maps RCLI_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func validationError(errs map[string]string) error {
	msgs := make([]string, 0, len(errs))
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		msgs = append(msgs, errs[field])
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
