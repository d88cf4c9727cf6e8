package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"geo-grid/internal/domain"
	"geo-grid/internal/render"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	AppEnv    string
	LogLevel  slog.Level
	LogFormat string // text, json

	Surface domain.Surface
	LatStep float64
	LonStep float64

	OutputFormat render.Format
}

// Flag names that override the matching config keys when set.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"format":    "output.format",
	"lat-step":  "grid.lat_step",
	"lon-step":  "grid.lon_step",
}

// Load reads .env, an optional config.yaml and GEOGRID_* environment
// variables, in increasing order of precedence. Flags that were set on
// flags take precedence over all of them.
func Load(flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config: read .env: %w", err)
		}
		slog.Debug("no .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.geo-grid")

	// Hong Kong demo surface.
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("grid.bl_lat", 22.15)
	v.SetDefault("grid.bl_lon", 113.80)
	v.SetDefault("grid.tr_lat", 22.60)
	v.SetDefault("grid.tr_lon", 114.45)
	v.SetDefault("grid.lat_step", 0.001)
	v.SetDefault("grid.lon_step", 0.001)
	v.SetDefault("output.format", string(render.FormatText))

	v.SetEnvPrefix("GEOGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("app.env", "GEOGRID_APP_ENV", "APP_ENV"); err != nil {
		return Config{}, fmt.Errorf("load config: bind app env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("load config: read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("load config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	appEnv := strings.TrimSpace(v.GetString("app.env"))
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("app env %q (allowed: dev, prod): %w", appEnv, ErrInvalidConfig)
	}

	level, err := parseLogLevel(v.GetString("log.level"))
	if err != nil {
		return Config{}, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(v.GetString("log.format")))
	switch logFormat {
	case "":
		logFormat = "text"
		if appEnv == "prod" {
			logFormat = "json"
		}
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("log format %q (allowed: text, json): %w", logFormat, ErrInvalidConfig)
	}

	surface := domain.NewSurface(
		domain.NewCoordinates(v.GetFloat64("grid.bl_lat"), v.GetFloat64("grid.bl_lon")),
		domain.NewCoordinates(v.GetFloat64("grid.tr_lat"), v.GetFloat64("grid.tr_lon")),
	)
	if err := surface.BottomLeft.Validate(); err != nil {
		return Config{}, fmt.Errorf("grid bottom left: %w: %w", err, ErrInvalidConfig)
	}
	if err := surface.TopRight.Validate(); err != nil {
		return Config{}, fmt.Errorf("grid top right: %w: %w", err, ErrInvalidConfig)
	}
	if surface.Height() <= 0 || surface.Width() <= 0 {
		return Config{}, fmt.Errorf("grid surface %s has no area: %w", surface, ErrInvalidConfig)
	}

	latStep := v.GetFloat64("grid.lat_step")
	lonStep := v.GetFloat64("grid.lon_step")
	if !positive(latStep) || !positive(lonStep) {
		return Config{}, fmt.Errorf("grid steps %v/%v must be positive: %w", latStep, lonStep, ErrInvalidConfig)
	}

	format, err := render.ParseFormat(v.GetString("output.format"))
	if err != nil {
		return Config{}, fmt.Errorf("output format: %w: %w", err, ErrInvalidConfig)
	}

	return Config{
		AppEnv:       appEnv,
		LogLevel:     level,
		LogFormat:    logFormat,
		Surface:      surface,
		LatStep:      latStep,
		LonStep:      lonStep,
		OutputFormat: format,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level %q (allowed: debug, info, warn, error): %w", s, ErrInvalidConfig)
	}
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
