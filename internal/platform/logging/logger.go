package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"geo-grid/internal/config"
)

// New builds the process logger writing to w. Commands pass stderr so that
// stdout only carries command output.
func New(w io.Writer, cfg config.Config, appName string) *slog.Logger {
	if cfg.LogFormat == "text" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.AppEnv != "dev",
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With(
		"app", appName,
		"env", cfg.AppEnv,
	)
}
