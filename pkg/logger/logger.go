package logger

import (
	"log/slog"
	"os"

	"github.com/shbxxnshbxxnxbbxxb-pixel/vazifabajaradiganbot/configs"
)

// NewLogger builds the process logger: readable text at debug level for
// dev, JSON at info level for prod.
func NewLogger(cfg *configs.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.Env {
	case "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
