package logger

import "log/slog"

// Config carries the environment-driven logger settings.
type Config struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	Format  Format `env:"LOG_FORMAT" envDefault:"json"` // json or text
	Service string `env:"LOG_SERVICE" envDefault:""`    // optional service name stamped on every record
}

// NewFromConfig creates a logger from Config, with opts applied on top.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	configOpts := make([]Option, 0, 3)
	configOpts = append(configOpts, WithLevel(parseLevel(cfg.Level)))
	if cfg.Format != "" {
		configOpts = append(configOpts, WithFormat(cfg.Format))
	}
	if cfg.Service != "" {
		configOpts = append(configOpts, WithService(cfg.Service))
	}
	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
