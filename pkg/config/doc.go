// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read once per process, then environment variables are
// parsed into any annotated struct. Each configuration type is cached after
// its first successful parse, so every part of the application that loads
// the same type observes identical values.
//
//	type Config struct {
//	    Addr     string `env:"ADDR" envDefault:":8080"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Reset clears the cache; tests that mutate the environment call it between
// cases.
package config
