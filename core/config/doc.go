// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type ServeConfig struct {
//		Dir  string `env:"SERVE_DIR" envDefault:"."`
//		Port int    `env:"SERVE_PORT" envDefault:"3000"`
//	}
//
//	var cfg ServeConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Different types are cached independently; loading the same type twice
// returns the value parsed on the first call.
package config
