// Package config loads typed application configuration from environment
// variables, optionally seeded from .env files.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv loads one or more .env files (the default `.env` when no path
//     is given).
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type.
//   - MustLoadEnv and MustLoad panic on failure, for startup code.
//   - ResetCache and ForceReloadConfig drop or refresh cached values.
//
// # Usage
//
//	type StoreConfig struct {
//	    Capacity int    `env:"CACHE_CAPACITY" envDefault:"8"`
//	    Backend  string `env:"STORAGE_BACKEND" envDefault:"local"`
//	}
//
//	import "github.com/dmitrymomot/costcache/pkg/config"
//
//	func main() {
//	    if err := config.LoadEnv("./config/.env"); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var cfg StoreConfig
//	    config.MustLoad(&cfg)
//	}
//
// Subsequent calls to `config.Load(&cfg)` are served from the cache.
//
// # Error Handling
//
//   - `ErrParsingConfig`  – failed to parse env vars into struct.
//   - `ErrLoadingEnvFile` – an explicit .env file could not be read.
//   - `ErrNilPointer`     – nil pointer passed to `Load`/`MustLoad`.
package config
