package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache stores one loaded value per configuration type.
	cache sync.Map // reflect.Type -> any

	// dotenvOnce loads .env files once per process; a missing file is fine.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// loaded only once per process; subsequent calls for the same type return
// the cached value. A .env file in the working directory is loaded before
// the first parse and silently skipped when absent.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", key, err)
	}

	// LoadOrStore keeps the first successfully parsed value if two
	// goroutines race on the same type.
	cached, _ := cache.LoadOrStore(key, *cfg)
	*cfg = cached.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where
// an unparsable environment should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
