package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = map[reflect.Type]*cacheEntry{}

	dotenvOnce sync.Once
)

// Load fills v from the environment. The .env file of the working directory,
// when present, is loaded into the process environment on first use. Each
// type is parsed once; later calls copy the cached value, and a failed parse
// keeps failing with the same error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})

	t := reflect.TypeFor[T]()
	cacheMu.Lock()
	entry, ok := cache[t]
	if !ok {
		entry = &cacheEntry{}
		cache[t] = entry
	}
	cacheMu.Unlock()

	entry.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			entry.err = errors.Join(ErrParsingConfig, err)
			return
		}
		entry.value = parsed
	})
	if entry.err != nil {
		return entry.err
	}
	*v = entry.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse fills v from the process environment overlaid with the given .env
// files, later files winning. Nothing is cached and the process environment
// is not modified.
func Parse[T any](v *T, envFiles ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	vars := environ()
	for _, f := range envFiles {
		fileVars, err := godotenv.Read(f)
		if err != nil {
			return errors.Join(ErrReadingEnvFile, err)
		}
		maps.Copy(vars, fileVars)
	}

	if err := env.ParseWithOptions(v, env.Options{Environment: vars}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, val, ok := strings.Cut(kv, "="); ok {
			vars[k] = val
		}
	}
	return vars
}
