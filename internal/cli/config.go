package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/quizframe/pkg/cache"
	"github.com/matzehuels/quizframe/pkg/errors"
)

// Cache backends selectable via config.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config holds the TOML-configurable settings shared by all commands.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the render cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`    // file, redis, or none
	Dir       string   `toml:"dir"`        // file backend directory (default: XDG cache dir)
	RedisAddr string   `toml:"redis_addr"` // redis backend address
	TTL       duration `toml:"ttl"`        // entry lifetime, zero means no expiration
}

// ServeConfig configures the HTTP render service.
type ServeConfig struct {
	Addr string `toml:"addr"` // listen address
}

// duration wraps time.Duration for TOML decoding from strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// defaultConfig returns the settings used when no config file is given.
func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
			TTL:       duration{24 * time.Hour},
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// loadConfig reads the TOML config at path on top of the defaults.
// An empty path returns the defaults unchanged.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to load config: %s", path)
	}

	switch cfg.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}
	return cfg, nil
}

// openCache opens the configured cache backend. With noCache set, or
// when the file backend's directory cannot be resolved, caching is
// disabled rather than failing the command.
func openCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/quizframe/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
