// Package config holds the runtime configuration: which blob store backend
// to use, the store layout, and the serve/watch settings. Configuration is
// loaded from stationboard.yml with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Storage backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

var (
	// ErrInvalidBackend indicates an unsupported storage backend.
	ErrInvalidBackend = errors.New("invalid storage backend")

	// ErrMissingBucket indicates the s3 backend without a bucket name.
	ErrMissingBucket = errors.New("s3 backend requires a bucket")

	// ErrMissingRoot indicates the fs backend without a root directory.
	ErrMissingRoot = errors.New("fs backend requires a root directory")
)

// Config is the complete stationboard configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Build   BuildConfig   `yaml:"build" mapstructure:"build"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`

	// Catalog overrides the built-in cargo type catalog used for fuzzy
	// matching name annotations. Empty means the built-in list.
	Catalog []string `yaml:"catalog" mapstructure:"catalog"`
}

// StorageConfig selects and configures the blob store backend.
type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"` // "fs" or "s3"
	Bucket  string `yaml:"bucket" mapstructure:"bucket"`   // s3 bucket name
	Root    string `yaml:"root" mapstructure:"root"`       // fs root directory
}

// BuildConfig defines the store layout the build coordinator works against.
type BuildConfig struct {
	SavePrefix   string `yaml:"save_prefix" mapstructure:"save_prefix"`
	SavePattern  string `yaml:"save_pattern" mapstructure:"save_pattern"`
	DetailsKey   string `yaml:"details_key" mapstructure:"details_key"`
	BuildInfoKey string `yaml:"build_info_key" mapstructure:"build_info_key"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// WatchConfig configures the save directory watcher.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// triggering a build. Save games write in bursts.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Default returns a configuration with sensible defaults: a filesystem store
// under ./data and the standard key layout.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFS,
			Root:    "data",
		},
		Build: BuildConfig{
			SavePrefix:   "saves/",
			SavePattern:  "*.sav",
			DetailsKey:   "saveDetails/details",
			BuildInfoKey: "saveDetails/buildInfo",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: 30 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
	}
}

// Validate checks the configuration for contradictions.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFS:
		if cfg.Storage.Root == "" {
			return ErrMissingRoot
		}
	case BackendS3:
		if cfg.Storage.Bucket == "" {
			return ErrMissingBucket
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, cfg.Storage.Backend)
	}

	if cfg.Build.SavePattern == "" {
		return errors.New("build.save_pattern must not be empty")
	}
	if cfg.Build.DetailsKey == "" || cfg.Build.BuildInfoKey == "" {
		return errors.New("build store keys must not be empty")
	}
	if cfg.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}
