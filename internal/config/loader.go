package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader searching the given directory for
// stationboard.yml.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (STATIONBOARD_*)
// 2. Config file (stationboard.yml or stationboard.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("stationboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)

	v.SetEnvPrefix("STATIONBOARD")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., STATIONBOARD_STORAGE_BACKEND)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("storage.backend")
	v.BindEnv("storage.bucket")
	v.BindEnv("storage.root")
	v.BindEnv("build.save_prefix")
	v.BindEnv("build.save_pattern")
	v.BindEnv("build.details_key")
	v.BindEnv("build.build_info_key")
	v.BindEnv("server.addr")
	v.BindEnv("server.cache_ttl")
	v.BindEnv("watch.debounce")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.bucket", defaults.Storage.Bucket)
	v.SetDefault("storage.root", defaults.Storage.Root)

	v.SetDefault("build.save_prefix", defaults.Build.SavePrefix)
	v.SetDefault("build.save_pattern", defaults.Build.SavePattern)
	v.SetDefault("build.details_key", defaults.Build.DetailsKey)
	v.SetDefault("build.build_info_key", defaults.Build.BuildInfoKey)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.cache_ttl", defaults.Server.CacheTTL)

	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	v.SetDefault("catalog", []string{})
}

// LoadConfig loads configuration using the current working directory as the
// search root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
