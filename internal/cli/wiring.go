package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/gobwas/glob"

	"github.com/ficsit-ops/stationboard/internal/blob"
	"github.com/ficsit-ops/stationboard/internal/builder"
	"github.com/ficsit-ops/stationboard/internal/config"
	"github.com/ficsit-ops/stationboard/internal/extract"
	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/saveparse"
)

// loadConfig loads configuration from --config-dir, defaulting to the
// working directory.
func loadConfig() (*config.Config, error) {
	dir := configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	cfg, err := config.LoadConfigFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newStore builds the configured blob store backend.
func newStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFS:
		return blob.NewFSStore(cfg.Storage.Root)
	case config.BackendS3:
		return blob.OpenS3Store(ctx, cfg.Storage.Bucket)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Storage.Backend)
	}
}

// newCoordinator assembles the full extraction pipeline around a store.
func newCoordinator(cfg *config.Config, store blob.Store) (*builder.Coordinator, error) {
	pattern, err := glob.Compile(cfg.Build.SavePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid save pattern %q: %w", cfg.Build.SavePattern, err)
	}

	catalog := cfg.Catalog
	if len(catalog) == 0 {
		catalog = nameparse.DefaultCatalog()
	}
	parser := nameparse.NewParser(nameparse.NewMatcher(), catalog)

	return builder.NewCoordinator(
		store,
		saveparse.NewJSONDeserializer(),
		extract.NewOrchestrator(parser),
		builder.WithSavePattern(pattern),
		builder.WithKeys(cfg.Build.SavePrefix, cfg.Build.DetailsKey, cfg.Build.BuildInfoKey),
	), nil
}
