// Package builder coordinates incremental snapshot builds: it finds the
// newest save file in the blob store, decides whether the persisted snapshot
// is already current, and runs the extraction pipeline when it is not.
package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/ficsit-ops/stationboard/internal/blob"
	"github.com/ficsit-ops/stationboard/internal/extract"
	"github.com/ficsit-ops/stationboard/internal/saveparse"
)

// Default store keys. The save prefix is a directory-like namespace; the
// details and build-info keys are single objects.
const (
	DefaultSavePrefix   = "saves/"
	DefaultDetailsKey   = "saveDetails/details"
	DefaultBuildInfoKey = "saveDetails/buildInfo"
	DefaultSavePattern  = "*.sav"
)

// BuildInfo records which save file the persisted snapshot was built from.
// Older deployments stored a bare file name under the build-info key; see
// loadBuildInfo for the compatibility path.
type BuildInfo struct {
	FileName   string    `json:"fileName"`
	FileDate   time.Time `json:"fileDate"`
	ParsedDate time.Time `json:"parsedDate"`
}

// Build outcome statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Result summarizes one build run.
type Result struct {
	// RunID uniquely identifies the run, for log correlation.
	RunID string `json:"runId"`

	Status string `json:"status"`

	// Detail is a human-readable note: why the run was skipped, or what
	// failed.
	Detail string `json:"detail,omitempty"`

	// Stations is the number of stations in the snapshot, for StatusOK runs.
	Stations int `json:"stations,omitempty"`
}

// Coordinator runs snapshot builds against one blob store.
type Coordinator struct {
	store        blob.Store
	deserializer saveparse.Deserializer
	orchestrator *extract.Orchestrator

	savePrefix   string
	detailsKey   string
	buildInfoKey string
	savePattern  glob.Glob

	now func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the time source. Tests use this to pin ParsedDate.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithSavePattern overrides the glob that save file names must match.
func WithSavePattern(pattern glob.Glob) Option {
	return func(c *Coordinator) { c.savePattern = pattern }
}

// WithKeys overrides the store layout.
func WithKeys(savePrefix, detailsKey, buildInfoKey string) Option {
	return func(c *Coordinator) {
		c.savePrefix = savePrefix
		c.detailsKey = detailsKey
		c.buildInfoKey = buildInfoKey
	}
}

// NewCoordinator creates a coordinator with the default store layout.
func NewCoordinator(store blob.Store, deserializer saveparse.Deserializer, orchestrator *extract.Orchestrator, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:        store,
		deserializer: deserializer,
		orchestrator: orchestrator,
		savePrefix:   DefaultSavePrefix,
		detailsKey:   DefaultDetailsKey,
		buildInfoKey: DefaultBuildInfoKey,
		savePattern:  glob.MustCompile(DefaultSavePattern),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunBuild runs one build cycle. Unless force is set, a snapshot already
// built from the newest save file is left untouched and the run reports
// StatusSkipped. On failure the returned Result carries StatusFailed along
// with the error.
func (c *Coordinator) RunBuild(ctx context.Context, force bool) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}

	latest, err := c.latestSave(ctx)
	if err != nil {
		result.Status = StatusFailed
		result.Detail = err.Error()
		return result, err
	}
	if latest == nil {
		result.Status = StatusSkipped
		result.Detail = "no save files"
		return result, nil
	}

	fileName := path.Base(latest.Key)
	info := c.loadBuildInfo(ctx)

	// Legacy records carry no dates; a matching file name is the only
	// freshness signal they offer.
	current := info != nil && info.FileName == fileName &&
		(info.FileDate.IsZero() || !latest.LastModified.After(info.FileDate))
	if !force && current {
		// Upgrade legacy records so the freshness check has dates to work
		// with on the next run.
		if info.FileDate.IsZero() {
			if err := c.writeBuildInfo(ctx, fileName, latest.LastModified); err != nil {
				log.Printf("Warning: failed to backfill build info: %v\n", err)
			}
		}
		result.Status = StatusSkipped
		result.Detail = fmt.Sprintf("snapshot already built from %s", fileName)
		return result, nil
	}

	stations, err := c.rebuild(ctx, latest)
	if err != nil {
		result.Status = StatusFailed
		result.Detail = err.Error()
		return result, err
	}

	result.Status = StatusOK
	result.Stations = stations
	return result, nil
}

// SaveDetailsJSON returns the persisted snapshot bytes.
func (c *Coordinator) SaveDetailsJSON(ctx context.Context) ([]byte, error) {
	return c.store.Get(ctx, c.detailsKey)
}

// BuildInfoJSON returns the persisted build-info bytes.
func (c *Coordinator) BuildInfoJSON(ctx context.Context) ([]byte, error) {
	return c.store.Get(ctx, c.buildInfoKey)
}

// latestSave returns the newest matching save object, nil when none exist.
// Equal timestamps break toward the lexicographically greater key so the
// choice is stable across runs.
func (c *Coordinator) latestSave(ctx context.Context) (*blob.ObjectInfo, error) {
	objects, err := c.store.List(ctx, c.savePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list save files: %w", err)
	}

	var latest *blob.ObjectInfo
	for i := range objects {
		obj := &objects[i]
		if !c.savePattern.Match(path.Base(obj.Key)) {
			continue
		}
		if latest == nil ||
			obj.LastModified.After(latest.LastModified) ||
			(obj.LastModified.Equal(latest.LastModified) && obj.Key > latest.Key) {
			latest = obj
		}
	}
	return latest, nil
}

// loadBuildInfo reads the persisted build info. A missing object yields nil.
// A body that is not JSON is the legacy format: a bare save file name with
// no dates. Any other read failure is treated as absent: the record only
// exists to skip redundant work, so losing it costs one rebuild, never the
// run.
func (c *Coordinator) loadBuildInfo(ctx context.Context) *BuildInfo {
	data, err := c.store.Get(ctx, c.buildInfoKey)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("Warning: failed to read build info, rebuilding: %v\n", err)
		}
		return nil
	}

	var info BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		name := strings.TrimSpace(string(data))
		if name == "" {
			return nil
		}
		return &BuildInfo{FileName: name}
	}
	return &info
}

// rebuild runs the extraction pipeline on the given save and persists the
// snapshot followed by the build info. The ordering matters: a crash between
// the two writes leaves a stale build info and a fresh snapshot, which the
// next run simply rebuilds.
func (c *Coordinator) rebuild(ctx context.Context, latest *blob.ObjectInfo) (int, error) {
	data, err := c.store.Get(ctx, latest.Key)
	if err != nil {
		return 0, fmt.Errorf("failed to read save file %s: %w", latest.Key, err)
	}

	entities, err := c.deserializer.Deserialize(data)
	if err != nil {
		return 0, fmt.Errorf("failed to deserialize %s: %w", latest.Key, err)
	}

	details, err := c.orchestrator.Extract(ctx, entities)
	if err != nil {
		return 0, fmt.Errorf("failed to extract %s: %w", latest.Key, err)
	}

	snapshot, err := json.Marshal(details)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := c.store.Put(ctx, c.detailsKey, snapshot); err != nil {
		return 0, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := c.writeBuildInfo(ctx, path.Base(latest.Key), latest.LastModified); err != nil {
		return 0, err
	}
	return len(details.Stations), nil
}

func (c *Coordinator) writeBuildInfo(ctx context.Context, fileName string, fileDate time.Time) error {
	data, err := json.Marshal(BuildInfo{
		FileName:   fileName,
		FileDate:   fileDate,
		ParsedDate: c.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal build info: %w", err)
	}
	if err := c.store.Put(ctx, c.buildInfoKey, data); err != nil {
		return fmt.Errorf("failed to write build info: %w", err)
	}
	return nil
}
