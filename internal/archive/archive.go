// Package archive persists assessment results as JSON blobs so runs can be
// re-rendered and compared later.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/netgauge/netgauge/pkg/config"
)

// Client abstracts blob storage for assessment results.
type Client interface {
	// Put stores one run's serialized result under its subnet and run ID.
	Put(ctx context.Context, subnet, runID string, data []byte) error
	// Get retrieves a previously archived run.
	Get(ctx context.Context, subnet, runID string) ([]byte, error)
}

// New builds the archive client selected by the configuration.
func New(ctx context.Context, cfg config.ArchiveConfig) (Client, error) {
	switch cfg.Backend {
	case "", "local":
		dir := cfg.Dir
		if dir == "" {
			dir = filepath.Join(config.CacheDir(), "results")
		}
		return NewLocal(dir), nil
	case "s3":
		return NewS3(ctx, cfg)
	case "gcs":
		return NewGCS(ctx, cfg.GCSBucket)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}

// Local implements Client using the local filesystem. Useful for single-host
// deployments and testing.
type Local struct {
	BaseDir string
}

// NewLocal creates a Local archive rooted at the given directory.
func NewLocal(baseDir string) *Local {
	return &Local{BaseDir: baseDir}
}

func (s *Local) path(subnet, runID string) string {
	return filepath.Join(s.BaseDir, subnetSlug(subnet), runID+".json")
}

func (s *Local) Put(ctx context.Context, subnet, runID string, data []byte) error {
	path := s.path(subnet, runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Local) Get(ctx context.Context, subnet, runID string) ([]byte, error) {
	return os.ReadFile(s.path(subnet, runID))
}

// subnetSlug makes a CIDR safe for use as a path or object-key segment.
func subnetSlug(subnet string) string {
	return strings.ReplaceAll(subnet, "/", "_")
}
