package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/netgauge/netgauge/pkg/config"
)

func TestLocalPutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)
	ctx := context.Background()

	data := []byte(`{"subnet":"192.168.1.0/24","overall_score":87.5}`)
	if err := s.Put(ctx, "192.168.1.0/24", "run1", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "192.168.1.0/24", "run1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	// Verify file path layout: the CIDR slash must not split the path.
	expectedPath := filepath.Join(dir, "192.168.1.0_24", "run1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalGetNotFound(t *testing.T) {
	s := NewLocal(t.TempDir())

	_, err := s.Get(context.Background(), "10.0.0.0/8", "nonexistent")
	if err == nil {
		t.Error("expected error for nonexistent run")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.ArchiveConfig{Backend: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New(local): %v", err)
	}
	if _, ok := c.(*Local); !ok {
		t.Errorf("New(local) = %T, want *Local", c)
	}

	// Empty backend defaults to local under the cache dir.
	c, err = New(ctx, config.ArchiveConfig{})
	if err != nil {
		t.Fatalf("New(default): %v", err)
	}
	if _, ok := c.(*Local); !ok {
		t.Errorf("New(default) = %T, want *Local", c)
	}

	if _, err := New(ctx, config.ArchiveConfig{Backend: "ftp"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSubnetSlug(t *testing.T) {
	if got := subnetSlug("10.0.0.0/8"); got != "10.0.0.0_8" {
		t.Errorf("subnetSlug = %q, want 10.0.0.0_8", got)
	}
}
