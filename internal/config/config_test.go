package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Timeline.BarWidth != 8 {
		t.Errorf("got bar_width %v, want 8", cfg.Timeline.BarWidth)
	}
	if cfg.Timeline.PointsPerRow != 150 {
		t.Errorf("got points_per_row %d, want 150", cfg.Timeline.PointsPerRow)
	}
	if cfg.Timeline.MsPerPoint != 100 {
		t.Errorf("got ms_per_point %d, want 100", cfg.Timeline.MsPerPoint)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	content := `
[timeline]
bar_width = 10
points_per_row = 100

[storage]
database_path = "/tmp/test.db"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Timeline.BarWidth != 10 {
		t.Errorf("got bar_width %v, want 10", cfg.Timeline.BarWidth)
	}
	if cfg.Timeline.PointsPerRow != 100 {
		t.Errorf("got points_per_row %d, want 100", cfg.Timeline.PointsPerRow)
	}
	// untouched section keeps its default
	if cfg.Timeline.MsPerPoint != 100 {
		t.Errorf("got ms_per_point %d, want 100", cfg.Timeline.MsPerPoint)
	}
	if cfg.Storage.DatabasePath != "/tmp/test.db" {
		t.Errorf("got database_path %q", cfg.Storage.DatabasePath)
	}
}

func TestLoadRejectsInvalidGeometry(t *testing.T) {
	content := `
[timeline]
points_per_row = 0
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-positive points_per_row")
	}
}
