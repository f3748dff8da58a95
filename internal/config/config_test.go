package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultsAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.FontSize != 15 || c.Palette != "tab10" || c.MaxLevels != 30 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.FigWidth != 0 || c.AutoFreqMinBuckets != 10 || c.AutoFreqMaxBuckets != 400 {
		t.Fatalf("unexpected figure/bucket defaults: %+v", c)
	}
	if err := c.Set("fig_height", "3.5"); err != nil {
		t.Fatalf("set fig_height: %v", err)
	}
	if err := c.Set("auto_freq_min_buckets", "5"); err != nil {
		t.Fatalf("set auto_freq_min_buckets: %v", err)
	}
	if err := c.Set("palette", "deep"); err != nil {
		t.Fatalf("set palette: %v", err)
	}
	if err := c.Set("dpi", "150"); err != nil {
		t.Fatalf("set dpi: %v", err)
	}
	if err := c.Set("nope", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Palette != "deep" || got.DPI != 150 || got.FigHeight != 3.5 || got.AutoFreqMinBuckets != 5 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("EDALOOM_PALETTE", "muted")
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Palette != "muted" {
		t.Fatalf("palette = %q, want muted", c.Palette)
	}
}
