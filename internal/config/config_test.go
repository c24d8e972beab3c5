package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.URL != DefaultServerURL {
		t.Errorf("expected url %s, got %s", DefaultServerURL, cfg.Server.URL)
	}
	if cfg.Schedule.Active != 200*time.Millisecond {
		t.Errorf("expected active period 200ms, got %v", cfg.Schedule.Active)
	}
	if cfg.Schedule.Idle != 500*time.Millisecond {
		t.Errorf("expected idle period 500ms, got %v", cfg.Schedule.Idle)
	}
	if cfg.Schedule.Cooldown != time.Second {
		t.Errorf("expected cooldown 1s, got %v", cfg.Schedule.Cooldown)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.URL = "ws://example.test/ws"
	cfg.Schedule.Active = 150 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Server.URL != "ws://example.test/ws" {
		t.Errorf("url = %s", got.Server.URL)
	}
	if got.Schedule.Active != 150*time.Millisecond {
		t.Errorf("active = %v", got.Schedule.Active)
	}
}

func TestLoadDurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "schedule:\n  active: 250ms\n  idle: 1s\n  cooldown: 750ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := ScheduleConfig{Active: 250 * time.Millisecond, Idle: time.Second, Cooldown: 750 * time.Millisecond}
	if cfg.Schedule != want {
		t.Errorf("schedule = %+v, want %+v", cfg.Schedule, want)
	}
	if cfg.Canvas.Width != DefaultWidth {
		t.Errorf("unset fields should keep defaults, width = %d", cfg.Canvas.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no url", func(c *Config) { c.Server.URL = "" }},
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"zero line", func(c *Config) { c.Canvas.LineWidth = 0 }},
		{"zero active", func(c *Config) { c.Schedule.Active = 0 }},
		{"negative cooldown", func(c *Config) { c.Schedule.Cooldown = -time.Second }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("snappy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Schedule.Active != 100*time.Millisecond {
		t.Errorf("expected active 100ms, got %v", cfg.Schedule.Active)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if err := DefaultConfig().ApplyPreset("nonexistent"); err == nil {
		t.Error("expected error for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 || presets[0] != "default" || presets[1] != "eco" || presets[2] != "snappy" {
		t.Errorf("unexpected presets %v", presets)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
