package config

import (
	"sort"
	"time"
)

// Presets trade request volume against responsiveness.
var Presets = map[string]ScheduleConfig{
	"default": {
		Active:   200 * time.Millisecond,
		Idle:     500 * time.Millisecond,
		Cooldown: 1000 * time.Millisecond,
	},
	"eco": {
		Active:   400 * time.Millisecond,
		Idle:     2 * time.Second,
		Cooldown: 1500 * time.Millisecond,
	},
	"snappy": {
		Active:   100 * time.Millisecond,
		Idle:     300 * time.Millisecond,
		Cooldown: 600 * time.Millisecond,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Schedule = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
