package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/digitlive/internal/schedule"
)

const (
	DefaultServerURL = "ws://localhost:8000/ws"
	DefaultHTTPURL   = "http://localhost:8000/api/predict"
	DefaultOrigin    = "http://localhost/"
	DefaultWidth     = 280
	DefaultHeight    = 280
	DefaultLineWidth = 20.0
	DefaultLogLevel  = "info"
	DefaultTheme     = "default"
	DefaultHistory   = 60
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Schedule ScheduleConfig `yaml:"schedule"`
	LogLevel string         `yaml:"log_level"`
	DataDir  string         `yaml:"data_dir"`
	Theme    string         `yaml:"theme"`
	History  int            `yaml:"history"`
}

type ServerConfig struct {
	URL     string `yaml:"url"`
	HTTPURL string `yaml:"http_url"`
	Origin  string `yaml:"origin"`
}

type CanvasConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	LineWidth float64 `yaml:"line_width"`
}

type ScheduleConfig struct {
	Active   time.Duration `yaml:"active"`
	Idle     time.Duration `yaml:"idle"`
	Cooldown time.Duration `yaml:"cooldown"`
}

func (s ScheduleConfig) Rates() schedule.Rates {
	return schedule.Rates{Active: s.Active, Idle: s.Idle, Cooldown: s.Cooldown}
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			HTTPURL: DefaultHTTPURL,
			Origin:  DefaultOrigin,
		},
		Canvas: CanvasConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			LineWidth: DefaultLineWidth,
		},
		Schedule: ScheduleConfig{
			Active:   schedule.DefaultActivePeriod,
			Idle:     schedule.DefaultIdlePeriod,
			Cooldown: schedule.DefaultCooldown,
		},
		LogLevel: DefaultLogLevel,
		DataDir:  DefaultDataDir(),
		Theme:    DefaultTheme,
		History:  DefaultHistory,
	}
}

// DefaultDataDir is where snapshots and the UI log go.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "digitlive")
	}
	return ".digitlive"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Server.URL == "":
		return fmt.Errorf("config: server.url is required")
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("config: canvas size %dx%d is invalid", c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.LineWidth <= 0:
		return fmt.Errorf("config: canvas.line_width must be positive")
	case c.Schedule.Active <= 0 || c.Schedule.Idle <= 0:
		return fmt.Errorf("config: schedule periods must be positive")
	case c.Schedule.Cooldown < 0:
		return fmt.Errorf("config: schedule.cooldown must not be negative")
	}
	return nil
}

// ApplyPreset replaces the schedule with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("config: unknown preset %q", name)
	}
	c.Schedule = p
	return nil
}
