// Package config loads Stencil settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/units"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full set of settings.
type Config struct {
	LogLevel string                  `mapstructure:"log_level" yaml:"log_level"`
	Units    UnitsConfig             `mapstructure:"units" yaml:"units"`
	Engine   EngineConfig            `mapstructure:"engine" yaml:"engine"`
	Keymap   map[string]string       `mapstructure:"keymap" yaml:"keymap"`
	Tools    map[string]ToolOverride `mapstructure:"tools" yaml:"tools"`
	Store    StoreConfig             `mapstructure:"store" yaml:"store"`
	HTTP     HTTPConfig              `mapstructure:"http" yaml:"http"`
	Metrics  MetricsConfig           `mapstructure:"metrics" yaml:"metrics"`
}

// UnitsConfig selects how typed values are converted.
type UnitsConfig struct {
	System      string  `mapstructure:"system" yaml:"system"`
	ScaleLength float64 `mapstructure:"scale_length" yaml:"scale_length"`
}

// EngineConfig tunes the operator engine and the sketch host.
type EngineConfig struct {
	MoveThreshold float64 `mapstructure:"move_threshold" yaml:"move_threshold"`
	PickTolerance float64 `mapstructure:"pick_tolerance" yaml:"pick_tolerance"`
	HistoryLimit  int     `mapstructure:"history_limit" yaml:"history_limit"`
}

// ToolOverride changes the behavior flags of one tool. Nil fields keep the tool's own value.
type ToolOverride struct {
	ContinuousDraw *bool `mapstructure:"continuous_draw" yaml:"continuous_draw,omitempty"`
	WaitForInput   *bool `mapstructure:"wait_for_input" yaml:"wait_for_input,omitempty"`
	SkipUndo       *bool `mapstructure:"skip_undo" yaml:"skip_undo,omitempty"`
}

// StoreConfig selects where documents are kept.
type StoreConfig struct {
	Kind  string      `mapstructure:"kind" yaml:"kind"`
	Path  string      `mapstructure:"path" yaml:"path"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig is used when Store.Kind is "redis".
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// MetricsConfig toggles Prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Units:    UnitsConfig{System: string(units.Metric), ScaleLength: 1},
		Engine: EngineConfig{
			MoveThreshold: 0.1,
			PickTolerance: 8,
			HistoryLimit:  256,
		},
		Keymap: map[string]string{
			"point":      "P",
			"line":       "L",
			"circle":     "C",
			"distance":   "D",
			"coincident": "Shift+C",
			"horizontal": "H",
			"vertical":   "V",
		},
		Tools: map[string]ToolOverride{},
		Store: StoreConfig{
			Kind: StoreMemory,
			Path: ".stencil",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "stencil:",
			},
		},
		HTTP:    HTTPConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Namespace: "stencil"},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults. The format follows the extension: .yaml, .yml or .toml.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Decode(raw)
}

// Decode applies raw settings over the defaults and validates the result.
func Decode(raw map[string]any) (Config, error) {
	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch units.Kind(c.Units.System) {
	case units.Metric, units.Imperial, units.None:
	default:
		return fmt.Errorf("%w: units.system %q", ErrInvalid, c.Units.System)
	}
	if c.Units.ScaleLength <= 0 {
		return fmt.Errorf("%w: units.scale_length must be positive", ErrInvalid)
	}
	if c.Engine.MoveThreshold < 0 || c.Engine.PickTolerance <= 0 {
		return fmt.Errorf("%w: engine thresholds", ErrInvalid)
	}
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("%w: store.kind %q", ErrInvalid, c.Store.Kind)
	}
	return nil
}

// UnitSystem returns the configured unit system.
func (c Config) UnitSystem() units.System {
	return units.System{Kind: units.Kind(c.Units.System), ScaleLength: c.Units.ScaleLength}
}

// Apply overrides the flags of t with the matching tool override.
func (c Config) Apply(t *domain.Tool) {
	o, ok := c.Tools[t.ID]
	if !ok {
		return
	}
	if o.ContinuousDraw != nil {
		t.ContinuousDraw = *o.ContinuousDraw
	}
	if o.WaitForInput != nil {
		t.WaitForInput = *o.WaitForInput
	}
	if o.SkipUndo != nil {
		t.SkipUndo = *o.SkipUndo
	}
}
