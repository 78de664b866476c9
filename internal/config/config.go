package config

import (
	"fmt"
	"os"

	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/dice"
	"laserpuzzle/internal/laser"

	"gopkg.in/yaml.v3"
)

// Config is the host configuration. Puzzle sections override what the scene
// file says; fields left out keep the scene's values.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Window WindowConfig `yaml:"window"`
	Scene  SceneConfig  `yaml:"scene"`
	Laser  LaserConfig  `yaml:"laser"`
	Towers TowerConfig  `yaml:"towers"`
	Dice   DiceConfig   `yaml:"dice"`
	Audio  AudioConfig  `yaml:"audio"`
	Feed   FeedConfig   `yaml:"feed"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	// File receives the log instead of stderr when set.
	File string `yaml:"file,omitempty"`
}

type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int32  `yaml:"fps"`
}

type SceneConfig struct {
	Path string `yaml:"path"`
}

type LaserConfig struct {
	Continuous     *bool    `yaml:"continuous,omitempty"`
	Resolve        string   `yaml:"resolve,omitempty"`
	Width          *float32 `yaml:"width,omitempty"`
	Color          string   `yaml:"color,omitempty"`
	MaxDistance    *float32 `yaml:"maxDistance,omitempty"`
	MaxDeflections *int     `yaml:"maxDeflections,omitempty"`
	CycleTime      *float32 `yaml:"cycleTime,omitempty"`
	ActiveTime     *float32 `yaml:"activeTime,omitempty"`
	ShrinkDelay    *float32 `yaml:"shrinkDelay,omitempty"`
}

type TowerConfig struct {
	MoveSpeed      *float32 `yaml:"moveSpeed,omitempty"`
	MinZ           *float32 `yaml:"minZ,omitempty"`
	MaxZ           *float32 `yaml:"maxZ,omitempty"`
	HighlightColor string   `yaml:"highlightColor,omitempty"`
	HighlightWidth *float32 `yaml:"highlightWidth,omitempty"`
}

// FeedConfig turns on the websocket status feed when Addr is set.
type FeedConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

type DiceConfig struct {
	RotationSpeed *float32 `yaml:"rotationSpeed,omitempty"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sampleRate"`
	Volume     float64 `yaml:"volume"`
}

func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Laser Puzzle", FPS: 60},
		Scene:  SceneConfig{Path: "assets/scenes/laser.json"},
		Audio:  AudioConfig{Enabled: true, SampleRate: 44100, Volume: 0.5},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces missing or out-of-range values with defaults and clamps.
func (c *Config) Normalize() {
	def := Default()
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Encoding != "json" {
		c.Log.Encoding = def.Log.Encoding
	}
	if c.Window.Width < 320 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height < 240 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = def.Window.FPS
	}
	if c.Scene.Path == "" {
		c.Scene.Path = def.Scene.Path
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	c.Audio.Volume = min(max(c.Audio.Volume, 0), 1)
}

// Apply overrides the emitter settings that are set in c.
func (c LaserConfig) Apply(s *laser.EmitterSettings) {
	if c.Continuous != nil {
		s.Continuous = *c.Continuous
	}
	if c.Resolve != "" {
		s.Resolve = laser.ParseResolvePolicy(c.Resolve)
	}
	if c.Width != nil {
		s.Width = *c.Width
	}
	if col, ok := assets.ParseColor(c.Color); ok {
		s.Color = col
	}
	if c.MaxDistance != nil {
		s.MaxDistance = *c.MaxDistance
	}
	if c.MaxDeflections != nil {
		s.MaxDeflections = *c.MaxDeflections
	}
	if c.CycleTime != nil {
		s.CycleTime = *c.CycleTime
	}
	if c.ActiveTime != nil {
		s.ActiveTime = *c.ActiveTime
	}
	if c.ShrinkDelay != nil {
		s.ShrinkDelay = *c.ShrinkDelay
	}
	s.Normalize()
}

// Apply overrides the tower settings that are set in c.
func (c TowerConfig) Apply(s *laser.TowerSettings) {
	if c.MoveSpeed != nil {
		s.MoveSpeed = *c.MoveSpeed
	}
	if c.MinZ != nil {
		s.MinZ = *c.MinZ
	}
	if c.MaxZ != nil {
		s.MaxZ = *c.MaxZ
	}
	if col, ok := assets.ParseColor(c.HighlightColor); ok {
		s.HighlightColor = col
	}
	if c.HighlightWidth != nil {
		s.HighlightWidth = *c.HighlightWidth
	}
	s.Normalize()
}

func (c DiceConfig) Apply(d *dice.Die) {
	if c.RotationSpeed != nil {
		d.RotationSpeed = max(*c.RotationSpeed, 0)
	}
}
