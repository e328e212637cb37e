package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tdewolff/scatter"
)

// Config holds the settings shared by all commands. It can be loaded from a TOML file, command line options take precedence.
type Config struct {
	Data     string
	Layout   scatter.Layout
	Radius   float64
	Duration time.Duration
	X        scatter.XField
	Y        scatter.YField
	Addr     string
	Minify   bool
}

// DefaultConfig returns an 800x600 chart of poverty against healthcare read from data.csv.
func DefaultConfig() Config {
	return Config{
		Data:     "data.csv",
		Layout:   scatter.DefaultLayout,
		Radius:   10.0,
		Duration: scatter.DefaultDuration,
		X:        scatter.Poverty,
		Y:        scatter.Healthcare,
		Addr:     ":8080",
		Minify:   true,
	}
}

type fileConfig struct {
	Data         string         `toml:"data"`
	Width        float64        `toml:"width"`
	Height       float64        `toml:"height"`
	MarginTop    float64        `toml:"margin_top"`
	MarginRight  float64        `toml:"margin_right"`
	MarginBottom float64        `toml:"margin_bottom"`
	MarginLeft   float64        `toml:"margin_left"`
	Radius       float64        `toml:"radius"`
	Duration     string         `toml:"duration"`
	X            scatter.XField `toml:"x"`
	Y            scatter.YField `toml:"y"`
	Addr         string         `toml:"addr"`
	Minify       bool           `toml:"minify"`
}

// LoadConfig reads a TOML file on top of the default configuration. Keys that are absent keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); 0 < len(undecoded) {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("data") {
		cfg.Data = strings.TrimSpace(raw.Data)
	}
	if meta.IsDefined("width") {
		cfg.Layout.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Layout.Height = raw.Height
	}
	if meta.IsDefined("margin_top") {
		cfg.Layout.Top = raw.MarginTop
	}
	if meta.IsDefined("margin_right") {
		cfg.Layout.Right = raw.MarginRight
	}
	if meta.IsDefined("margin_bottom") {
		cfg.Layout.Bottom = raw.MarginBottom
	}
	if meta.IsDefined("margin_left") {
		cfg.Layout.Left = raw.MarginLeft
	}
	if meta.IsDefined("radius") {
		cfg.Radius = raw.Radius
	}
	if meta.IsDefined("duration") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Duration))
		if err != nil {
			return Config{}, fmt.Errorf("parse duration: %w", err)
		}
		cfg.Duration = d
	}
	if meta.IsDefined("x") {
		cfg.X = raw.X
	}
	if meta.IsDefined("y") {
		cfg.Y = raw.Y
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("minify") {
		cfg.Minify = raw.Minify
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the chart area is not empty.
func (cfg Config) Validate() error {
	if cfg.Layout.ChartWidth() <= 0.0 || cfg.Layout.ChartHeight() <= 0.0 {
		return fmt.Errorf("invalid layout: chart area of %gx%g", cfg.Layout.ChartWidth(), cfg.Layout.ChartHeight())
	} else if cfg.Radius <= 0.0 {
		return fmt.Errorf("invalid radius: %g", cfg.Radius)
	} else if cfg.Duration < 0 {
		return fmt.Errorf("invalid duration: %v", cfg.Duration)
	}
	return nil
}

// Override applies command line options that were set.
func (cfg *Config) Override(data, x, y string) error {
	if data != "" {
		cfg.Data = data
	}
	if x != "" {
		f, err := scatter.ParseXField(x)
		if err != nil {
			return err
		}
		cfg.X = f
	}
	if y != "" {
		f, err := scatter.ParseYField(y)
		if err != nil {
			return err
		}
		cfg.Y = f
	}
	return nil
}

// Style returns the default style with the configured radius.
func (cfg Config) Style() (scatter.Style, error) {
	style, err := scatter.DefaultStyle()
	if err != nil {
		return scatter.Style{}, err
	}
	style.Radius = cfg.Radius
	return style, nil
}
