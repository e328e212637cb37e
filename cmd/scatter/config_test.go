package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tdewolff/scatter"
	"github.com/tdewolff/test"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "scatter.toml")
	test.Error(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	test.Error(t, err)
	test.T(t, cfg, DefaultConfig())
	test.T(t, cfg.X, scatter.Poverty)
	test.T(t, cfg.Y, scatter.Healthcare)
	test.T(t, cfg.Duration, time.Second)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
data = "testdata/data.csv"
width = 960
margin_left = 100
radius = 12.5
duration = "750ms"
x = "age"
y = "smokes"
addr = "127.0.0.1:9000"
minify = false
`)
	cfg, err := LoadConfig(path)
	test.Error(t, err)
	test.String(t, cfg.Data, "testdata/data.csv")
	test.Float(t, cfg.Layout.Width, 960.0)
	test.Float(t, cfg.Layout.Height, 600.0)
	test.Float(t, cfg.Layout.Left, 100.0)
	test.Float(t, cfg.Layout.Right, 75.0)
	test.Float(t, cfg.Radius, 12.5)
	test.T(t, cfg.Duration, 750*time.Millisecond)
	test.T(t, cfg.X, scatter.Age)
	test.T(t, cfg.Y, scatter.Smokes)
	test.String(t, cfg.Addr, "127.0.0.1:9000")
	test.That(t, !cfg.Minify)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `x = "healthcare"`))
	test.That(t, err != nil)

	_, err = LoadConfig(writeConfig(t, `colour = "red"`))
	test.That(t, err != nil)

	_, err = LoadConfig(writeConfig(t, `duration = "soon"`))
	test.That(t, err != nil)

	_, err = LoadConfig(writeConfig(t, "width = 100\nmargin_left = 60\nmargin_right = 60"))
	test.That(t, err != nil)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	test.That(t, err != nil)
}

func TestConfigOverride(t *testing.T) {
	cfg := DefaultConfig()
	test.Error(t, cfg.Override("", "", ""))
	test.T(t, cfg, DefaultConfig())

	test.Error(t, cfg.Override("other.csv", "age", "smokes"))
	test.String(t, cfg.Data, "other.csv")
	test.T(t, cfg.X, scatter.Age)
	test.T(t, cfg.Y, scatter.Smokes)

	err := cfg.Override("", "", "poverty")
	test.That(t, errors.Is(err, scatter.ErrUnknownField))
}

func TestConfigStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 7.0
	style, err := cfg.Style()
	test.Error(t, err)
	test.Float(t, style.Radius, 7.0)
	test.That(t, style.Font != nil)
}
