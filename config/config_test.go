package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Xetrill/XsLuaJIT/buffer"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Buffer.GrowthFactor != buffer.DefaultGrowthFactor {
		t.Errorf("growth factor: %g", c.Buffer.GrowthFactor)
	}
	if c.Buffer.DefaultCapacity != 256 {
		t.Errorf("default capacity: %d", c.Buffer.DefaultCapacity)
	}
	if c.Pattern.MaxDepth != 200 {
		t.Errorf("max depth: %d", c.Pattern.MaxDepth)
	}
	if c.Pool.RetainCapacity != 1024 {
		t.Errorf("retain capacity: %d", c.Pool.RetainCapacity)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[buffer]
growth-factor = 2.0
max-single-expansion = 10240
max-total-expansion = 40960

[pattern]
max-steps = 5000

[pool]
initial-capacity = 64

[log]
verbosity = 2
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Buffer.GrowthFactor != 2.0 {
		t.Errorf("growth factor: %g", c.Buffer.GrowthFactor)
	}
	if c.Buffer.DefaultCapacity != 256 {
		t.Errorf("default capacity not defaulted: %d", c.Buffer.DefaultCapacity)
	}
	p := c.Policy()
	if p.MaxSingleExpansion != 10240 || p.MaxTotalExpansion != 40960 {
		t.Errorf("limits: %+v", p)
	}
	mc := c.MatcherConfig()
	if mc.MaxSteps != 5000 || mc.MaxDepth != 200 {
		t.Errorf("matcher config: %+v", mc)
	}
	if c.Log.Verbosity != 2 {
		t.Errorf("verbosity: %d", c.Log.Verbosity)
	}
	if !filepath.IsAbs(c.Path) {
		t.Errorf("path not absolute: %s", c.Path)
	}
	if b := c.NewPool().Get(); b.Cap() < 64 {
		t.Errorf("pool buffer capacity %d", b.Cap())
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[buffer]\ngrowth-factor = 0.5\n")
	_, err := Load(path)
	if !errors.Is(err, buffer.ErrInvalidArgument) {
		t.Errorf("expected invalid growth factor, got %v", err)
	}

	path = writeConfig(t, dir, "[buffer\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML accepted")
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist, got %v", err)
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[pattern]\nmax-depth = 50\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatal("config not found")
	}
	if c.Pattern.MaxDepth != 50 {
		t.Errorf("max depth: %d", c.Pattern.MaxDepth)
	}
}
