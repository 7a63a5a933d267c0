// Package config handles xslua.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/pattern"
)

// FileName is the name FindAndLoad looks for.
const FileName = "xslua.toml"

// Config represents an xslua.toml file.
type Config struct {
	Buffer  Buffer  `toml:"buffer"`
	Pattern Pattern `toml:"pattern"`
	Pool    Pool    `toml:"pool"`
	Log     Log     `toml:"log"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// Buffer configures the growth policy.
type Buffer struct {
	GrowthFactor       float64 `toml:"growth-factor"`
	DefaultCapacity    int     `toml:"default-capacity"`
	MaxSingleExpansion int     `toml:"max-single-expansion"`
	MaxTotalExpansion  int     `toml:"max-total-expansion"`
}

// Pattern configures matcher limits.
type Pattern struct {
	MaxDepth int `toml:"max-depth"`
	MaxSteps int `toml:"max-steps"`
}

// Pool configures scratch buffer reuse.
type Pool struct {
	InitialCapacity int `toml:"initial-capacity"`
	RetainCapacity  int `toml:"retain-capacity"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Buffer.GrowthFactor == 0 {
		c.Buffer.GrowthFactor = buffer.DefaultGrowthFactor
	}
	if c.Buffer.DefaultCapacity == 0 {
		c.Buffer.DefaultCapacity = buffer.DefaultInitialCapacity
	}
	if c.Pattern.MaxDepth == 0 {
		c.Pattern.MaxDepth = pattern.DefaultConfig().MaxDepth
	}
	if c.Pool.RetainCapacity == 0 {
		c.Pool.RetainCapacity = buffer.DefaultRetainCapacity
	}
}

// Parse decodes TOML data, fills in defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse error in %s: %w", path, err)
	}
	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find an xslua.toml file, then
// loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("config: [buffer]: %w", err)
	}
	if err := c.MatcherConfig().Validate(); err != nil {
		return fmt.Errorf("config: [pattern]: %w", err)
	}
	if c.Pool.InitialCapacity < 0 || c.Pool.RetainCapacity < 0 {
		return fmt.Errorf("config: [pool]: capacities must not be negative")
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("config: [log]: verbosity must not be negative")
	}
	return nil
}

// Policy returns the buffer growth policy.
func (c *Config) Policy() buffer.Policy {
	return buffer.Policy{
		GrowthFactor:       c.Buffer.GrowthFactor,
		DefaultCapacity:    c.Buffer.DefaultCapacity,
		MaxSingleExpansion: c.Buffer.MaxSingleExpansion,
		MaxTotalExpansion:  c.Buffer.MaxTotalExpansion,
	}
}

// MatcherConfig returns the pattern matcher configuration.
func (c *Config) MatcherConfig() pattern.Config {
	return pattern.Config{
		MaxDepth:       c.Pattern.MaxDepth,
		MaxSteps:       c.Pattern.MaxSteps,
		Policy:         c.Policy(),
		RetainCapacity: c.Pool.RetainCapacity,
	}
}

// NewPool returns a buffer pool configured by the [pool] section.
func (c *Config) NewPool() *buffer.Pool {
	return buffer.NewPool(c.Policy(), c.Pool.InitialCapacity, c.Pool.RetainCapacity)
}

// Apply configures commonlog from the [log] section. An empty file logs to
// stderr.
func (l Log) Apply() {
	var path *string
	if l.File != "" {
		path = &l.File
	}
	commonlog.Configure(l.Verbosity, path)
}
