// Package xslua bundles growable string buffers and Lua patterns into the
// library surface an embedding host binds: 1-based and negative positions,
// numbered argument errors and a name to function table.
package xslua

import (
	"github.com/tliron/commonlog"

	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/config"
	"github.com/Xetrill/XsLuaJIT/pattern"
)

var log = commonlog.GetLogger("xslua")

// Library holds the configuration shared by every function. It is
// immutable and safe for concurrent use; the buffers it hands out are not.
type Library struct {
	cfg      *config.Config
	policy   buffer.Policy
	matcher  *pattern.Matcher
	pool     *buffer.Pool
	features Features
}

// New builds a Library from cfg. A nil cfg selects config.Default().
func New(cfg *config.Config) (*Library, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := pattern.NewMatcher(cfg.MatcherConfig())
	if err != nil {
		return nil, err
	}
	l := &Library{
		cfg:      cfg,
		policy:   cfg.Policy(),
		matcher:  m,
		pool:     cfg.NewPool(),
		features: DetectFeatures(),
	}
	log.Infof("library ready: growth factor %g, default capacity %d, cpu %s",
		l.policy.GrowthFactor, l.policy.DefaultCapacity, l.features)
	if l.policy.MaxSingleExpansion > 0 || l.policy.MaxTotalExpansion > 0 {
		log.Debugf("expansion limits: single %d, total %d",
			l.policy.MaxSingleExpansion, l.policy.MaxTotalExpansion)
	}
	return l, nil
}

// Config returns the configuration l was built from.
func (l *Library) Config() *config.Config { return l.cfg }

// Policy returns the growth policy of new buffers.
func (l *Library) Policy() buffer.Policy { return l.policy }

// Matcher returns the pattern matcher.
func (l *Library) Matcher() *pattern.Matcher { return l.matcher }

// Pool returns the scratch buffer pool.
func (l *Library) Pool() *buffer.Pool { return l.pool }

// Features returns the CPU features detected at construction.
func (l *Library) Features() Features { return l.features }

// GrowthFactor returns the growth factor of new buffers.
func (l *Library) GrowthFactor() float64 { return l.policy.GrowthFactor }

// DefaultCapacity returns the default capacity of new buffers.
func (l *Library) DefaultCapacity() int { return l.policy.DefaultCapacity }

// withScratch runs fn with a pooled buffer and returns its content.
func (l *Library) withScratch(fn func(b *buffer.Buffer) error) (string, error) {
	b := l.pool.Get()
	defer l.pool.Put(b)
	if err := fn(b); err != nil {
		return "", err
	}
	return b.String(), nil
}
