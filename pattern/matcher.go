// Package pattern implements Lua 5.3 string patterns over byte slices.
//
// A pattern is a sequence of items: literal bytes, '.', the classes %a %c
// %d %g %l %p %s %u %w %x (upper case for the complement), bracket sets
// such as [%a_] or [^0-9], the quantifiers *, +, - and ?, captures (...)
// and (), back-references %1 to %9, balanced matches %bxy and frontiers
// %f[set]. A leading '^' anchors the match at the start position and a
// trailing '$' at the end of the subject.
//
// Matching is backtracking. Plain items are consumed in a loop; only
// captures and repetition choice points recurse, and the recursion depth
// is bounded by the Matcher configuration. Some patterns still take
// exponential time; an optional step budget aborts them.
//
// Positions follow Lua: 1-based, inclusive, negative values count from
// the end of the subject.
package pattern

import (
	"strings"

	"github.com/coregx/coregex/simd"
	"github.com/tliron/commonlog"

	"github.com/Xetrill/XsLuaJIT/buffer"
)

var log = commonlog.GetLogger("xslua.pattern")

// Config controls matching limits and the buffers gsub produces.
//
// Example:
//
//	cfg := pattern.DefaultConfig()
//	cfg.MaxSteps = 1_000_000 // abort runaway backtracking
//	m, err := pattern.NewMatcher(cfg)
type Config struct {
	// MaxDepth bounds the recursion of a single match attempt.
	// Default: 200
	MaxDepth int

	// MaxSteps bounds the work of one call. Zero means unlimited.
	// Default: 0
	MaxSteps int

	// Policy is the growth policy of buffers returned by GSub.
	Policy buffer.Policy

	// RetainCapacity is the largest scratch buffer kept for reuse.
	// Default: buffer.DefaultRetainCapacity
	RetainCapacity int
}

// DefaultConfig returns the configuration of DefaultMatcher.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       200,
		Policy:         buffer.DefaultPolicy(),
		RetainCapacity: buffer.DefaultRetainCapacity,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > 100_000 {
		return &ConfigError{Field: "MaxDepth", Message: "must be between 1 and 100,000"}
	}
	if c.MaxSteps < 0 {
		return &ConfigError{Field: "MaxSteps", Message: "must not be negative"}
	}
	if c.RetainCapacity < 0 {
		return &ConfigError{Field: "RetainCapacity", Message: "must not be negative"}
	}
	if err := c.Policy.Validate(); err != nil {
		return &ConfigError{Field: "Policy", Message: err.Error()}
	}
	return nil
}

// Matcher runs patterns under a fixed configuration. It is safe for
// concurrent use.
type Matcher struct {
	cfg  Config
	pool *buffer.Pool
}

// DefaultMatcher is used by the package-level functions.
var DefaultMatcher = mustMatcher(DefaultConfig())

func mustMatcher(cfg Config) *Matcher {
	m, err := NewMatcher(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMatcher returns a Matcher for cfg.
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("matcher: max depth %d, max steps %d", cfg.MaxDepth, cfg.MaxSteps)
	return &Matcher{
		cfg:  cfg,
		pool: buffer.NewPool(cfg.Policy, 0, cfg.RetainCapacity),
	}, nil
}

// Config returns the configuration of m.
func (m *Matcher) Config() Config { return m.cfg }

// newState strips a leading '^' and reports whether it was there.
func (m *Matcher) newState(s []byte, p string) (*matchState, bool) {
	anchor := len(p) > 0 && p[0] == '^'
	if anchor {
		p = p[1:]
	}
	return &matchState{
		src:      s,
		pattern:  p,
		maxDepth: m.cfg.MaxDepth,
		maxSteps: m.cfg.MaxSteps,
	}, anchor
}

// Match is the result of Find.
type Match struct {
	Start    int       // 1-based position of the first byte
	End      int       // 1-based position of the last byte; Start-1 when empty
	Captures []Capture // explicit captures only
}

// startPosition applies Lua's init rules. It returns 0 when the search
// cannot succeed.
func startPosition(init, length int) int {
	init = buffer.RelativePosition(init, length)
	if init < 1 {
		return 1
	}
	if init > length+1 {
		return 0
	}
	return init
}

// Find looks for the first match of p in s at or after init. With plain
// set, or when p has no magic characters, p is searched for literally.
// A nil Match means no match.
func (m *Matcher) Find(s []byte, p string, init int, plain bool) (res *Match, err error) {
	init = startPosition(init, len(s))
	if init == 0 {
		return nil, nil
	}
	if plain || !strings.ContainsAny(p, specials) {
		i := simd.Memmem(s[init-1:], []byte(p))
		if i < 0 {
			return nil, nil
		}
		start := init + i
		return &Match{Start: start, End: start + len(p) - 1}, nil
	}
	defer recoverError(p, &err)
	ms, anchor := m.newState(s, p)
	spos, e, ok := ms.scan(init-1, anchor)
	if !ok {
		return nil, nil
	}
	return &Match{Start: spos + 1, End: e, Captures: ms.all(spos, e, false)}, nil
}

// Match is like Find but returns the captures, or the whole match when p
// has none. A nil slice means no match.
func (m *Matcher) Match(s []byte, p string, init int) (caps []Capture, err error) {
	init = startPosition(init, len(s))
	if init == 0 {
		return nil, nil
	}
	defer recoverError(p, &err)
	ms, anchor := m.newState(s, p)
	spos, e, ok := ms.scan(init-1, anchor)
	if !ok {
		return nil, nil
	}
	return ms.all(spos, e, true), nil
}

// scan tries every start position from spos, or only spos when anchored.
func (ms *matchState) scan(spos int, anchor bool) (int, int, bool) {
	for {
		ms.reset()
		if e, ok := ms.match(spos, 0); ok {
			return spos, e, true
		}
		spos++
		if anchor || spos > len(ms.src) {
			return 0, 0, false
		}
	}
}

// QuoteMeta escapes every magic character in s so that the result matches
// s literally.
func QuoteMeta(s string) string {
	const magic = "^$*+?.()[]%-"
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(magic, s[i]) >= 0 {
			sb.WriteByte('%')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Find calls DefaultMatcher.Find.
func Find(s []byte, p string, init int, plain bool) (*Match, error) {
	return DefaultMatcher.Find(s, p, init, plain)
}

// MatchBytes calls DefaultMatcher.Match.
func MatchBytes(s []byte, p string, init int) ([]Capture, error) {
	return DefaultMatcher.Match(s, p, init)
}

// MatchString is MatchBytes on a string subject returning plain strings.
func MatchString(s, p string) ([]string, error) {
	caps, err := DefaultMatcher.Match([]byte(s), p, 1)
	return Strings(caps), err
}

// GMatch calls DefaultMatcher.GMatch.
func GMatch(s []byte, p string) *Iterator {
	return DefaultMatcher.GMatch(s, p)
}

// GSub calls DefaultMatcher.GSub.
func GSub(s []byte, p string, repl Replacement, max int) (*buffer.Buffer, int, error) {
	return DefaultMatcher.GSub(s, p, repl, max)
}

// GSubString calls DefaultMatcher.GSubString.
func GSubString(s, p string, repl Replacement, max int) (string, int, error) {
	return DefaultMatcher.GSubString(s, p, repl, max)
}
