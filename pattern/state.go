package pattern

import "bytes"

// MaxCaptures is the maximum number of capture groups in a pattern.
const MaxCaptures = 32

// specials are the bytes that make a pattern more than a literal.
const specials = "^$*+?.([%-"

type captureKind uint8

const (
	captureUnfinished captureKind = iota
	capturePosition
	captureSpan
)

// capture is one capture level. end is meaningful for captureSpan only.
type capture struct {
	start, end int
	kind       captureKind
}

// matchState holds everything one match attempt needs. Subject offsets are
// 0-based and end-exclusive.
type matchState struct {
	src      []byte
	pattern  string
	level    int
	captures [MaxCaptures]capture

	depth    int
	maxDepth int
	steps    int
	maxSteps int
}

// reset prepares the state for an attempt at a new start position.
func (ms *matchState) reset() {
	ms.level = 0
	ms.depth = 0
}

// tick charges one unit against the step budget.
func (ms *matchState) tick() {
	if ms.maxSteps > 0 {
		ms.steps++
		if ms.steps > ms.maxSteps {
			raise(ErrPatternTooComplex, "step budget of %d exhausted", ms.maxSteps)
		}
	}
}

// singleMatch reports whether the subject byte at s matches the single
// item at p ending before ep.
func (ms *matchState) singleMatch(s, p, ep int) bool {
	if s >= len(ms.src) {
		return false
	}
	c := ms.src[s]
	switch ms.pattern[p] {
	case '.':
		return true
	case '%':
		return matchClass(c, ms.pattern[p+1])
	case '[':
		return matchBracketClass(ms.pattern, c, p, ep)
	default:
		return ms.pattern[p] == c
	}
}

// itemEnd returns the index just past the single item at p.
func (ms *matchState) itemEnd(p int) int {
	switch ms.pattern[p] {
	case '%':
		if p+1 >= len(ms.pattern) {
			raise(ErrPattern, "ends with '%%'")
		}
		return p + 2
	case '[':
		ep := classEnd(ms.pattern, p)
		if ep < 0 {
			raise(ErrPattern, "missing ']'")
		}
		return ep
	default:
		return p + 1
	}
}

func (ms *matchState) startCapture(s, p int, kind captureKind) (int, bool) {
	if ms.level >= MaxCaptures {
		raise(ErrTooManyCaptures, "limit is %d", MaxCaptures)
	}
	ms.captures[ms.level] = capture{start: s, kind: kind}
	ms.level++
	res, ok := ms.match(s, p)
	if !ok {
		ms.level--
	}
	return res, ok
}

func (ms *matchState) endCapture(s, p int) (int, bool) {
	l := ms.captureToClose()
	ms.captures[l].end = s
	ms.captures[l].kind = captureSpan
	res, ok := ms.match(s, p)
	if !ok {
		ms.captures[l].kind = captureUnfinished
	}
	return res, ok
}

// captureToClose finds the innermost unfinished capture.
func (ms *matchState) captureToClose() int {
	for l := ms.level - 1; l >= 0; l-- {
		if ms.captures[l].kind == captureUnfinished {
			return l
		}
	}
	raise(ErrPattern, "invalid pattern capture")
	return 0
}

func (ms *matchState) matchBalance(s, p int) (int, bool) {
	if p+1 >= len(ms.pattern) {
		raise(ErrPattern, "missing arguments to '%%b'")
	}
	if s >= len(ms.src) || ms.src[s] != ms.pattern[p] {
		return 0, false
	}
	open, close := ms.pattern[p], ms.pattern[p+1]
	count := 1
	for s++; s < len(ms.src); s++ {
		switch ms.src[s] {
		case close:
			if count--; count == 0 {
				return s + 1, true
			}
		case open:
			count++
		}
	}
	return 0, false
}

func (ms *matchState) checkCapture(c byte) int {
	l := int(c) - '1'
	if l < 0 || l >= ms.level || ms.captures[l].kind == captureUnfinished {
		raise(ErrPattern, "invalid capture index %%%d", l+1)
	}
	return l
}

// matchCapture matches a back-reference. A position capture never matches.
func (ms *matchState) matchCapture(s int, c byte) (int, bool) {
	cp := ms.captures[ms.checkCapture(c)]
	if cp.kind != captureSpan {
		return 0, false
	}
	n := cp.end - cp.start
	if len(ms.src)-s >= n && bytes.Equal(ms.src[cp.start:cp.end], ms.src[s:s+n]) {
		return s + n, true
	}
	return 0, false
}

// matchFrontier reports whether s sits on a transition from a byte outside
// the set to one inside it. The subject is treated as bounded by '\0'.
func (ms *matchState) matchFrontier(s, p, ep int) bool {
	var prev, cur byte
	if s > 0 {
		prev = ms.src[s-1]
	}
	if s < len(ms.src) {
		cur = ms.src[s]
	}
	return !matchBracketClass(ms.pattern, prev, p, ep) && matchBracketClass(ms.pattern, cur, p, ep)
}

// maxExpand counts the longest run of the item at p, then backs off one
// byte at a time until the rest of the pattern matches.
func (ms *matchState) maxExpand(s, p, ep int) (int, bool) {
	i := 0
	for ms.singleMatch(s+i, p, ep) {
		i++
	}
	for ; i >= 0; i-- {
		ms.tick()
		if res, ok := ms.match(s+i, ep+1); ok {
			return res, true
		}
	}
	return 0, false
}

// minExpand tries the rest of the pattern first and consumes one more
// repetition of the item at p after each failure.
func (ms *matchState) minExpand(s, p, ep int) (int, bool) {
	for {
		ms.tick()
		if res, ok := ms.match(s, ep+1); ok {
			return res, true
		}
		if !ms.singleMatch(s, p, ep) {
			return 0, false
		}
		s++
	}
}

// match matches pattern[p:] at subject offset s and returns the end of the
// match. Plain items advance in the loop; only captures and repetition
// choice points recurse.
func (ms *matchState) match(s, p int) (int, bool) {
	ms.depth++
	if ms.depth > ms.maxDepth {
		raise(ErrPatternTooComplex, "recursion deeper than %d", ms.maxDepth)
	}
	res, ok := ms.matchLoop(s, p)
	ms.depth--
	return res, ok
}

func (ms *matchState) matchLoop(s, p int) (int, bool) {
	for p < len(ms.pattern) {
		ms.tick()
		switch ms.pattern[p] {
		case '(':
			if p+1 < len(ms.pattern) && ms.pattern[p+1] == ')' {
				return ms.startCapture(s, p+2, capturePosition)
			}
			return ms.startCapture(s, p+1, captureUnfinished)
		case ')':
			return ms.endCapture(s, p+1)
		case '$':
			if p+1 == len(ms.pattern) {
				if s == len(ms.src) {
					return s, true
				}
				return 0, false
			}
		case '%':
			if p+1 >= len(ms.pattern) {
				raise(ErrPattern, "ends with '%%'")
			}
			switch c := ms.pattern[p+1]; {
			case c == 'b':
				var ok bool
				if s, ok = ms.matchBalance(s, p+2); !ok {
					return 0, false
				}
				p += 4
				continue
			case c == 'f':
				p += 2
				if p >= len(ms.pattern) || ms.pattern[p] != '[' {
					raise(ErrPattern, "missing '[' after '%%f'")
				}
				ep := ms.itemEnd(p)
				if !ms.matchFrontier(s, p, ep) {
					return 0, false
				}
				p = ep
				continue
			case isDigit(c):
				var ok bool
				if s, ok = ms.matchCapture(s, c); !ok {
					return 0, false
				}
				p += 2
				continue
			}
		}

		ep := ms.itemEnd(p)
		if ep < len(ms.pattern) {
			switch ms.pattern[ep] {
			case '?':
				if ms.singleMatch(s, p, ep) {
					if res, ok := ms.match(s+1, ep+1); ok {
						return res, true
					}
				}
				p = ep + 1
				continue
			case '+':
				if !ms.singleMatch(s, p, ep) {
					return 0, false
				}
				return ms.maxExpand(s+1, p, ep)
			case '*':
				return ms.maxExpand(s, p, ep)
			case '-':
				return ms.minExpand(s, p, ep)
			}
		}
		if !ms.singleMatch(s, p, ep) {
			return 0, false
		}
		s++
		p = ep
	}
	return s, true
}

// get returns capture i of the match [s, e). With no explicit captures,
// index 0 is the whole match.
func (ms *matchState) get(i, s, e int) Capture {
	if i >= ms.level {
		if i != 0 {
			raise(ErrPattern, "invalid capture index %%%d", i+1)
		}
		return Capture{Kind: TextCapture, Pos: s + 1, Text: string(ms.src[s:e])}
	}
	cp := ms.captures[i]
	switch cp.kind {
	case capturePosition:
		return Capture{Kind: PositionCapture, Pos: cp.start + 1}
	case captureSpan:
		return Capture{Kind: TextCapture, Pos: cp.start + 1, Text: string(ms.src[cp.start:cp.end])}
	}
	raise(ErrPattern, "unfinished capture")
	return Capture{}
}

// all returns the explicit captures, or the whole match when wholeIfNone is
// set and the pattern has none.
func (ms *matchState) all(s, e int, wholeIfNone bool) []Capture {
	n := ms.level
	if n == 0 {
		if !wholeIfNone {
			return nil
		}
		n = 1
	}
	caps := make([]Capture, n)
	for i := range caps {
		caps[i] = ms.get(i, s, e)
	}
	return caps
}
