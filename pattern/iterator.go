package pattern

// Iterator walks the successive matches of a pattern. It keeps its cursor
// between calls and must not be shared between goroutines.
//
//	it := pattern.GMatch(s, "%a+")
//	for it.Next() {
//		fmt.Println(it.Captures()[0])
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator struct {
	m       *Matcher
	src     []byte
	pattern string

	pos     int // next start offset
	matched bool
	done    bool

	start, end int
	caps       []Capture
	err        error
}

// GMatch returns an iterator over the matches of p in s. A leading '^'
// restricts the iteration to a single match at the start of s.
func (m *Matcher) GMatch(s []byte, p string) *Iterator {
	return &Iterator{m: m, src: s, pattern: p}
}

// Next advances to the following match. It returns false at the end of the
// subject or after an error. After an empty match the cursor moves one
// byte past it, so an empty match at the end of a non-empty one is still
// reported.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	ok, err := it.next()
	if err != nil {
		it.err = err
		it.caps = nil
		return false
	}
	if !ok {
		it.done = true
		it.caps = nil
	}
	return ok
}

func (it *Iterator) next() (found bool, err error) {
	defer recoverError(it.pattern, &err)
	ms, anchor := it.m.newState(it.src, it.pattern)
	if anchor && it.matched {
		return false, nil
	}
	for spos := it.pos; spos <= len(it.src); spos++ {
		ms.reset()
		if e, ok := ms.match(spos, 0); ok {
			it.caps = ms.all(spos, e, true)
			it.start, it.end = spos+1, e
			it.pos, it.matched = e, true
			if e == spos {
				it.pos++
			}
			return true, nil
		}
		if anchor {
			break
		}
	}
	return false, nil
}

// Captures returns the captures of the current match, or the whole match
// when the pattern has none.
func (it *Iterator) Captures() []Capture { return it.caps }

// Strings returns the current captures as strings.
func (it *Iterator) Strings() []string { return Strings(it.caps) }

// Span returns the 1-based inclusive bounds of the current match.
func (it *Iterator) Span() (start, end int) { return it.start, it.end }

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error { return it.err }

// Reset rewinds the iterator to the start of the subject.
func (it *Iterator) Reset() {
	it.pos, it.matched = 0, false
	it.done = false
	it.start, it.end = 0, 0
	it.caps = nil
	it.err = nil
}

// All collects the remaining matches as strings, one slice per match.
func (it *Iterator) All() ([][]string, error) {
	var out [][]string
	for it.Next() {
		out = append(out, it.Strings())
	}
	return out, it.Err()
}
