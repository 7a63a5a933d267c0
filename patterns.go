package xslua

import (
	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/pattern"
)

// Find looks for p in s starting at init. It returns nil when there is no
// match. Subjects may be strings, byte slices or buffers.
func (l *Library) Find(s any, p string, init int, plain bool) (*pattern.Match, error) {
	src, err := stringArg("find", 1, s)
	if err != nil {
		return nil, err
	}
	return l.matcher.Find(src, p, init, plain)
}

// Match returns the captures of the first match of p in s, or the whole
// match when p has none. A nil result means no match.
func (l *Library) Match(s any, p string, init int) ([]pattern.Capture, error) {
	src, err := stringArg("match", 1, s)
	if err != nil {
		return nil, err
	}
	return l.matcher.Match(src, p, init)
}

// GMatch returns an iterator over the matches of p in s. A buffer subject
// is copied so the iterator survives later edits.
func (l *Library) GMatch(s any, p string) (*pattern.Iterator, error) {
	src, err := stringArg("gmatch", 1, s)
	if err != nil {
		return nil, err
	}
	if _, ok := s.(*buffer.Buffer); ok {
		src = append([]byte(nil), src...)
	}
	return l.matcher.GMatch(src, p), nil
}

// GSub replaces up to max matches of p in s, every match when max is
// negative. repl may be a template string, a function, a table or a
// pattern.Replacement.
func (l *Library) GSub(s any, p string, repl any, max int) (string, int, error) {
	src, err := stringArg("gsub", 1, s)
	if err != nil {
		return "", 0, err
	}
	r, err := replacementArg("gsub", 3, repl)
	if err != nil {
		return "", 0, err
	}
	var n int
	out, err := l.withScratch(func(b *buffer.Buffer) error {
		n, err = l.matcher.GSubInto(b, src, p, r, max)
		return err
	})
	if err != nil {
		return "", 0, err
	}
	return out, n, nil
}

// GSubBuffer is GSub that rewrites the content of b in place. b is left
// untouched on error.
func (l *Library) GSubBuffer(b *buffer.Buffer, p string, repl any, max int) (int, error) {
	r, err := replacementArg("gsub", 3, repl)
	if err != nil {
		return 0, err
	}
	scratch := l.pool.Get()
	defer l.pool.Put(scratch)
	n, err := l.matcher.GSubInto(scratch, b.Bytes(), p, r, max)
	if err != nil {
		return 0, err
	}
	if grow := scratch.Len() - b.Len(); grow > 0 {
		if err := b.EnsureSpace(grow); err != nil {
			return 0, wrapArg("gsub", 1, err)
		}
	}
	b.Clear()
	return n, wrapArg("gsub", 1, b.Append(scratch.Bytes()))
}
