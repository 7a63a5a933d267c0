package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Xetrill/XsLuaJIT/buffer"
)

// Replacement produces the text substituted for a match. It is one of
// Template, Func or Table.
type Replacement interface {
	add(ms *matchState, dst *buffer.Buffer, s, e int) error
}

// Template is a replacement string. %0 stands for the whole match, %1 to %9
// for the captures and %% for a single '%'. '%' followed by any other byte
// inserts that byte.
type Template string

// Func computes the replacement from the captures of a match, or from the
// whole match when the pattern has none. Returning nil or false keeps the
// original text.
type Func func(caps []Capture) (any, error)

// Table looks up the first capture, or the whole match, as a key. A
// missing key, nil or false keeps the original text. Position captures are
// looked up by their decimal form.
type Table map[string]any

func (t Template) add(ms *matchState, dst *buffer.Buffer, s, e int) error {
	repl := string(t)
	for len(repl) > 0 {
		i := strings.IndexByte(repl, '%')
		if i < 0 {
			return dst.AppendString(repl)
		}
		if err := dst.AppendString(repl[:i]); err != nil {
			return err
		}
		if i+1 >= len(repl) {
			raise(ErrPattern, "invalid use of '%%' in replacement string")
		}
		var err error
		switch c := repl[i+1]; {
		case c == '0':
			err = dst.Append(ms.src[s:e])
		case c >= '1' && c <= '9':
			err = dst.AppendString(ms.get(int(c-'1'), s, e).String())
		default:
			err = dst.AppendByte(c)
		}
		if err != nil {
			return err
		}
		repl = repl[i+2:]
	}
	return nil
}

func (f Func) add(ms *matchState, dst *buffer.Buffer, s, e int) error {
	v, err := f(ms.all(s, e, true))
	if err != nil {
		return &Error{Pattern: ms.pattern, Msg: "replacement function failed", Err: err}
	}
	return addValue(ms, dst, s, e, v)
}

func (t Table) add(ms *matchState, dst *buffer.Buffer, s, e int) error {
	v, ok := t[ms.get(0, s, e).String()]
	if !ok {
		return dst.Append(ms.src[s:e])
	}
	return addValue(ms, dst, s, e, v)
}

// addValue appends the text form of v, or the original match for nil and
// false.
func addValue(ms *matchState, dst *buffer.Buffer, s, e int, v any) error {
	if v == nil || v == false {
		return dst.Append(ms.src[s:e])
	}
	text, ok := toText(v)
	if !ok {
		raise(ErrReplacementType, "a %s", typeName(v))
	}
	return dst.AppendString(text)
}

// toText converts the values a replacement may produce into text.
func toText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case Capture:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return FormatNumber(float64(x)), true
	case float64:
		return FormatNumber(x), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

// FormatNumber renders a float the way LuaJIT's tostring does: %.14g,
// so integral values carry no fraction.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}

func typeName(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case map[string]any, []any:
		return "table"
	case func([]Capture) (any, error), Func:
		return "function"
	}
	return fmt.Sprintf("%T", v)
}

// GSub replaces the first max matches of p in s, or every match when max
// is negative, and returns the result in a new buffer along with the
// number of substitutions. An anchored pattern is tried once, at the
// start of s.
func (m *Matcher) GSub(s []byte, p string, repl Replacement, max int) (*buffer.Buffer, int, error) {
	dst := buffer.New(m.cfg.Policy)
	n, err := m.gsub(dst, s, p, repl, max)
	if err != nil {
		return nil, 0, err
	}
	return dst, n, nil
}

// GSubInto is GSub appending to dst. dst is left untouched on error.
func (m *Matcher) GSubInto(dst *buffer.Buffer, s []byte, p string, repl Replacement, max int) (int, error) {
	scratch := m.pool.Get()
	defer m.pool.Put(scratch)
	n, err := m.gsub(scratch, s, p, repl, max)
	if err != nil {
		return 0, err
	}
	if err := dst.Append(scratch.Bytes()); err != nil {
		return 0, err
	}
	return n, nil
}

// GSubString is GSub on strings.
func (m *Matcher) GSubString(s, p string, repl Replacement, max int) (string, int, error) {
	scratch := m.pool.Get()
	defer m.pool.Put(scratch)
	n, err := m.gsub(scratch, []byte(s), p, repl, max)
	if err != nil {
		return "", 0, err
	}
	return scratch.String(), n, nil
}

func (m *Matcher) gsub(dst *buffer.Buffer, src []byte, p string, repl Replacement, max int) (n int, err error) {
	if repl == nil {
		return 0, &Error{Pattern: p, Msg: "nil replacement", Err: ErrReplacementType}
	}
	if max < 0 {
		max = len(src) + 1
	}
	defer recoverError(p, &err)
	ms, anchor := m.newState(src, p)
	spos := 0
	for n < max {
		ms.reset()
		e, ok := ms.match(spos, 0)
		if ok {
			n++
			if err := repl.add(ms, dst, spos, e); err != nil {
				return 0, err
			}
		}
		if ok && e > spos {
			spos = e
		} else if spos < len(src) {
			if err := dst.AppendByte(src[spos]); err != nil {
				return 0, err
			}
			spos++
		} else {
			break
		}
		if anchor {
			break
		}
	}
	if err := dst.Append(src[spos:]); err != nil {
		return 0, err
	}
	return n, nil
}
