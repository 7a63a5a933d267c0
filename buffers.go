package xslua

import (
	"github.com/Xetrill/XsLuaJIT/buffer"
)

// NewBuffer returns an empty buffer that follows the library policy. A
// positive capacity preallocates; zero defers allocation to the first write.
func (l *Library) NewBuffer(capacity int) (*buffer.Buffer, error) {
	if capacity < 0 {
		return nil, argError("new", 1, "must be greater or equal to zero")
	}
	b, err := buffer.NewWithCapacity(l.policy, capacity, false)
	if err != nil {
		return nil, wrapArg("new", 1, err)
	}
	return b, nil
}

// BufferOf returns a new buffer holding the concatenation of parts.
func (l *Library) BufferOf(parts ...string) (*buffer.Buffer, error) {
	b := buffer.New(l.policy)
	for i, s := range parts {
		if err := b.AppendString(s); err != nil {
			return nil, wrapArg("new", i+1, err)
		}
	}
	return b, nil
}

// Capacity returns the allocated size of b, terminator included.
func (l *Library) Capacity(b *buffer.Buffer) int {
	return b.Cap()
}

// SetCapacity reallocates b to size bytes and returns the new capacity.
// With force the size is used as is and may truncate the content;
// otherwise it is a baseline the growth policy rounds up. Zero with force
// releases the allocation.
func (l *Library) SetCapacity(b *buffer.Buffer, size int, force bool) (int, error) {
	if size < 0 {
		return b.Cap(), argError("cap", 2, "must be greater or equal to zero")
	}
	if err := b.SetCapacity(size, force); err != nil {
		return b.Cap(), wrapArg("cap", 2, err)
	}
	return b.Cap(), nil
}

// Length changes the length of b by delta and returns the new length. Zero
// clears, a negative delta drops bytes from the end, a positive one pads
// with spaces.
func (l *Library) Length(b *buffer.Buffer, delta int) (int, error) {
	switch {
	case delta == 0:
		b.Clear()
	case delta < 0:
		b.Shrink(-delta)
	default:
		if err := b.Expand(delta); err != nil {
			return b.Len(), wrapArg("len", 2, err)
		}
	}
	return b.Len(), nil
}

// Clear empties b, keeping its capacity, and returns it.
func (l *Library) Clear(b *buffer.Buffer) *buffer.Buffer {
	b.Clear()
	return b
}

// Clone returns an independent copy of b.
func (l *Library) Clone(b *buffer.Buffer) *buffer.Buffer {
	return b.Clone()
}

// Append adds every part to the end of b in order.
func (l *Library) Append(b *buffer.Buffer, parts ...string) (*buffer.Buffer, error) {
	for i, s := range parts {
		if err := b.AppendString(s); err != nil {
			return b, wrapArg("append", i+2, err)
		}
	}
	return b, nil
}

// Rep appends count copies of what to b. Count must be positive.
func (l *Library) Rep(b *buffer.Buffer, count int, what string) (*buffer.Buffer, error) {
	if count <= 0 {
		return b, argError("rep", 2, "must be greater than zero")
	}
	if err := b.AppendRepeat([]byte(what), count); err != nil {
		return b, wrapArg("rep", 3, err)
	}
	return b, nil
}

// RepSelf appends count copies of the current content of b, so the
// content ends up count+1 times.
func (l *Library) RepSelf(b *buffer.Buffer, count int) (*buffer.Buffer, error) {
	if count <= 0 {
		return b, argError("rep", 2, "must be greater than zero")
	}
	if err := b.AppendRepeat(b.Bytes(), count); err != nil {
		return b, wrapArg("rep", 2, err)
	}
	return b, nil
}

// Insert places s before the byte at pos. Position Len()+1 appends.
func (l *Library) Insert(b *buffer.Buffer, pos int, s string) (*buffer.Buffer, error) {
	off, err := offsetArg("insert", 2, b, pos)
	if err != nil {
		return b, err
	}
	if err := b.Insert(off, []byte(s)); err != nil {
		return b, wrapArg("insert", 3, err)
	}
	return b, nil
}

// Replace overwrites the bytes starting at pos with s, growing b when s
// runs past the end.
func (l *Library) Replace(b *buffer.Buffer, pos int, s string) (*buffer.Buffer, error) {
	off, err := offsetArg("replace", 2, b, pos)
	if err != nil {
		return b, err
	}
	if err := b.Replace(off, []byte(s)); err != nil {
		return b, wrapArg("replace", 3, err)
	}
	return b, nil
}

// Remove deletes n bytes starting at pos. A zero n removes everything from
// pos to the end.
func (l *Library) Remove(b *buffer.Buffer, pos, n int) (*buffer.Buffer, error) {
	off, n, err := rangeArgs("remove", b, pos, n)
	if err != nil {
		return b, err
	}
	if n == 0 {
		return b, nil
	}
	if err := b.Remove(off, n); err != nil {
		return b, wrapArg("remove", 3, err)
	}
	return b, nil
}

// Upper converts ASCII letters in the selected range to upper case. The
// range starts at pos and spans n bytes, or to the end when n is zero.
func (l *Library) Upper(b *buffer.Buffer, pos, n int) (*buffer.Buffer, error) {
	off, n, err := rangeArgs("upper", b, pos, n)
	if err != nil {
		return b, err
	}
	return b, wrapArg("upper", 2, b.UpperRange(off, n))
}

// Lower is Upper for lower case.
func (l *Library) Lower(b *buffer.Buffer, pos, n int) (*buffer.Buffer, error) {
	off, n, err := rangeArgs("lower", b, pos, n)
	if err != nil {
		return b, err
	}
	return b, wrapArg("lower", 2, b.LowerRange(off, n))
}

// Reverse reverses the bytes of the selected range in place.
func (l *Library) Reverse(b *buffer.Buffer, pos, n int) (*buffer.Buffer, error) {
	off, n, err := rangeArgs("reverse", b, pos, n)
	if err != nil {
		return b, err
	}
	return b, wrapArg("reverse", 2, b.ReverseRange(off, n))
}

// Trim removes leading and trailing white space.
func (l *Library) Trim(b *buffer.Buffer) *buffer.Buffer {
	b.Trim()
	return b
}

// TrimLeft removes leading white space.
func (l *Library) TrimLeft(b *buffer.Buffer) *buffer.Buffer {
	b.TrimLeft()
	return b
}

// TrimRight removes trailing white space.
func (l *Library) TrimRight(b *buffer.Buffer) *buffer.Buffer {
	b.TrimRight()
	return b
}

// TrimExcess gives back the capacity b does not use.
func (l *Library) TrimExcess(b *buffer.Buffer) (*buffer.Buffer, error) {
	return b, wrapArg("trim_excess", 1, b.ShrinkToFit())
}

// Sub returns the bytes from i through j with the usual string.sub rules:
// negative positions count from the end, out of range positions are
// clamped and an empty string is returned when i > j.
func (l *Library) Sub(b *buffer.Buffer, i, j int) string {
	n := b.Len()
	start := buffer.RelativePosition(i, n)
	end := buffer.RelativePosition(j, n)
	if start < 1 {
		start = 1
	}
	if end > n {
		end = n
	}
	if start > end {
		return ""
	}
	p, _ := b.Borrow(start-1, end-start+1)
	return string(p)
}

// At returns the single byte at pos as a string.
func (l *Library) At(b *buffer.Buffer, pos int) (string, error) {
	off, err := offsetArg("index", 2, b, pos)
	if err != nil {
		return "", err
	}
	if off >= b.Len() {
		return "", &ArgError{Func: "index", Arg: 2,
			Err: &buffer.Error{Value: pos, Bound: b.Len(), Err: buffer.ErrOffsetOutOfRange}}
	}
	return string(b.Bytes()[off]), nil
}

// Equals compares two buffers or strings by content. Any other operand
// type is an argument error.
func (l *Library) Equals(a, b any) (bool, error) {
	lhs, err := stringArg("equals", 1, a)
	if err != nil {
		return false, err
	}
	rhs, err := stringArg("equals", 2, b)
	if err != nil {
		return false, err
	}
	return len(lhs) == len(rhs) && string(lhs) == string(rhs), nil
}

// Compare orders a against b by length first and content second.
func (l *Library) Compare(a *buffer.Buffer, b any) (int, error) {
	rhs, err := stringArg("compare", 2, b)
	if err != nil {
		return 0, err
	}
	return a.Compare(rhs), nil
}

// Hash returns the content hash of b.
func (l *Library) Hash(b *buffer.Buffer) uint32 {
	return b.Hash()
}

// Split cuts b at every byte in seps, keeping empty tokens.
func (l *Library) Split(b *buffer.Buffer, seps string) ([]string, error) {
	if seps == "" {
		return nil, argError("split", 2, "separator cannot be nil nor empty")
	}
	tokens, err := b.Split([]byte(seps))
	return tokens, wrapArg("split", 2, err)
}

// Fields cuts b at every run of bytes in seps, dropping empty tokens.
func (l *Library) Fields(b *buffer.Buffer, seps string) ([]string, error) {
	if seps == "" {
		return nil, argError("fields", 2, "separator cannot be nil nor empty")
	}
	tokens, err := b.Fields([]byte(seps))
	return tokens, wrapArg("fields", 2, err)
}

// Concat joins two operands. Two buffers give a new buffer; a buffer and a
// string extend the buffer operand on the matching side and return it.
func (l *Library) Concat(a, b any) (*buffer.Buffer, error) {
	lb, lok := a.(*buffer.Buffer)
	rb, rok := b.(*buffer.Buffer)
	switch {
	case lok && rok:
		res, err := buffer.NewWithCapacity(l.policy, lb.Len()+rb.Len()+1, false)
		if err != nil {
			return nil, wrapArg("concat", 1, err)
		}
		if err := res.Append(lb.Bytes()); err != nil {
			return nil, wrapArg("concat", 1, err)
		}
		if err := res.Append(rb.Bytes()); err != nil {
			return nil, wrapArg("concat", 2, err)
		}
		return res, nil
	case lok:
		s, err := stringArg("concat", 2, b)
		if err != nil {
			return nil, err
		}
		return lb, wrapArg("concat", 2, lb.Append(s))
	case rok:
		s, err := stringArg("concat", 1, a)
		if err != nil {
			return nil, err
		}
		return rb, wrapArg("concat", 1, rb.Insert(0, s))
	}
	return nil, argError("concat", 1, "buffer expected, got %s", typeName(a))
}

// Join returns parts separated by sep, built in a pooled buffer.
func (l *Library) Join(sep string, parts ...string) (string, error) {
	return l.withScratch(func(b *buffer.Buffer) error {
		bs := make([][]byte, len(parts))
		for i, p := range parts {
			bs[i] = []byte(p)
		}
		return wrapArg("join", 1, b.AppendJoin([]byte(sep), bs...))
	})
}

// ReplaceAll substitutes every old string of the old, new pairs in b in a
// single left to right pass and returns the number of replacements.
func (l *Library) ReplaceAll(b *buffer.Buffer, oldnew ...string) (int, error) {
	r, err := buffer.NewReplacer(oldnew...)
	if err != nil {
		return 0, wrapArg("replace_all", 2, err)
	}
	n, err := r.Apply(b)
	return n, wrapArg("replace_all", 1, err)
}

// Load reads the file at path into a new buffer. Files larger than the
// configured total expansion limit are rejected.
func (l *Library) Load(path string) (*buffer.Buffer, error) {
	b := buffer.New(l.policy)
	if err := b.LoadFile(path, l.policy.MaxTotalExpansion); err != nil {
		log.Warningf("load %s: %s", path, err)
		return nil, wrapArg("load", 1, err)
	}
	log.Debugf("loaded %s (%d bytes)", path, b.Len())
	return b, nil
}

// offsetArg resolves a host position against b.
func offsetArg(fn string, arg int, b *buffer.Buffer, pos int) (int, error) {
	off, err := buffer.ResolveOffset(b.Len(), pos)
	if err != nil {
		return 0, wrapArg(fn, arg, err)
	}
	return off, nil
}

// rangeArgs resolves the (pos, n) pair shared by the range functions.
func rangeArgs(fn string, b *buffer.Buffer, pos, n int) (int, int, error) {
	off, err := offsetArg(fn, 2, b, pos)
	if err != nil {
		return 0, 0, err
	}
	n, err = buffer.ResolveLength(b.Len(), off, n)
	if err != nil {
		return 0, 0, wrapArg(fn, 3, err)
	}
	return off, n, nil
}
