// Package buffer implements a growable, mutable byte string with explicit
// capacity management.
//
// A Buffer keeps a zero byte after its content at all times, so the backing
// array is always a valid NUL-terminated view of Len() bytes. Capacity counts
// that terminator. Growth follows a Policy: requests are scaled by the growth
// factor and rounded up to a power of two, and optional ceilings reject
// runaway allocations before anything is copied.
//
// A Buffer has a single owner and must not be used from several goroutines
// without external locking. Slices returned by Bytes and Borrow alias the
// buffer and are only valid until the next mutating call.
package buffer

import (
	"bytes"
	"fmt"
	"unsafe"
)

// Buffer is a growable byte string. The zero value is an empty buffer with
// the default policy and no allocation.
type Buffer struct {
	data   []byte // len(data) is the capacity
	length int
	policy Policy
}

// New returns an empty buffer that allocates on first use.
func New(p Policy) *Buffer {
	return &Buffer{policy: p}
}

// NewWithCapacity returns an empty buffer with room for capacity bytes,
// terminator included. Unless force is set, capacity is a baseline that
// the policy rounds up.
func NewWithCapacity(p Policy, capacity int, force bool) (*Buffer, error) {
	b := &Buffer{policy: p}
	if capacity == 0 {
		return b, nil
	}
	if err := b.realloc("new", capacity, force); err != nil {
		return nil, err
	}
	return b, nil
}

// NewString returns a buffer holding a copy of s.
func NewString(p Policy, s string) (*Buffer, error) {
	b := New(p)
	if err := b.AppendString(s); err != nil {
		return nil, err
	}
	return b, nil
}

// Policy returns the growth policy of b.
func (b *Buffer) Policy() Policy { return b.policy }

// Len returns the number of content bytes.
func (b *Buffer) Len() int { return b.length }

// Cap returns the allocated size, terminator included.
func (b *Buffer) Cap() int { return len(b.data) }

// Free returns how many bytes can be added without reallocating.
func (b *Buffer) Free() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data) - 1 - b.length
}

func (b *Buffer) terminate() {
	if len(b.data) > 0 {
		b.data[b.length] = 0
	}
}

// realloc moves the content into an array of the capacity computed by Grow.
// Nothing is modified when it fails.
func (b *Buffer) realloc(op string, capacity int, force bool) error {
	cur := len(b.data)
	if capacity == cur {
		return nil
	}
	newCap, err := Grow(cur, capacity, force, b.policy.factor())
	if err != nil {
		return withOp(op, err)
	}
	if newCap == cur {
		return nil
	}
	if newCap == 0 {
		b.data = nil
		b.length = 0
		return nil
	}
	if newCap > cur {
		if err := b.policy.checkLimits(cur, newCap, 0); err != nil {
			return withOp(op, err)
		}
	}
	data := make([]byte, newCap)
	if b.length > newCap-1 {
		b.length = newCap - 1
	}
	copy(data, b.data[:b.length])
	b.data = data
	b.terminate()
	return nil
}

// SetCapacity changes the allocation. With force, capacity is used exactly,
// truncating content that no longer fits and releasing memory when zero.
// Without force, capacity is a lower bound and the buffer never shrinks.
func (b *Buffer) SetCapacity(capacity int, force bool) error {
	if capacity < 0 {
		return argError("cap", "must be greater or equal to zero")
	}
	return b.realloc("cap", capacity, force)
}

// EnsureSpace makes room for n more bytes.
func (b *Buffer) EnsureSpace(n int) error {
	return b.ensure("ensure", n)
}

func (b *Buffer) ensure(op string, n int) error {
	if n < 0 {
		return argError(op, "size must not be negative")
	}
	if n > maxCapacity-b.length {
		return &Error{Op: op, Value: n, Err: ErrAllocationTooLarge}
	}
	total := b.length + n
	if len(b.data) == 0 || total > len(b.data)-1 {
		return b.realloc(op, total+1, false)
	}
	return nil
}

// ShrinkToFit releases unused capacity. An empty buffer gives up its
// allocation entirely; otherwise the capacity becomes Len()+1.
func (b *Buffer) ShrinkToFit() error {
	if len(b.data) == 0 {
		return nil
	}
	if b.length == 0 {
		return b.realloc("trim_excess", 0, true)
	}
	if need := b.length + 1; need < len(b.data) {
		return b.realloc("trim_excess", need, true)
	}
	return nil
}

// Release drops the allocation. The buffer stays usable.
func (b *Buffer) Release() {
	b.data = nil
	b.length = 0
}

// Clear empties the buffer and keeps its capacity.
func (b *Buffer) Clear() {
	b.length = 0
	b.terminate()
}

// Append adds p to the end of the buffer.
func (b *Buffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := b.ensure("append", len(p)); err != nil {
		return err
	}
	b.length += copy(b.data[b.length:], p)
	b.terminate()
	return nil
}

// AppendString adds s to the end of the buffer.
func (b *Buffer) AppendString(s string) error {
	if len(s) == 0 {
		return nil
	}
	if err := b.ensure("append", len(s)); err != nil {
		return err
	}
	b.length += copy(b.data[b.length:], s)
	b.terminate()
	return nil
}

// AppendByte adds a single byte.
func (b *Buffer) AppendByte(c byte) error {
	if err := b.ensure("append", 1); err != nil {
		return err
	}
	b.data[b.length] = c
	b.length++
	b.terminate()
	return nil
}

// AppendRepeat adds count copies of p.
func (b *Buffer) AppendRepeat(p []byte, count int) error {
	if count < 0 {
		return argError("rep", "count must not be negative")
	}
	if len(p) == 0 || count == 0 {
		return nil
	}
	if len(p) > maxCapacity/count {
		return &Error{Op: "rep", Value: len(p), Err: ErrAllocationTooLarge}
	}
	src := p
	if aliases(b.data, p) {
		src = bytes.Clone(p)
	}
	if err := b.ensure("rep", len(src)*count); err != nil {
		return err
	}
	for ; count > 0; count-- {
		b.length += copy(b.data[b.length:], src)
	}
	b.terminate()
	return nil
}

// AppendFormat formats according to a fmt verb string and appends the result.
func (b *Buffer) AppendFormat(format string, args ...any) error {
	return b.AppendString(fmt.Sprintf(format, args...))
}

// AppendJoin appends parts separated by sep.
func (b *Buffer) AppendJoin(sep []byte, parts ...[]byte) error {
	if len(parts) == 0 {
		return nil
	}
	n := len(sep) * (len(parts) - 1)
	for _, p := range parts {
		n += len(p)
	}
	if err := b.ensure("append", n); err != nil {
		return err
	}
	for i, p := range parts {
		if i > 0 {
			b.length += copy(b.data[b.length:], sep)
		}
		b.length += copy(b.data[b.length:], p)
	}
	b.terminate()
	return nil
}

// Insert places p at off, moving the tail right.
func (b *Buffer) Insert(off int, p []byte) error {
	if off < 0 || off > b.length {
		return offsetError("insert", off, b.length)
	}
	if len(p) == 0 {
		return nil
	}
	if aliases(b.data, p) {
		p = bytes.Clone(p)
	}
	if err := b.ensure("insert", len(p)); err != nil {
		return err
	}
	copy(b.data[off+len(p):], b.data[off:b.length])
	copy(b.data[off:], p)
	b.length += len(p)
	b.terminate()
	return nil
}

// Replace overwrites the bytes at off with p, extending the content when
// p runs past the end.
func (b *Buffer) Replace(off int, p []byte) error {
	if off < 0 || off > b.length {
		return offsetError("replace", off, b.length)
	}
	if len(p) == 0 {
		return nil
	}
	total := max(b.length, off+len(p))
	if err := b.ensure("replace", total-b.length); err != nil {
		return err
	}
	copy(b.data[off:], p)
	b.length = total
	b.terminate()
	return nil
}

// Remove deletes n bytes starting at off. Remove(0, 0) clears the buffer.
func (b *Buffer) Remove(off, n int) error {
	if off == 0 && n == 0 {
		b.Clear()
		return nil
	}
	if err := b.checkRange("remove", off, n); err != nil {
		return err
	}
	copy(b.data[off:], b.data[off+n:b.length])
	b.length -= n
	b.terminate()
	return nil
}

// Expand appends n spaces.
func (b *Buffer) Expand(n int) error {
	if n < 0 {
		return argError("len", "size must not be negative")
	}
	if n == 0 {
		return nil
	}
	if err := b.ensure("len", n); err != nil {
		return err
	}
	for i := b.length; i < b.length+n; i++ {
		b.data[i] = ' '
	}
	b.length += n
	b.terminate()
	return nil
}

// Shrink drops up to n bytes from the end.
func (b *Buffer) Shrink(n int) {
	if n <= 0 {
		return
	}
	b.length = max(0, b.length-n)
	b.terminate()
}

// Truncate keeps the first n bytes.
func (b *Buffer) Truncate(n int) error {
	if n < 0 || n > b.length {
		return lengthError("truncate", n, b.length)
	}
	b.length = n
	b.terminate()
	return nil
}

// checkRange validates [off, off+n) against the current content.
func (b *Buffer) checkRange(op string, off, n int) error {
	if off < 0 || off > b.length {
		return offsetError(op, off, b.length)
	}
	if n < 0 {
		return argError(op, "length must not be negative")
	}
	if n > b.length-off {
		return lengthError(op, n, b.length)
	}
	return nil
}

// aliases reports whether p points into the backing array of data.
func aliases(data, p []byte) bool {
	if len(data) == 0 || len(p) == 0 {
		return false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	return ptr >= start && ptr < start+uintptr(len(data))
}
