package buffer

import (
	"bytes"

	"github.com/coregx/coregex/simd"
	"github.com/spaolacci/murmur3"
)

// hashSeed is (5381 << 16) + 5381.
const hashSeed = 0x15051505

// Bytes returns the content without copying. The slice is only valid until
// the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.length:b.length]
}

// String returns a copy of the content.
func (b *Buffer) String() string {
	return string(b.data[:b.length])
}

// Borrow returns up to n bytes starting at off without copying. A length
// running past the end is clamped. The slice is only valid until the next
// mutating call.
func (b *Buffer) Borrow(off, n int) ([]byte, error) {
	if off < 0 || off > b.length {
		return nil, offsetError("borrow", off, b.length)
	}
	if n < 0 {
		return nil, argError("borrow", "length must not be negative")
	}
	n = min(n, b.length-off)
	return b.data[off : off+n : off+n], nil
}

// Substring returns a new buffer holding a copy of up to n bytes at off.
func (b *Buffer) Substring(off, n int) (*Buffer, error) {
	p, err := b.Borrow(off, n)
	if err != nil {
		return nil, withOp("substr", err)
	}
	sub := New(b.policy)
	if err := sub.Append(p); err != nil {
		return nil, err
	}
	return sub, nil
}

// Clone returns an independent copy of b with the same policy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{policy: b.policy}
	if b.length > 0 {
		c.data = make([]byte, b.length+1)
		c.length = copy(c.data, b.data[:b.length])
	}
	return c
}

// Hash returns the 32-bit MurmurHash3 (x86_32) of the content. It depends
// only on the bytes, never on capacity or history.
func (b *Buffer) Hash() uint32 {
	return murmur3.Sum32WithSeed(b.data[:b.length], hashSeed)
}

// Equal reports whether the content equals p.
func (b *Buffer) Equal(p []byte) bool {
	return bytes.Equal(b.data[:b.length], p)
}

// EqualString reports whether the content equals s.
func (b *Buffer) EqualString(s string) bool {
	return string(b.data[:b.length]) == s
}

// Compare orders by length first and by bytes second, returning -1, 0 or 1.
func (b *Buffer) Compare(p []byte) int {
	if b.length != len(p) {
		if b.length > len(p) {
			return 1
		}
		return -1
	}
	return bytes.Compare(b.data[:b.length], p)
}

// CompareFold is Compare with ASCII case folding.
func (b *Buffer) CompareFold(p []byte) int {
	if b.length != len(p) {
		if b.length > len(p) {
			return 1
		}
		return -1
	}
	for i, c := range b.data[:b.length] {
		x, y := foldByte(c), foldByte(p[i])
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// HasPrefix reports whether the content starts with p.
func (b *Buffer) HasPrefix(p []byte) bool {
	return bytes.HasPrefix(b.data[:b.length], p)
}

// HasSuffix reports whether the content ends with p.
func (b *Buffer) HasSuffix(p []byte) bool {
	return bytes.HasSuffix(b.data[:b.length], p)
}

// HasPrefixFold is HasPrefix with ASCII case folding.
func (b *Buffer) HasPrefixFold(p []byte) bool {
	return b.length >= len(p) && equalFold(b.data[:len(p)], p)
}

// HasSuffixFold is HasSuffix with ASCII case folding.
func (b *Buffer) HasSuffixFold(p []byte) bool {
	return b.length >= len(p) && equalFold(b.data[b.length-len(p):b.length], p)
}

// HasPrefixByte reports whether the first byte is c.
func (b *Buffer) HasPrefixByte(c byte) bool {
	return b.length > 0 && b.data[0] == c
}

// HasSuffixByte reports whether the last byte is c.
func (b *Buffer) HasSuffixByte(c byte) bool {
	return b.length > 0 && b.data[b.length-1] == c
}

// Index returns the offset of the first p at or after off, or -1.
func (b *Buffer) Index(p []byte, off int) int {
	if off < 0 || off > b.length {
		return -1
	}
	i := simd.Memmem(b.data[off:b.length], p)
	if i < 0 {
		return -1
	}
	return off + i
}

// IndexByte returns the offset of the first c at or after off, or -1.
func (b *Buffer) IndexByte(c byte, off int) int {
	if off < 0 || off > b.length {
		return -1
	}
	i := simd.Memchr(b.data[off:b.length], c)
	if i < 0 {
		return -1
	}
	return off + i
}

// LastIndexByte returns the offset of the last c, or -1.
func (b *Buffer) LastIndexByte(c byte) int {
	return bytes.LastIndexByte(b.data[:b.length], c)
}

func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func equalFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}
