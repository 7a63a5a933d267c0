package buffer

import "github.com/coregx/coregex/simd"

// spaceTable matches the bytes C's isspace accepts in the C locale.
var spaceTable = [256]bool{' ': true, '\t': true, '\n': true, '\v': true, '\f': true, '\r': true}

// Reverse reverses the whole content in place.
func (b *Buffer) Reverse() {
	reverse(b.data[:b.length])
}

// ReverseRange reverses n bytes starting at off.
func (b *Buffer) ReverseRange(off, n int) error {
	if err := b.checkRange("reverse", off, n); err != nil {
		return err
	}
	reverse(b.data[off : off+n])
	return nil
}

func reverse(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// ToUpper maps ASCII lowercase letters to uppercase.
func (b *Buffer) ToUpper() {
	upper(b.data[:b.length])
}

// ToLower maps ASCII uppercase letters to lowercase.
func (b *Buffer) ToLower() {
	lower(b.data[:b.length])
}

// UpperRange is ToUpper restricted to n bytes at off.
func (b *Buffer) UpperRange(off, n int) error {
	if err := b.checkRange("upper", off, n); err != nil {
		return err
	}
	upper(b.data[off : off+n])
	return nil
}

// LowerRange is ToLower restricted to n bytes at off.
func (b *Buffer) LowerRange(off, n int) error {
	if err := b.checkRange("lower", off, n); err != nil {
		return err
	}
	lower(b.data[off : off+n])
	return nil
}

func upper(p []byte) {
	for i, c := range p {
		if 'a' <= c && c <= 'z' {
			p[i] = c - ('a' - 'A')
		}
	}
}

func lower(p []byte) {
	for i, c := range p {
		if 'A' <= c && c <= 'Z' {
			p[i] = c + ('a' - 'A')
		}
	}
}

// Trim removes leading and trailing white space.
func (b *Buffer) Trim() {
	if b.length == 0 {
		return
	}
	front := leadingSpace(b.data[:b.length])
	end := trailingEnd(b.data[front:b.length]) + front
	b.length = copy(b.data, b.data[front:end])
	b.terminate()
}

// TrimLeft removes leading white space.
func (b *Buffer) TrimLeft() {
	if b.length == 0 {
		return
	}
	front := leadingSpace(b.data[:b.length])
	if front == 0 {
		return
	}
	b.length = copy(b.data, b.data[front:b.length])
	b.terminate()
}

// TrimRight removes trailing white space.
func (b *Buffer) TrimRight() {
	if b.length == 0 {
		return
	}
	b.length = trailingEnd(b.data[:b.length])
	b.terminate()
}

// leadingSpace returns the index of the first non-space byte, or len(p).
func leadingSpace(p []byte) int {
	i := simd.MemchrNotInTable(p, &spaceTable)
	if i < 0 {
		return len(p)
	}
	return i
}

// trailingEnd returns the length of p without its trailing spaces.
func trailingEnd(p []byte) int {
	n := len(p)
	for n > 0 && spaceTable[p[n-1]] {
		n--
	}
	return n
}
