package buffer

import "github.com/coregx/coregex/simd"

// separatorTable builds the membership set for a separator list.
func separatorTable(seps []byte) *[256]bool {
	var t [256]bool
	for _, c := range seps {
		t[c] = true
	}
	return &t
}

// Split cuts the content at every byte that appears in seps. Each separator
// ends a token, so consecutive separators and separators at either edge
// yield empty strings:
//
//	"a,,b"  -> "a", "", "b"
//	",a,b"  -> "", "a", "b"
//	""      -> ""
func (b *Buffer) Split(seps []byte) ([]string, error) {
	if len(seps) == 0 {
		return nil, argError("split", "separator cannot be nil nor empty")
	}
	table := separatorTable(seps)
	src := b.data[:b.length]
	tokens := make([]string, 0, 8)
	for {
		i := simd.MemchrInTable(src, table)
		if i < 0 {
			return append(tokens, string(src)), nil
		}
		tokens = append(tokens, string(src[:i]))
		src = src[i+1:]
	}
}

// Fields returns the maximal runs of bytes not in seps, dropping the empty
// runs between consecutive separators. An empty buffer yields a single empty
// string; a buffer made only of separators yields none.
func (b *Buffer) Fields(seps []byte) ([]string, error) {
	if len(seps) == 0 {
		return nil, argError("fields", "separator cannot be nil nor empty")
	}
	if b.length == 0 {
		return []string{""}, nil
	}
	table := separatorTable(seps)
	src := b.data[:b.length]
	var tokens []string
	for len(src) > 0 {
		start := simd.MemchrNotInTable(src, table)
		if start < 0 {
			break
		}
		src = src[start:]
		end := simd.MemchrInTable(src, table)
		if end < 0 {
			end = len(src)
		}
		tokens = append(tokens, string(src[:end]))
		src = src[end:]
	}
	if tokens == nil {
		tokens = []string{}
	}
	return tokens, nil
}
