package buffer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/coregx/ahocorasick"
)

// Replacer rewrites several literals in one pass. It is immutable and safe
// for concurrent use.
type Replacer struct {
	auto *ahocorasick.Automaton
	repl map[string]string
}

// NewReplacer builds a Replacer from old, new pairs. When an old string is
// listed twice the first pair wins.
func NewReplacer(oldnew ...string) (*Replacer, error) {
	if len(oldnew)%2 == 1 {
		return nil, argError("replacer", "odd argument count")
	}
	if len(oldnew) == 0 {
		return nil, argError("replacer", "no pairs")
	}
	r := &Replacer{repl: make(map[string]string, len(oldnew)/2)}
	builder := ahocorasick.NewBuilder()
	for i := 0; i < len(oldnew); i += 2 {
		old := oldnew[i]
		if old == "" {
			return nil, argError("replacer", fmt.Sprintf("pair %d has an empty search string", i/2+1))
		}
		if _, dup := r.repl[old]; dup {
			continue
		}
		r.repl[old] = oldnew[i+1]
		builder.AddPattern([]byte(old))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("buffer: replacer: %w", err)
	}
	r.auto = auto
	return r, nil
}

// Apply replaces every non-overlapping occurrence in b, scanning left to
// right, and returns the number of replacements. At each position the
// leftmost occurrence wins; among old strings starting at the same offset
// the earliest pair wins. b is unchanged on error.
func (r *Replacer) Apply(b *Buffer) (int, error) {
	src := b.data[:b.length]
	found := r.leftmost(src)
	if len(found) == 0 {
		return 0, nil
	}
	out := New(b.policy)
	if err := out.ensure("replace", b.length); err != nil {
		return 0, err
	}
	last := 0
	for _, m := range found {
		if err := out.Append(src[last:m.Start]); err != nil {
			return 0, err
		}
		if err := out.AppendString(r.repl[string(src[m.Start:m.End])]); err != nil {
			return 0, err
		}
		last = m.End
	}
	if err := out.Append(src[last:]); err != nil {
		return 0, err
	}
	b.data, b.length = out.data, out.length
	return len(found), nil
}

// leftmost picks the non-overlapping occurrences to replace. The automaton
// reports matches in order of their end offset, so they are reordered by
// start and pattern before the greedy pass.
func (r *Replacer) leftmost(src []byte) []ahocorasick.Match {
	all := r.auto.FindAllOverlapping(src)
	if len(all) == 0 {
		return nil
	}
	slices.SortFunc(all, func(a, b ahocorasick.Match) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.PatternID, b.PatternID)
	})
	picked := all[:0]
	last := 0
	for _, m := range all {
		if m.Start < last {
			continue
		}
		picked = append(picked, m)
		last = m.End
	}
	return picked
}

// Replace is Apply on a copy of s.
func (r *Replacer) Replace(s string) (string, int, error) {
	b, err := NewString(DefaultPolicy(), s)
	if err != nil {
		return "", 0, err
	}
	n, err := r.Apply(b)
	if err != nil {
		return "", 0, err
	}
	return b.String(), n, nil
}
