package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options so equal results encode to equal
// bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("xslua: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// result is what a command produced.
type result struct {
	Command string   `cbor:"command"`
	Matches []match  `cbor:"matches,omitempty"`
	Text    string   `cbor:"text,omitempty"`
	Tokens  []string `cbor:"tokens,omitempty"`
	Count   int      `cbor:"count"`
	Hash    uint32   `cbor:"hash,omitempty"`

	hasText bool
	hasHash bool
}

// match is one match; Start and End are zero for match, which reports
// captures only.
type match struct {
	Start    int      `cbor:"start,omitempty"`
	End      int      `cbor:"end,omitempty"`
	Captures []string `cbor:"captures"`
}

func (r *result) add(start, end int, caps []string) {
	r.Matches = append(r.Matches, match{Start: start, End: end, Captures: caps})
	r.Count = len(r.Matches)
}

// noMatch reports a matching command that found nothing.
func (r *result) noMatch() bool {
	switch r.Command {
	case "find", "match", "gmatch":
		return len(r.Matches) == 0
	}
	return false
}

func write(w io.Writer, format string, r *result) error {
	if format == "cbor" {
		data, err := cborEncMode.Marshal(r)
		if err != nil {
			return fmt.Errorf("cannot encode result: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return writeText(w, r)
}

func writeText(w io.Writer, r *result) error {
	var sb strings.Builder
	switch {
	case r.hasText:
		sb.WriteString(r.Text)
	case r.hasHash:
		fmt.Fprintf(&sb, "%08x\n", r.Hash)
	case r.Tokens != nil:
		for _, t := range r.Tokens {
			sb.WriteString(joinLine([]string{t}))
			sb.WriteByte('\n')
		}
	default:
		for _, m := range r.Matches {
			var fields []string
			if m.Start > 0 {
				fields = append(fields, fmt.Sprint(m.Start), fmt.Sprint(m.End))
			}
			fields = append(fields, m.Captures...)
			sb.WriteString(joinLine(fields))
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
