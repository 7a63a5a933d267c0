package pattern

import "strconv"

// CaptureKind tells a substring capture from a position capture.
type CaptureKind uint8

const (
	// TextCapture holds the bytes matched by a (...) group.
	TextCapture CaptureKind = iota
	// PositionCapture holds the offset recorded by a () group.
	PositionCapture
)

// Capture is one captured value. Pos is the 1-based offset where the
// capture starts; for a PositionCapture it is the whole value.
type Capture struct {
	Kind CaptureKind
	Pos  int
	Text string
}

// IsPosition reports whether c came from a () group.
func (c Capture) IsPosition() bool { return c.Kind == PositionCapture }

// String returns the captured text, or the decimal position.
func (c Capture) String() string {
	if c.Kind == PositionCapture {
		return strconv.Itoa(c.Pos)
	}
	return c.Text
}

// Strings converts captures to their string forms.
func Strings(caps []Capture) []string {
	if caps == nil {
		return nil
	}
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.String()
	}
	return out
}
