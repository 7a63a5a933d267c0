package buffer

// ResolveOffset converts a host position into a 0-based offset. Positive
// positions count from 1 at the start, negative ones count back from the
// end, and zero is rejected.
func ResolveOffset(length, pos int) (int, error) {
	var off int
	switch {
	case pos > 0:
		off = pos - 1
	case pos < 0:
		off = length + pos
	default:
		return 0, argError("", "offset cannot be zero")
	}
	if off < 0 || off > length {
		return 0, &Error{Value: pos, Bound: length, Err: ErrOffsetOutOfRange}
	}
	return off, nil
}

// ResolveLength converts a host length into a byte count for a range
// starting at off. Zero selects everything up to the end.
func ResolveLength(length, off, n int) (int, error) {
	switch {
	case n == 0:
		return length - off, nil
	case n < 0:
		return 0, argError("", "length cannot be less than zero")
	case n > length-off:
		return 0, &Error{Value: n, Bound: length, Err: ErrLengthOutOfRange}
	}
	return n, nil
}

// RelativePosition maps a possibly negative 1-based position onto
// [0, length+1]. Negative positions count from the end; positions before
// the start become 0.
func RelativePosition(pos, length int) int {
	if pos >= 0 {
		return pos
	} else if -pos > length {
		return 0
	}
	return length + pos + 1
}
