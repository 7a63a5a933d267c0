package pattern

// Byte classes named by the %-escapes.
const (
	clsAlpha uint16 = 1 << iota
	clsCntrl
	clsDigit
	clsGraph
	clsLower
	clsPunct
	clsSpace
	clsUpper
	clsAlnum
	clsXDigit
	clsZero
)

// classLetters maps a lower case escape letter to its class bit.
var classLetters = [128]uint16{
	'a': clsAlpha,
	'c': clsCntrl,
	'd': clsDigit,
	'g': clsGraph,
	'l': clsLower,
	'p': clsPunct,
	's': clsSpace,
	'u': clsUpper,
	'w': clsAlnum,
	'x': clsXDigit,
	'z': clsZero,
}

// classTable holds, for every byte, the classes it belongs to in the C
// locale.
var classTable = func() (t [256]uint16) {
	for i := range t {
		c := byte(i)
		var bits uint16
		upper, lower := c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z'
		digit := isDigit(c)
		if upper {
			bits |= clsUpper | clsAlpha | clsAlnum
		}
		if lower {
			bits |= clsLower | clsAlpha | clsAlnum
		}
		if digit {
			bits |= clsDigit | clsAlnum | clsXDigit
		}
		if (c|0x20) >= 'a' && (c|0x20) <= 'f' {
			bits |= clsXDigit
		}
		if c < 32 || c == 127 {
			bits |= clsCntrl
		}
		if c > 32 && c < 127 {
			bits |= clsGraph
			if !upper && !lower && !digit {
				bits |= clsPunct
			}
		}
		if c == ' ' || (c >= '\t' && c <= '\r') {
			bits |= clsSpace
		}
		if c == 0 {
			bits |= clsZero
		}
		t[i] = bits
	}
	return t
}()

// matchClass tests c against the escape %cl. An upper case letter names
// the complement of its lower case class; a byte naming no class stands
// for itself, so %. matches a dot.
func matchClass(c, cl byte) bool {
	letter := cl | 0x20
	if letter < 'a' || letter > 'z' || classLetters[letter] == 0 {
		return c == cl
	}
	in := classTable[c]&classLetters[letter] != 0
	return in != (cl <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// classEnd scans the set opened by the '[' at pattern[p] and returns the
// offset after its closing ']', or -1 when the set is unterminated. A ']'
// heading the set, after an optional '^', is a member.
func classEnd(pattern string, p int) int {
	p++
	if p < len(pattern) && pattern[p] == '^' {
		p++
	}
	if p < len(pattern) && pattern[p] == ']' {
		p++
	}
	for p < len(pattern) {
		switch pattern[p] {
		case ']':
			return p + 1
		case '%':
			p++
		}
		p++
	}
	return -1
}

// matchBracketClass tests c against the set pattern[p:end], brackets
// included, as delimited by classEnd.
func matchBracketClass(pattern string, c byte, p, end int) bool {
	set := pattern[p+1 : end-1]
	negate := len(set) > 0 && set[0] == '^'
	if negate {
		set = set[1:]
	}
	return setContains(set, c) != negate
}

// setContains walks the members of a bracket set body: escapes, ranges
// and single bytes.
func setContains(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		switch {
		case set[i] == '%' && i+1 < len(set):
			i++
			if matchClass(c, set[i]) {
				return true
			}
		case i+2 < len(set) && set[i+1] == '-':
			if set[i] <= c && c <= set[i+2] {
				return true
			}
			i += 2
		case set[i] == c:
			return true
		}
	}
	return false
}
