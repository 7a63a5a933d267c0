package pattern

import "testing"

func TestMatchClass(t *testing.T) {
	members := map[byte]string{
		'a': "AZaz",
		'd': "09",
		'l': "az",
		'u': "AZ",
		'w': "a0Z",
		'x': "09afAF",
		's': " \t\n\v\f\r",
		'p': "!/:@[`{~",
		'c': "\x00\x1f\x7f",
		'g': "!~aZ0",
		'z': "\x00",
	}
	outsiders := map[byte]string{
		'a': "09 @[`{",
		'd': "/:a",
		'l': "AZ`{",
		'u': "az@[",
		'w': " _-",
		'x': "gG/:",
		's': "\x00a\x0e",
		'p': "aZ0 \x7f",
		'c': " a~\x80",
		'g': " \x7f\x80",
		'z': "0 ",
	}
	for cl, in := range members {
		for i := 0; i < len(in); i++ {
			expectEqual(t, matchClass(in[i], cl), true, "%"+string(cl)+" has "+string(in[i]))
			expectEqual(t, matchClass(in[i], cl-32), false, "%"+string(cl-32)+" lacks "+string(in[i]))
		}
	}
	for cl, out := range outsiders {
		for i := 0; i < len(out); i++ {
			expectEqual(t, matchClass(out[i], cl), false, "%"+string(cl)+" lacks "+string(out[i]))
			expectEqual(t, matchClass(out[i], cl-32), true, "%"+string(cl-32)+" has "+string(out[i]))
		}
	}
	expectEqual(t, matchClass('.', '.'), true, "escaped dot")
	expectEqual(t, matchClass('x', '.'), false, "escaped dot is literal")
	expectEqual(t, matchClass('q', 'q'), true, "letter without a class")
	expectEqual(t, matchClass('r', 'q'), false, "letter without a class is literal")
	expectEqual(t, matchClass('%', '%'), true, "escaped percent")
}

func TestBracketClass(t *testing.T) {
	cases := []struct {
		set  string
		in   string
		out  string
		size int
	}{
		{"[abc]", "abc", "dA]", 5},
		{"[^abc]", "dA]", "abc", 6},
		{"[a-f0]", "acf0", "g1-", 6},
		{"[]x]", "]x", "a", 4},
		{"[^]x]", "a", "]x", 5},
		{"[%d_]", "09_", "a", 5},
		{"[%]]", "]", "%", 4},
		{"[a-]", "a-", "b", 4},
		{"[%A]", "1 ", "aZ", 4},
	}
	for _, c := range cases {
		end := classEnd(c.set+"rest", 0)
		expectEqual(t, end, c.size, "end of "+c.set)
		for i := 0; i < len(c.in); i++ {
			expectEqual(t, matchBracketClass(c.set, c.in[i], 0, end), true, c.set+" has "+string(c.in[i]))
		}
		for i := 0; i < len(c.out); i++ {
			expectEqual(t, matchBracketClass(c.set, c.out[i], 0, end), false, c.set+" lacks "+string(c.out[i]))
		}
	}
	for _, bad := range []string{"[", "[a", "[]", "[^]", "[a%"} {
		expectEqual(t, classEnd(bad, 0), -1, "unterminated "+bad)
	}
}
