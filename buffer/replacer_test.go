package buffer

import "testing"

func TestReplacer(t *testing.T) {
	r, err := NewReplacer("hello", "hi", "world", "earth", "hello", "ignored")
	if err != nil {
		t.Fatal(err)
	}
	b := mustString(t, "hello world, hello!")
	n, err := r.Apply(b)
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, n, 3, "count")
	expectEqual(t, b.String(), "hi earth, hi!", "content")
	checkInvariants(t, b)

	b = mustString(t, "nothing here")
	n, err = r.Apply(b)
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, n, 0, "no match count")
	expectEqual(t, b.String(), "nothing here", "unchanged")

	s, n, err := r.Replace("worldworld")
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, s, "earthearth", "adjacent matches")
	expectEqual(t, n, 2, "adjacent count")
}

func TestReplacerArguments(t *testing.T) {
	_, err := NewReplacer("a")
	expectError(t, err, ErrInvalidArgument, "odd count")
	_, err = NewReplacer()
	expectError(t, err, ErrInvalidArgument, "no pairs")
	_, err = NewReplacer("", "x")
	expectError(t, err, ErrInvalidArgument, "empty search string")
}

func TestReplacerOverlapping(t *testing.T) {
	cases := []struct {
		oldnew []string
		s      string
		want   string
		n      int
	}{
		{[]string{"abc", "2", "b", "1"}, "abc", "2", 1},
		{[]string{"b", "1", "abc", "2"}, "abc", "2", 1},
		{[]string{"b", "1", "abc", "2"}, "xbyabc", "x1y2", 2},
		{[]string{"a", "X", "ab", "Y"}, "ab", "Xb", 1},
		{[]string{"ab", "Y", "a", "X"}, "ab", "Y", 1},
		{[]string{"aa", "b"}, "aaa", "ba", 1},
		{[]string{"aa", "b"}, "aaaa", "bb", 2},
		{[]string{"bcd", "1", "abcde", "2"}, "abcdef", "2f", 1},
	}
	for _, c := range cases {
		r, err := NewReplacer(c.oldnew...)
		if err != nil {
			t.Fatal(err)
		}
		got, n, err := r.Replace(c.s)
		if err != nil {
			t.Fatal(err)
		}
		expectEqual(t, got, c.want, "replace "+c.s)
		expectEqual(t, n, c.n, "count for "+c.s)
	}
}
