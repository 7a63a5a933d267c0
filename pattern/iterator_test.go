package pattern

import (
	"errors"
	"testing"
)

func collect(t *testing.T, s, p string) [][]string {
	t.Helper()
	out, err := GMatch([]byte(s), p).All()
	if err != nil {
		t.Fatalf("gmatch(%q, %q): %s", s, p, err)
	}
	return out
}

func TestGMatch(t *testing.T) {
	expectDeepEqual(t, collect(t, "hello world", "%w+"),
		[][]string{{"hello"}, {"world"}}, "words")
	expectDeepEqual(t, collect(t, "a=1, b=2, c=3", "(%w+)=(%d+)"),
		[][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, "pairs")
	expectDeepEqual(t, collect(t, "abc123def456ghi", "%d+"),
		[][]string{{"123"}, {"456"}}, "digits")
	expectDeepEqual(t, collect(t, "abc", "x"), [][]string(nil), "no match")
}

// After an empty match the cursor steps one byte, so an empty match right
// after a non-empty one is reported too.
func TestGMatchEmptyMatches(t *testing.T) {
	expectDeepEqual(t, collect(t, "a,b,,c", "[^,]*"),
		[][]string{{"a"}, {""}, {"b"}, {""}, {""}, {"c"}, {""}}, "comma fields")
	expectDeepEqual(t, collect(t, "ab cd", "%a*"),
		[][]string{{"ab"}, {""}, {"cd"}, {""}}, "empty match after a word")
	expectDeepEqual(t, collect(t, "abc", "%w*"), [][]string{{"abc"}, {""}}, "empty match at the end")
	expectDeepEqual(t, collect(t, "abc", ""),
		[][]string{{""}, {""}, {""}, {""}}, "empty pattern")
	expectDeepEqual(t, collect(t, "", "x*"), [][]string{{""}}, "empty subject")
}

func TestGMatchAnchored(t *testing.T) {
	expectDeepEqual(t, collect(t, "aaa", "^a"), [][]string{{"a"}}, "anchored")
	expectDeepEqual(t, collect(t, "baa", "^a"), [][]string(nil), "anchored miss")
}

func TestGMatchSpanAndReset(t *testing.T) {
	it := GMatch([]byte("one two"), "%a+")
	if !it.Next() {
		t.Fatal("expected a match")
	}
	start, end := it.Span()
	expectEqual(t, start, 1, "start")
	expectEqual(t, end, 3, "end")
	if !it.Next() {
		t.Fatal("expected a second match")
	}
	start, end = it.Span()
	expectEqual(t, start, 5, "second start")
	expectEqual(t, end, 7, "second end")
	if it.Next() {
		t.Fatal("expected the end")
	}
	if it.Next() {
		t.Fatal("finished iterator restarted")
	}

	it.Reset()
	if !it.Next() {
		t.Fatal("expected a match after reset")
	}
	expectDeepEqual(t, it.Strings(), []string{"one"}, "after reset")
}

func TestGMatchError(t *testing.T) {
	it := GMatch([]byte("abc"), "[a")
	if it.Next() {
		t.Fatal("malformed pattern matched")
	}
	if !errors.Is(it.Err(), ErrPattern) {
		t.Errorf("expected pattern error, got %v", it.Err())
	}
	if it.Next() {
		t.Error("iterator resumed after error")
	}
}

func TestGMatchPositionCaptures(t *testing.T) {
	it := GMatch([]byte("a b"), "()%a")
	var got []int
	for it.Next() {
		got = append(got, it.Captures()[0].Pos)
	}
	expectDeepEqual(t, got, []int{1, 3}, "positions")
}
