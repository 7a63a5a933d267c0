package pattern

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Xetrill/XsLuaJIT/buffer"
)

func gsub(t *testing.T, s, p string, repl Replacement, max int) (string, int) {
	t.Helper()
	out, n, err := GSubString(s, p, repl, max)
	if err != nil {
		t.Fatalf("gsub(%q, %q): %s", s, p, err)
	}
	return out, n
}

func TestGSubTemplate(t *testing.T) {
	cases := []struct {
		s, p, repl string
		max        int
		want       string
		n          int
	}{
		{"hello world", "o", "0", -1, "hell0 w0rld", 2},
		{"2024-01-15", "(%d+)-(%d+)-(%d+)", "%3/%2/%1", -1, "15/01/2024", 1},
		{"hello world", "world", "Lua", -1, "hello Lua", 1},
		{"hello hello hello", "hello", "hi", -1, "hi hi hi", 3},
		{"hello hello hello", "hello", "hi", 2, "hi hi hello", 2},
		{"hello hello", "hello", "hi", 0, "hello hello", 0},
		{"hello 123 world 456", "%d+", "NUM", -1, "hello NUM world NUM", 2},
		{"hello world", "(%w+)", "[%1]", -1, "[hello] [world]", 2},
		{"hello", "%w+", "<%0>", -1, "<hello>", 1},
		{"hello", "%w+", "<%1>", -1, "<hello>", 1},
		{"hello", "hello", "100%%", -1, "100%", 1},
		{"hello", "l", "%x", -1, "hexxo", 2},
		{"abc", "", "-", -1, "-a-b-c-", 4},
		{"abc", "x*", "-", -1, "-a-b-c-", 4},
		{"abc", "%w*", "-", -1, "--", 2},
		{"abc", "%w*", "-", 1, "-", 1},
		{"hello world", "o*", "x", -1, "xhxexlxlxx xwxxrxlxdx", 12},
		{"a,b,,c", "[^,]*", "x", -1, "xx,xx,x,xx", 7},
		{"hello world", "^hello", "bye", -1, "bye world", 1},
		{"hello hello", "^hello", "bye", -1, "bye hello", 1},
		{"say hello", "^hello", "bye", -1, "say hello", 0},
		{"hello", "()l", "%1", -1, "he34o", 2},
		{"", "x", "y", -1, "", 0},
	}
	for _, c := range cases {
		got, n := gsub(t, c.s, c.p, Template(c.repl), c.max)
		expectEqual(t, got, c.want, "gsub "+c.p+" -> "+c.repl)
		expectEqual(t, n, c.n, "count of "+c.p)
	}
}

func TestGSubFunc(t *testing.T) {
	got, n := gsub(t, "hello world", "%w+", Func(func(caps []Capture) (any, error) {
		return strings.ToUpper(caps[0].Text), nil
	}), -1)
	expectEqual(t, got, "HELLO WORLD", "upper")
	expectEqual(t, n, 2, "count")

	got, _ = gsub(t, "hello world", "%w+", Func(func(caps []Capture) (any, error) {
		if caps[0].Text == "hello" {
			return "HI", nil
		}
		return nil, nil
	}), -1)
	expectEqual(t, got, "HI world", "nil keeps the match")

	got, _ = gsub(t, "a=1, b=2", "(%w+)=(%w+)", Func(func(caps []Capture) (any, error) {
		return caps[1].Text + "=" + caps[0].Text, nil
	}), -1)
	expectEqual(t, got, "1=a, 2=b", "two captures")

	got, _ = gsub(t, "x y", "%a", Func(func(caps []Capture) (any, error) {
		return false, nil
	}), -1)
	expectEqual(t, got, "x y", "false keeps the match")

	got, _ = gsub(t, "1 2 3", "%d", Func(func(caps []Capture) (any, error) {
		switch caps[0].Text {
		case "1":
			return 10, nil
		case "2":
			return 2.5, nil
		}
		return 3.0, nil
	}), -1)
	expectEqual(t, got, "10 2.5 3", "numbers")

	boom := errors.New("boom")
	_, _, err := GSubString("abc", "b", Func(func([]Capture) (any, error) { return nil, boom }), -1)
	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestGSubTable(t *testing.T) {
	tbl := Table{"hello": "HELLO", "world": "WORLD", "skip": false}
	got, n := gsub(t, "hello world skip other", "%w+", tbl, -1)
	expectEqual(t, got, "HELLO WORLD skip other", "table")
	expectEqual(t, n, 4, "count")

	got, _ = gsub(t, "$name is $age", "%$(%w+)", Table{"name": "lua", "age": 30}, -1)
	expectEqual(t, got, "lua is 30", "first capture as key")
}

func TestGSubReplacementType(t *testing.T) {
	_, _, err := GSubString("abc", "b", Func(func([]Capture) (any, error) {
		return true, nil
	}), -1)
	if !errors.Is(err, ErrReplacementType) {
		t.Fatalf("expected replacement type error, got %v", err)
	}
	var perr *Error
	if errors.As(err, &perr) {
		expectEqual(t, perr.Msg, "a boolean", "message")
	}

	_, _, err = GSubString("abc", "b", Table{"b": []int{1}}, -1)
	if !errors.Is(err, ErrReplacementType) {
		t.Errorf("expected replacement type error, got %v", err)
	}

	_, _, err = GSubString("abc", "b", nil, -1)
	if !errors.Is(err, ErrReplacementType) {
		t.Errorf("expected error for nil replacement, got %v", err)
	}

	_, _, err = GSubString("abc", "b", Template("x%"), -1)
	if !errors.Is(err, ErrPattern) {
		t.Errorf("expected pattern error for trailing %%, got %v", err)
	}

	_, _, err = GSubString("abc", "b", Template("%2"), -1)
	if !errors.Is(err, ErrPattern) {
		t.Errorf("expected invalid capture index, got %v", err)
	}
}

func TestGSubIntoLeavesDestinationOnError(t *testing.T) {
	dst, err := buffer.NewString(buffer.DefaultPolicy(), "keep")
	if err != nil {
		t.Fatal(err)
	}
	capBefore := dst.Cap()
	_, err = DefaultMatcher.GSubInto(dst, []byte("aaa"), "[abc", Template("x"), -1)
	if !errors.Is(err, ErrPattern) {
		t.Fatalf("expected pattern error, got %v", err)
	}
	expectEqual(t, dst.String(), "keep", "content")
	expectEqual(t, dst.Cap(), capBefore, "capacity")

	n, err := DefaultMatcher.GSubInto(dst, []byte(" a b"), "%a", Template("<%0>"), -1)
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, n, 2, "count")
	expectEqual(t, dst.String(), "keep <a> <b>", "appended")
}

func TestGSubBuffer(t *testing.T) {
	b, n, err := GSub([]byte("a.b.c"), "%.", Template("/"), -1)
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, b.String(), "a/b/c", "content")
	expectEqual(t, n, 2, "count")

	b, _, err = GSub([]byte("x"), "[abc", Template("y"), -1)
	if !errors.Is(err, ErrPattern) || b != nil {
		t.Errorf("expected nil buffer and pattern error, got %v, %v", b, err)
	}
}

func TestGSubRespectsPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.MaxSingleExpansion = 64
	cfg.Policy.DefaultCapacity = 64
	m, err := NewMatcher(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = m.GSub([]byte(strings.Repeat("a", 40)), "a", Template("bbb"), -1)
	if !errors.Is(err, buffer.ErrLimitExceeded) {
		t.Errorf("expected limit error, got %v", err)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{3, "3"},
		{-2, "-2"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1e15, "1e+15"},
		{1e-5, "1e-05"},
		{1234567890123456, "1.2345678901235e+15"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, c := range cases {
		expectEqual(t, FormatNumber(c.f), c.want, "format")
	}
}
