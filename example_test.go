package xslua_test

import (
	"fmt"

	xslua "github.com/Xetrill/XsLuaJIT"
	"github.com/Xetrill/XsLuaJIT/buffer"
)

func ExampleLibrary_GSub() {
	l, err := xslua.New(nil)
	if err != nil {
		panic(err)
	}
	s, n, err := l.GSub("hello world", "(%w+)", "<%1>", -1)
	if err != nil {
		panic(err)
	}
	fmt.Println(s, n)
	// Output: <hello> <world> 2
}

func ExampleLibrary_Functions() {
	l, _ := xslua.New(nil)
	fns := l.Functions()

	res, _ := fns["new"]("hello world")
	b := res[0]
	_, _ = fns["upper"](b, 1, 5)
	res, _ = fns["gsub"](b, "o", "0")
	fmt.Println(res[0].(*buffer.Buffer).String(), res[1])
	// Output: HELLO w0rld 1
}
