package xslua

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/pattern"
)

// typeName names the host type of v for argument errors.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string, []byte:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case bool:
		return "boolean"
	case *buffer.Buffer:
		return "buffer"
	case pattern.Func, func([]pattern.Capture) (any, error), func(...string) string:
		return "function"
	case pattern.Table, map[string]any, map[string]string:
		return "table"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return "function"
	case reflect.Map, reflect.Slice:
		return "table"
	}
	return fmt.Sprintf("%T", v)
}

// stringArg accepts strings, byte slices, buffers and numbers, the values
// a host converts to strings implicitly. Buffers are borrowed, not copied.
func stringArg(fn string, arg int, v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case *buffer.Buffer:
		return v.Bytes(), nil
	case int:
		return strconv.AppendInt(nil, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	case float64:
		return []byte(pattern.FormatNumber(v)), nil
	}
	return nil, argError(fn, arg, "string expected, got %s", typeName(v))
}

// intArg accepts integers, integral floats and numeric strings.
func intArg(fn string, arg int, v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v), nil
		}
		return 0, argError(fn, arg, "number has no integer representation")
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
	}
	return 0, argError(fn, arg, "number expected, got %s", typeName(v))
}

// optInt is intArg with a default for a missing or nil argument.
func optInt(fn string, args []any, i, def int) (int, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	return intArg(fn, i+1, args[i])
}

// optBool returns the truthiness of an optional argument.
func optBool(args []any, i int, def bool) bool {
	if i >= len(args) || args[i] == nil {
		return def
	}
	if b, ok := args[i].(bool); ok {
		return b
	}
	return true
}

// isNumber reports whether the argument at i is present and numeric.
func isNumber(args []any, i int) bool {
	return i < len(args) && typeName(args[i]) == "number"
}

// bufferArg requires a buffer at position i.
func bufferArg(fn string, args []any, i int) (*buffer.Buffer, error) {
	if i < len(args) {
		if b, ok := args[i].(*buffer.Buffer); ok {
			return b, nil
		}
		return nil, argError(fn, i+1, "buffer expected, got %s", typeName(args[i]))
	}
	return nil, argError(fn, i+1, "buffer expected, got no value")
}

// strArg requires a string convertible argument at position i.
func strArg(fn string, args []any, i int) (string, error) {
	if i >= len(args) {
		return "", argError(fn, i+1, "string expected, got no value")
	}
	p, err := stringArg(fn, i+1, args[i])
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// replacementArg converts a host value into a gsub replacement.
func replacementArg(fn string, arg int, v any) (pattern.Replacement, error) {
	switch v := v.(type) {
	case pattern.Replacement:
		return v, nil
	case string:
		return pattern.Template(v), nil
	case []byte:
		return pattern.Template(v), nil
	case *buffer.Buffer:
		return pattern.Template(v.String()), nil
	case int, int64, float64:
		p, _ := stringArg(fn, arg, v)
		return pattern.Template(p), nil
	case func([]pattern.Capture) (any, error):
		return pattern.Func(v), nil
	case func(...string) string:
		return pattern.Func(func(caps []pattern.Capture) (any, error) {
			return v(pattern.Strings(caps)...), nil
		}), nil
	case map[string]any:
		return pattern.Table(v), nil
	case map[string]string:
		t := make(pattern.Table, len(v))
		for k, s := range v {
			t[k] = s
		}
		return t, nil
	}
	return nil, argError(fn, arg, "string/function/table expected, got %s", typeName(v))
}
