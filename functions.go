package xslua

import (
	"sort"

	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/pattern"
)

// Func is a library function in host calling convention: positional
// arguments in, results out. Missing optional arguments may be omitted or
// passed as nil.
type Func func(args ...any) ([]any, error)

// captureValues converts captures to host values: strings for text
// captures and integers for position captures.
func captureValues(caps []pattern.Capture) []any {
	out := make([]any, len(caps))
	for i, c := range caps {
		if c.IsPosition() {
			out[i] = c.Pos
		} else {
			out[i] = c.Text
		}
	}
	return out
}

// Names returns the sorted names of Functions.
func (l *Library) Names() []string {
	fns := l.Functions()
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns the table a host binds under the library name.
// Functions that modify a buffer return it so calls can be chained.
func (l *Library) Functions() map[string]Func {
	return map[string]Func{
		"new": func(args ...any) ([]any, error) {
			if len(args) > 0 {
				if s, ok := args[0].(string); ok {
					b, err := l.BufferOf(s)
					return []any{b}, err
				}
			}
			capacity, err := optInt("new", args, 0, 0)
			if err != nil {
				return nil, err
			}
			b, err := l.NewBuffer(capacity)
			if err != nil {
				return nil, err
			}
			return []any{b}, nil
		},
		"isbuffer": func(args ...any) ([]any, error) {
			if len(args) == 0 {
				return []any{false}, nil
			}
			_, ok := args[0].(*buffer.Buffer)
			return []any{ok}, nil
		},
		"cap": func(args ...any) ([]any, error) {
			b, err := bufferArg("cap", args, 0)
			if err != nil {
				return nil, err
			}
			if !isNumber(args, 1) {
				return []any{l.Capacity(b)}, nil
			}
			size, err := intArg("cap", 2, args[1])
			if err != nil {
				return nil, err
			}
			n, err := l.SetCapacity(b, size, optBool(args, 2, true))
			if err != nil {
				return nil, err
			}
			return []any{n}, nil
		},
		"len": func(args ...any) ([]any, error) {
			b, err := bufferArg("len", args, 0)
			if err != nil {
				return nil, err
			}
			if !isNumber(args, 1) {
				return []any{b.Len()}, nil
			}
			delta, err := intArg("len", 2, args[1])
			if err != nil {
				return nil, err
			}
			n, err := l.Length(b, delta)
			if err != nil {
				return nil, err
			}
			return []any{n}, nil
		},
		"clear": unary("clear", l.Clear),
		"clone": unary("clone", l.Clone),
		"trim":  unary("trim", l.Trim),
		"ltrim": unary("ltrim", l.TrimLeft),
		"rtrim": unary("rtrim", l.TrimRight),
		"trim_excess": func(args ...any) ([]any, error) {
			b, err := bufferArg("trim_excess", args, 0)
			if err != nil {
				return nil, err
			}
			return chain(l.TrimExcess(b))
		},
		"tostring": func(args ...any) ([]any, error) {
			b, err := bufferArg("tostring", args, 0)
			if err != nil {
				return nil, err
			}
			return []any{b.String()}, nil
		},
		"append": func(args ...any) ([]any, error) {
			b, err := bufferArg("append", args, 0)
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, argError("append", 2, "string expected, got no value")
			}
			parts := make([]string, len(args)-1)
			for i := range parts {
				if parts[i], err = strArg("append", args, i+1); err != nil {
					return nil, err
				}
			}
			return chain(l.Append(b, parts...))
		},
		"rep": func(args ...any) ([]any, error) {
			b, err := bufferArg("rep", args, 0)
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, argError("rep", 2, "number expected, got no value")
			}
			count, err := intArg("rep", 2, args[1])
			if err != nil {
				return nil, err
			}
			if len(args) < 3 {
				return chain(l.RepSelf(b, count))
			}
			what, err := strArg("rep", args, 2)
			if err != nil {
				return nil, err
			}
			return chain(l.Rep(b, count, what))
		},
		"insert": func(args ...any) ([]any, error) {
			b, err := bufferArg("insert", args, 0)
			if err != nil {
				return nil, err
			}
			pos, narg := 1, 1
			if isNumber(args, 1) {
				if pos, err = intArg("insert", 2, args[1]); err != nil {
					return nil, err
				}
				narg++
			}
			s, err := strArg("insert", args, narg)
			if err != nil {
				return nil, err
			}
			return chain(l.Insert(b, pos, s))
		},
		"replace": func(args ...any) ([]any, error) {
			b, err := bufferArg("replace", args, 0)
			if err != nil {
				return nil, err
			}
			pos, narg := 1, 1
			if isNumber(args, 1) {
				if pos, err = intArg("replace", 2, args[1]); err != nil {
					return nil, err
				}
				narg++
			}
			s, err := strArg("replace", args, narg)
			if err != nil {
				return nil, err
			}
			return chain(l.Replace(b, pos, s))
		},
		"remove":  ranged("remove", l.Remove),
		"upper":   ranged("upper", l.Upper),
		"lower":   ranged("lower", l.Lower),
		"reverse": ranged("reverse", l.Reverse),
		"sub": func(args ...any) ([]any, error) {
			b, err := bufferArg("sub", args, 0)
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, argError("sub", 2, "number expected, got no value")
			}
			i, err := intArg("sub", 2, args[1])
			if err != nil {
				return nil, err
			}
			j, err := optInt("sub", args, 2, -1)
			if err != nil {
				return nil, err
			}
			return []any{l.Sub(b, i, j)}, nil
		},
		"index": func(args ...any) ([]any, error) {
			b, err := bufferArg("index", args, 0)
			if err != nil {
				return nil, err
			}
			if !isNumber(args, 1) {
				return nil, argError("index", 2, "number expected, got %s", typeName(at(args, 1)))
			}
			pos, _ := intArg("index", 2, args[1])
			s, err := l.At(b, pos)
			if err != nil {
				return nil, err
			}
			return []any{s}, nil
		},
		"newindex": func(args ...any) ([]any, error) {
			b, err := bufferArg("newindex", args, 0)
			if err != nil {
				return nil, err
			}
			if !isNumber(args, 1) {
				return nil, argError("newindex", 2, "number expected, got %s", typeName(at(args, 1)))
			}
			pos, _ := intArg("newindex", 2, args[1])
			s, err := strArg("newindex", args, 2)
			if err != nil {
				return nil, err
			}
			return chain(l.Replace(b, pos, s))
		},
		"equals": func(args ...any) ([]any, error) {
			ok, err := l.Equals(at(args, 0), at(args, 1))
			if err != nil {
				return nil, err
			}
			return []any{ok}, nil
		},
		"compare": func(args ...any) ([]any, error) {
			b, err := bufferArg("compare", args, 0)
			if err != nil {
				return nil, err
			}
			c, err := l.Compare(b, at(args, 1))
			if err != nil {
				return nil, err
			}
			return []any{c}, nil
		},
		"hash": func(args ...any) ([]any, error) {
			b, err := bufferArg("hash", args, 0)
			if err != nil {
				return nil, err
			}
			return []any{int64(l.Hash(b))}, nil
		},
		"split":  splitter("split", l.Split),
		"fields": splitter("fields", l.Fields),
		"concat": func(args ...any) ([]any, error) {
			b, err := l.Concat(at(args, 0), at(args, 1))
			if err != nil {
				return nil, err
			}
			return []any{b}, nil
		},
		"join": func(args ...any) ([]any, error) {
			sep, err := strArg("join", args, 0)
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(args)-1)
			for i := range parts {
				if parts[i], err = strArg("join", args, i+1); err != nil {
					return nil, err
				}
			}
			s, err := l.Join(sep, parts...)
			if err != nil {
				return nil, err
			}
			return []any{s}, nil
		},
		"replace_all": func(args ...any) ([]any, error) {
			b, err := bufferArg("replace_all", args, 0)
			if err != nil {
				return nil, err
			}
			pairs := make([]string, len(args)-1)
			for i := range pairs {
				if pairs[i], err = strArg("replace_all", args, i+1); err != nil {
					return nil, err
				}
			}
			n, err := l.ReplaceAll(b, pairs...)
			if err != nil {
				return nil, err
			}
			return []any{b, n}, nil
		},
		"load": func(args ...any) ([]any, error) {
			path, err := strArg("load", args, 0)
			if err != nil {
				return nil, err
			}
			b, err := l.Load(path)
			if err != nil {
				return nil, err
			}
			return []any{b}, nil
		},
		"find": func(args ...any) ([]any, error) {
			s, p, init, err := subjectArgs("find", args)
			if err != nil {
				return nil, err
			}
			m, err := l.Find(s, p, init, optBool(args, 3, false))
			if err != nil {
				return nil, err
			}
			if m == nil {
				return []any{nil}, nil
			}
			return append([]any{m.Start, m.End}, captureValues(m.Captures)...), nil
		},
		"match": func(args ...any) ([]any, error) {
			s, p, init, err := subjectArgs("match", args)
			if err != nil {
				return nil, err
			}
			caps, err := l.Match(s, p, init)
			if err != nil {
				return nil, err
			}
			if caps == nil {
				return []any{nil}, nil
			}
			return captureValues(caps), nil
		},
		"gmatch": func(args ...any) ([]any, error) {
			s, p, _, err := subjectArgs("gmatch", args)
			if err != nil {
				return nil, err
			}
			it, err := l.GMatch(s, p)
			if err != nil {
				return nil, err
			}
			next := Func(func(...any) ([]any, error) {
				if !it.Next() {
					return []any{nil}, it.Err()
				}
				return captureValues(it.Captures()), nil
			})
			return []any{next}, nil
		},
		"gsub": func(args ...any) ([]any, error) {
			if len(args) == 0 {
				return nil, argError("gsub", 1, "string expected, got no value")
			}
			p, err := strArg("gsub", args, 1)
			if err != nil {
				return nil, err
			}
			if len(args) < 3 {
				return nil, argError("gsub", 3, "string/function/table expected, got no value")
			}
			limit, err := optInt("gsub", args, 3, -1)
			if err != nil {
				return nil, err
			}
			if b, ok := args[0].(*buffer.Buffer); ok {
				n, err := l.GSubBuffer(b, p, args[2], limit)
				if err != nil {
					return nil, err
				}
				return []any{b, n}, nil
			}
			s, n, err := l.GSub(args[0], p, args[2], limit)
			if err != nil {
				return nil, err
			}
			return []any{s, n}, nil
		},
		"quote": func(args ...any) ([]any, error) {
			s, err := strArg("quote", args, 0)
			if err != nil {
				return nil, err
			}
			return []any{pattern.QuoteMeta(s)}, nil
		},
		"growth_factor": func(...any) ([]any, error) {
			return []any{l.GrowthFactor()}, nil
		},
		"default_capacity": func(...any) ([]any, error) {
			return []any{l.DefaultCapacity()}, nil
		},
	}
}

// at returns args[i], or nil past the end.
func at(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// chain returns the buffer a mutating function was called on.
func chain(b *buffer.Buffer, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	return []any{b}, nil
}

func unary(name string, fn func(*buffer.Buffer) *buffer.Buffer) Func {
	return func(args ...any) ([]any, error) {
		b, err := bufferArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return []any{fn(b)}, nil
	}
}

// ranged binds a function taking an optional (pos, n) range.
func ranged(name string, fn func(*buffer.Buffer, int, int) (*buffer.Buffer, error)) Func {
	return func(args ...any) ([]any, error) {
		b, err := bufferArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		pos, err := optInt(name, args, 1, 1)
		if err != nil {
			return nil, err
		}
		n, err := optInt(name, args, 2, 0)
		if err != nil {
			return nil, err
		}
		return chain(fn(b, pos, n))
	}
}

func splitter(name string, fn func(*buffer.Buffer, string) ([]string, error)) Func {
	return func(args ...any) ([]any, error) {
		b, err := bufferArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		seps, err := strArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		tokens, err := fn(b, seps)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(tokens))
		for i, t := range tokens {
			out[i] = t
		}
		return out, nil
	}
}

// subjectArgs reads the (s, pattern, [init]) prefix shared by the matcher
// functions.
func subjectArgs(name string, args []any) (any, string, int, error) {
	if len(args) == 0 {
		return nil, "", 0, argError(name, 1, "string expected, got no value")
	}
	if _, err := stringArg(name, 1, args[0]); err != nil {
		return nil, "", 0, err
	}
	p, err := strArg(name, args, 1)
	if err != nil {
		return nil, "", 0, err
	}
	init, err := optInt(name, args, 2, 1)
	if err != nil {
		return nil, "", 0, err
	}
	return args[0], p, init, nil
}
