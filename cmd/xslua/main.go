// xslua runs Lua patterns and buffer splits over files or standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	xslua "github.com/Xetrill/XsLuaJIT"
	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/config"
)

var log = commonlog.GetLogger("xslua.cli")

// Exit codes.
const (
	exitOK      = 0
	exitNoMatch = 1
	exitError   = 2
)

var errUsage = errors.New("usage")

// options holds the parsed command line.
type options struct {
	configPath string
	verbosity  int
	plain      bool
	init       int
	max        int
	format     string

	command string
	args    []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.verbosity > cfg.Log.Verbosity {
		cfg.Log.Verbosity = opts.verbosity
	}
	cfg.Log.Apply()
	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}

	lib, err := xslua.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	res, err := execute(lib, opts, stdin)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
			printUsage(stderr, nil)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitError
	}

	if err := write(stdout, opts.format, res); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if res.noMatch() {
		return exitNoMatch
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("xslua", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Configuration file (default: nearest "+config.FileName+")")
	fs.IntVar(&opts.verbosity, "v", 0, "Log verbosity (0 = errors only)")
	fs.BoolVar(&opts.plain, "plain", false, "find: treat the pattern as a literal string")
	fs.IntVar(&opts.init, "init", 1, "find/match: 1-based start position, negative counts from the end")
	fs.IntVar(&opts.max, "n", -1, "gsub: maximum number of replacements, negative for all")
	fs.StringVar(&opts.format, "format", "text", "Output format: text or cbor")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.format != "text" && opts.format != "cbor" {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.format)
		return nil, errUsage
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return nil, errUsage
	}
	opts.command, opts.args = rest[0], rest[1:]
	return opts, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: xslua [options] <command> [arguments] [file]\n\n")
	fmt.Fprintf(w, "Reads the subject from file, or from standard input when no file is given.\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  find <pattern> [file]         Print the span and captures of the first match\n")
	fmt.Fprintf(w, "  match <pattern> [file]        Print the captures of the first match\n")
	fmt.Fprintf(w, "  gmatch <pattern> [file]       Print the captures of every match, one per line\n")
	fmt.Fprintf(w, "  gsub <pattern> <repl> [file]  Print the subject with matches replaced\n")
	fmt.Fprintf(w, "  split <seps> [file]           Print the tokens between separator bytes\n")
	fmt.Fprintf(w, "  fields <seps> [file]          Like split, without empty tokens\n")
	fmt.Fprintf(w, "  hash [file]                   Print the content hash\n")
	if fs != nil {
		fmt.Fprintf(w, "\nOptions:\n")
		fs.PrintDefaults()
	}
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  xslua gmatch '%%a+' notes.txt\n")
	fmt.Fprintf(w, "  echo 'key = value' | xslua match '(%%w+)%%s*=%%s*(%%w+)'\n")
	fmt.Fprintf(w, "  xslua -n 1 gsub '%%s+' ' ' notes.txt\n")
	fmt.Fprintf(w, "  xslua -format cbor split , data.csv\n")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg, nil
}

// subject reads the input named by the trailing file argument, if any.
func subject(lib *xslua.Library, args []string, want int, stdin io.Reader) (*buffer.Buffer, error) {
	switch len(args) {
	case want:
		b, err := lib.NewBuffer(0)
		if err != nil {
			return nil, err
		}
		if _, err := b.ReadFrom(stdin); err != nil {
			return nil, fmt.Errorf("cannot read standard input: %w", err)
		}
		log.Debugf("read %d bytes from standard input", b.Len())
		return b, nil
	case want + 1:
		return lib.Load(args[want])
	}
	return nil, fmt.Errorf("%w: wrong number of arguments", errUsage)
}

func execute(lib *xslua.Library, opts *options, stdin io.Reader) (*result, error) {
	res := &result{Command: opts.command}
	switch opts.command {
	case "find":
		if len(opts.args) == 0 {
			return nil, fmt.Errorf("%w: find needs a pattern", errUsage)
		}
		b, err := subject(lib, opts.args, 1, stdin)
		if err != nil {
			return nil, err
		}
		m, err := lib.Find(b, opts.args[0], opts.init, opts.plain)
		if err != nil {
			return nil, err
		}
		if m != nil {
			res.add(m.Start, m.End, captureStrings(m.Captures))
		}

	case "match":
		if len(opts.args) == 0 {
			return nil, fmt.Errorf("%w: match needs a pattern", errUsage)
		}
		b, err := subject(lib, opts.args, 1, stdin)
		if err != nil {
			return nil, err
		}
		caps, err := lib.Match(b, opts.args[0], opts.init)
		if err != nil {
			return nil, err
		}
		if caps != nil {
			res.add(0, 0, captureStrings(caps))
		}

	case "gmatch":
		if len(opts.args) == 0 {
			return nil, fmt.Errorf("%w: gmatch needs a pattern", errUsage)
		}
		b, err := subject(lib, opts.args, 1, stdin)
		if err != nil {
			return nil, err
		}
		it, err := lib.GMatch(b, opts.args[0])
		if err != nil {
			return nil, err
		}
		for it.Next() {
			start, end := it.Span()
			res.add(start, end, it.Strings())
		}
		if err := it.Err(); err != nil {
			return nil, err
		}

	case "gsub":
		if len(opts.args) < 2 {
			return nil, fmt.Errorf("%w: gsub needs a pattern and a replacement", errUsage)
		}
		b, err := subject(lib, opts.args, 2, stdin)
		if err != nil {
			return nil, err
		}
		n, err := lib.GSubBuffer(b, opts.args[0], opts.args[1], opts.max)
		if err != nil {
			return nil, err
		}
		log.Infof("%d replacements", n)
		res.Text, res.Count = b.String(), n
		res.hasText = true

	case "split", "fields":
		if len(opts.args) == 0 {
			return nil, fmt.Errorf("%w: %s needs separators", errUsage, opts.command)
		}
		b, err := subject(lib, opts.args, 1, stdin)
		if err != nil {
			return nil, err
		}
		split := lib.Split
		if opts.command == "fields" {
			split = lib.Fields
		}
		tokens, err := split(b, opts.args[0])
		if err != nil {
			return nil, err
		}
		res.Tokens, res.Count = tokens, len(tokens)

	case "hash":
		b, err := subject(lib, opts.args, 0, stdin)
		if err != nil {
			return nil, err
		}
		res.Hash = lib.Hash(b)
		res.hasHash = true

	default:
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, opts.command)
	}
	return res, nil
}

// captureStrings renders a match result for output.
func captureStrings[T fmt.Stringer](caps []T) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.String()
	}
	return out
}

// lineEscaper keeps each output record on one line.
var lineEscaper = mustReplacer("\\", "\\\\", "\n", "\\n", "\t", "\\t")

func mustReplacer(oldnew ...string) *buffer.Replacer {
	r, err := buffer.NewReplacer(oldnew...)
	if err != nil {
		panic(err)
	}
	return r
}

// joinLine joins fields with tabs, escaping embedded tabs and line breaks.
func joinLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i], _, _ = lineEscaper.Replace(f)
	}
	return strings.Join(escaped, "\t")
}
