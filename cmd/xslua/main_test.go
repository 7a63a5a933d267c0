package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/Xetrill/XsLuaJIT/buffer"
	"github.com/Xetrill/XsLuaJIT/config"
)

// runCLI runs the command with a private configuration file so the result
// does not depend on an xslua.toml further up the tree.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte("[pattern]\nmax-depth = 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-config", path}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		code  int
		want  string
	}{
		{"gsub", []string{"gsub", "o", "0"}, "foo boo", exitOK, "f00 b00"},
		{"gsub limit", []string{"-n", "1", "gsub", "o", "0"}, "foo boo", exitOK, "f0o boo"},
		{"gsub template", []string{"gsub", "(%w+)=(%w+)", "%2=%1"}, "a=b", exitOK, "b=a"},
		{"find", []string{"find", "l+"}, "hello", exitOK, "3\t4\n"},
		{"find captures", []string{"find", "(h)(e)"}, "hello", exitOK, "1\t2\th\te\n"},
		{"find plain", []string{"-plain", "find", "."}, "a.b", exitOK, "2\t2\n"},
		{"find init", []string{"-init", "-2", "find", "l"}, "hello", exitOK, "4\t4\n"},
		{"find none", []string{"find", "z"}, "hello", exitNoMatch, ""},
		{"match", []string{"match", "(%w+)=(%w+)"}, "key=val", exitOK, "key\tval\n"},
		{"match position", []string{"match", "()ll()"}, "hello", exitOK, "3\t5\n"},
		{"gmatch", []string{"gmatch", "%a+"}, "one two", exitOK, "1\t3\tone\n5\t7\ttwo\n"},
		{"gmatch none", []string{"gmatch", "%d"}, "abc", exitNoMatch, ""},
		{"gmatch escapes", []string{"gmatch", "[^,]+"}, "a\tb,c", exitOK, "1\t3\ta\\tb\n5\t5\tc\n"},
		{"split", []string{"split", ","}, "a,,b", exitOK, "a\n\nb\n"},
		{"fields", []string{"fields", ", "}, "a, b,,c", exitOK, "a\nb\nc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Fatalf("exit code %d, want %d (stderr: %s)", code, tt.code, errOut)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestHash(t *testing.T) {
	b, err := buffer.NewString(buffer.DefaultPolicy(), "hash me")
	if err != nil {
		t.Fatal(err)
	}
	want := fmt.Sprintf("%08x\n", b.Hash())

	code, out, _ := runCLI(t, "hash me", "hash")
	if code != exitOK || out != want {
		t.Errorf("stdin: %d %q, want %q", code, out, want)
	}

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("hash me"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, _ = runCLI(t, "", "hash", path)
	if code != exitOK || out != want {
		t.Errorf("file: %d %q, want %q", code, out, want)
	}
}

func TestCBOR(t *testing.T) {
	code, out, errOut := runCLI(t, "a1b22", "-format", "cbor", "gmatch", "%d+")
	if code != exitOK {
		t.Fatalf("exit code %d: %s", code, errOut)
	}
	var res result
	if err := cbor.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.Command != "gmatch" || res.Count != 2 {
		t.Fatalf("decoded %+v", res)
	}
	if m := res.Matches[1]; m.Start != 4 || m.End != 5 || m.Captures[0] != "22" {
		t.Errorf("second match %+v", m)
	}

	_, again, _ := runCLI(t, "a1b22", "-format", "cbor", "gmatch", "%d+")
	if again != out {
		t.Error("encoding is not deterministic")
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no command", nil, "Usage:"},
		{"unknown command", []string{"frobnicate"}, "unknown command"},
		{"missing pattern", []string{"find"}, "needs a pattern"},
		{"missing replacement", []string{"gsub", "a"}, "needs a pattern and a replacement"},
		{"malformed pattern", []string{"find", "[a"}, "pattern"},
		{"bad format", []string{"-format", "xml", "hash"}, "unknown format"},
		{"missing file", []string{"hash", "/nonexistent/input"}, "cannot read"},
		{"too many arguments", []string{"hash", "a", "b"}, "wrong number of arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "abc", tt.args...)
			if code != exitError {
				t.Errorf("exit code %d, want %d", code, exitError)
			}
			if out != "" {
				t.Errorf("unexpected output %q", out)
			}
			if !strings.Contains(errOut, tt.stderr) {
				t.Errorf("stderr %q does not mention %q", errOut, tt.stderr)
			}
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte("[buffer]\ngrowth-factor = 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "hash"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitError {
		t.Errorf("exit code %d", code)
	}
	if !strings.Contains(stderr.String(), "parse error") {
		t.Errorf("stderr: %s", stderr.String())
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Errorf("exit code %d", code)
	}
	if !strings.Contains(stderr.String(), "Commands:") {
		t.Errorf("usage not printed: %s", stderr.String())
	}
}
