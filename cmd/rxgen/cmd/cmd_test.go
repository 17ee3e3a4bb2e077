package cmd

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolkov/rxgen"
)

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"enumerate", []string{"enumerate", "(a|b){2}"}, "aa\nab\nba\nbb\n"},
		{"enumerate limit", []string{"enumerate", "--limit", "3", "a*"}, "\na\naa\n"},
		{"count", []string{"count", "(a|b){2}"}, "4\n"},
		{"count infinite", []string{"count", "a+"}, "infinite\n"},
		{"case-insensitive count", []string{"count", "-i", "ab"}, "4\n"},
		{"parse", []string{"parse", "a|b"}, "Choice\n    FinalSymbol \"a\"\n    FinalSymbol \"b\"\n"},
		{"generate literal", []string{"generate", "-n", "2", "xyz"}, "xyz\nxyz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("execute(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestGenerateSeeded(t *testing.T) {
	args := []string{"generate", "--seed", "7", "-n", "5", `[a-z]{4}\d`}
	first, err := execute(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := execute(t, args...)
	if first != second {
		t.Errorf("same seed produced\n%s\nand\n%s", first, second)
	}
	if n := len(lines(first)); n != 5 {
		t.Errorf("got %d lines, want 5", n)
	}
}

func TestNegate(t *testing.T) {
	out, err := execute(t, "negate", "--seed", "1", "-n", "20", "yes|no")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range lines(out) {
		if s == "yes" || s == "no" {
			t.Errorf("negate printed matching string %q", s)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	content := "dot: \"01\"\ncount: 4\nseed: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "generate", "...")
	if err != nil {
		t.Fatal(err)
	}
	got := lines(out)
	if len(got) != 4 {
		t.Fatalf("got %d lines, want 4 from the config file", len(got))
	}
	for _, s := range got {
		if len(s) != 3 || strings.Trim(s, "01") != "" {
			t.Errorf("generated %q outside the configured dot", s)
		}
	}

	// Flags win over the file.
	out, err = execute(t, "--config", path, "generate", "-n", "1", "--dot", "x", ".")
	if err != nil {
		t.Fatal(err)
	}
	if out != "x\n" {
		t.Errorf("flag override = %q, want %q", out, "x\n")
	}
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "count", "a(b")
	var pe *rxgen.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want *rxgen.ParseError", err)
	}

	if _, err := execute(t, "generate", "-n", "0", "a"); err == nil {
		t.Error("--count 0 accepted")
	}
	if _, err := execute(t, "--config", "/nonexistent/rxgen.toml", "count", "a"); err == nil {
		t.Error("missing config file accepted")
	}
	if _, err := execute(t, "count"); err == nil {
		t.Error("missing pattern accepted")
	}
}

func TestTimeout(t *testing.T) {
	// Every string over the one-rune domain matches, so the negative
	// iterator never yields a second value.
	_, err := execute(t, "enumerate", "--dot", "a", "--timeout", "50ms", "--limit", "2", "(?!a*)")
	if !errors.Is(err, errTimeout) {
		t.Errorf("error = %v, want timeout", err)
	}
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestRunStopsWorkerOnWriteError(t *testing.T) {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	c := &cobra.Command{}
	c.SetOut(failingWriter{})

	finished := make(chan struct{})
	err := o.run(c, func(emit func(string) bool) error {
		defer close(finished)
		line := strings.Repeat("x", 100)
		for emit(line) {
		}
		return nil
	})
	if !errors.Is(err, errWrite) {
		t.Errorf("run() error = %v, want %v", err, errWrite)
	}
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("worker still blocked after run returned")
	}
}

func TestVersion(t *testing.T) {
	SetBuildInfo("1.2.3", "abc", "today")
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "rxgen version 1.2.3") || !strings.Contains(out, rxgen.Version) {
		t.Errorf("version output = %q", out)
	}
}
