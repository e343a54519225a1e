package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vela/internal/config"
	"vela/pkg/color"
	"vela/pkg/filter"
	"vela/pkg/value"
)

func newRunner(t *testing.T) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	enabled := color.IsColorEnabled()
	color.EnableColor(false)
	t.Cleanup(func() { color.EnableColor(enabled) })

	var out, errOut bytes.Buffer
	return &Runner{Config: config.Default(), Out: &out, ErrOut: &errOut}, &out, &errOut
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExpression(t *testing.T) {
	r, out, _ := newRunner(t)
	r.Expression = "[1, 2] + 1"

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "[2, 3]\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunFile(t *testing.T) {
	r, out, _ := newRunner(t)
	r.SourceFile = writeFile(t, "hello.vl", `
		greet(who:str):str { "hello " + who }
		PRINTLN(greet("world"))
		"done"
	`)

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if expected := "hello world\n\"done\"\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestRunReportsErrors(t *testing.T) {
	r, _, errOut := newRunner(t)
	r.Expression = "1 / 0"

	if err := r.Run(); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(errOut.String(), "Error: 1/0: division by zero error") {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}

func TestRunMaxSteps(t *testing.T) {
	r, _, _ := newRunner(t)
	r.Config.MaxSteps = 100
	r.SourceFile = writeFile(t, "loop.vl", "while true { }")

	if err := r.Run(); err == nil || !strings.Contains(err.Error(), "maximum steps exceeded") {
		t.Errorf("expected the step budget to stop the loop, got %v", err)
	}
}

func TestRunFilter(t *testing.T) {
	r, out, _ := newRunner(t)
	r.Filter = "mag < 6"
	r.DataFile = writeFile(t, "obs.yaml", `
- {mag: 5.5, band: V}
- {mag: 6.5, band: V}
- {mag: 4.0, band: B}
`)

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if expected := "0: band=\"V\" mag=5.5\n2: band=\"B\" mag=4.0\n"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}

	r.DataFile = ""
	if err := r.Run(); err == nil {
		t.Errorf("expected an error without a records file")
	}
}

func TestRunNoInput(t *testing.T) {
	r, _, _ := newRunner(t)
	if err := r.Run(); !errors.Is(err, errNoInput) {
		t.Errorf("expected errNoInput, got %v", err)
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		src      string
		expected bool
	}{
		{"1 + 2", false},
		{"f(x:int) {", true},
		{"f(x:int) {\n x }", false},
		{"[1, 2", true},
		{`"{"`, false},
		{`"abc`, true},
		{"# {\n1", false},
		{`"a\"{"`, false},
	}

	for _, test := range tests {
		if got := isIncomplete(test.src); got != test.expected {
			t.Errorf("%q: expected %v, got %v", test.src, test.expected, got)
		}
	}
}

func TestFormatRecord(t *testing.T) {
	record := filter.Record{"b": value.String("x"), "a": value.Integer(1)}
	if got := formatRecord(record); got != `a=1 b="x"` {
		t.Errorf("unexpected record format %q", got)
	}
}
