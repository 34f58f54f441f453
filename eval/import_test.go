package eval

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, source := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestImport(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.scm":     "(define (sq x) (* x x))",
		"counter.scm": "(define counter (+ counter 1))",
		"a.scm":       `(import "b") (define a 1)`,
		"b.scm":       `(import "a") (define b 2)`,
		"self.scm":    `(import "self") (define me 3)`,
	})
	tests := []struct {
		input  string
		expect string
	}{
		{`(import "lib") (sq 4)`, "16"},
		{`(import "lib.scm") (sq 5)`, "25"},
		{`(import "lib")`, "unspecified"},
		{`(define counter 0) (import "counter") (import "counter.scm") (import "counter") counter`, "1"},
		{`(import "a") (+ a b)`, "3"},
		{`(import "self") me`, "3"},
		{`(define name "lib") (import name) (sq 3)`, "9"},
		{`(define (f) (import "lib") (sq 2)) (f)`, "4"},
	}
	for i, test := range tests {
		ctx := NewContext(WithImportRoot(dir))
		rv, err := ctx.Run("test.scm", test.input)
		if err != nil {
			t.Errorf("tests[%d] (%q): unexpected error %s", i, test.input, err)
			continue
		}
		if rv != test.expect {
			t.Errorf("tests[%d] (%q): expected %q, got %q", i, test.input, test.expect, rv)
		}
	}
}

func TestImportScope(t *testing.T) {
	dir := writeFiles(t, map[string]string{"lib.scm": "(define (sq x) (* x x))"})
	ctx := NewContext(WithImportRoot(dir))
	// imported definitions land in the importing environment.
	_, err := ctx.Run("test.scm", `(define (f) (import "lib") (sq 2)) (f) sq`)
	if err == nil || !strings.Contains(err.Error(), "unbound variable sq") {
		t.Errorf("expected sq to be unbound globally, got %v", err)
	}
}

func TestImportFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.scm": `(import "b")`,
		"b.scm": `(import "a")`,
	})
	ctx := NewContext(WithImportRoot(dir))
	if _, err := ctx.Run("test.scm", `(import "a") (import "b")`); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	files := ctx.Imports()
	if len(files) != 2 {
		t.Fatalf("expected 2 imported files, got %v", files)
	}
	for i, name := range []string{"a.scm", "b.scm"} {
		want, err := filepath.EvalSymlinks(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if files[i] != want {
			t.Errorf("files[%d]: expected %q, got %q", i, want, files[i])
		}
	}
}

func TestImportErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.txt": "(define x 1)",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub.scm"), 0o755); err != nil {
		t.Fatal(err)
	}
	tests := []string{
		`(import "missing")`,
		`(import "lib.txt")`,
		`(import "sub")`,
	}
	for i, input := range tests {
		ctx := NewContext(WithImportRoot(dir))
		_, err := ctx.Run("test.scm", input)
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			t.Errorf("tests[%d] (%q): expected runtime error, got %v", i, input, err)
			continue
		}
		if !strings.HasPrefix(rerr.Message, "cannot import file: ") {
			t.Errorf("tests[%d] (%q): unexpected message %q", i, input, rerr.Message)
		}
		if rerr.Line != 1 || rerr.Column != 2 || rerr.Filename != "test.scm" {
			t.Errorf("tests[%d] (%q): unexpected location %s:%d:%d", i, input, rerr.Filename, rerr.Line, rerr.Column)
		}
	}
}

func TestImportedFileErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.scm":    "(define x 1)\n(car x)",
		"broken.scm": "(define",
	})
	ctx := NewContext(WithImportRoot(dir))
	_, err := ctx.Run("test.scm", `(import "bad")`)
	var serr *SemanticError
	if !errors.As(err, &serr) {
		t.Fatalf("expected semantic error, got %v", err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(dir, "bad.scm"))
	if serr.Filename != want || serr.Line != 2 || serr.Column != 2 {
		t.Errorf("unexpected location %s:%d:%d", serr.Filename, serr.Line, serr.Column)
	}

	_, err = ctx.Run("test.scm", `(import "broken")`)
	if err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("expected a syntax error, got %v", err)
	}
}

func TestImportLogging(t *testing.T) {
	dir := writeFiles(t, map[string]string{"lib.scm": "(define x 1)"})
	var buf bytes.Buffer
	ctx := NewContext(WithImportRoot(dir), WithLogger(log.New(&buf, "", 0)))
	if _, err := ctx.Run("test.scm", `(import "lib") (import "lib")`); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "importing ") || !strings.HasPrefix(lines[1], "skipping already imported ") {
		t.Errorf("unexpected log %q", buf.String())
	}
}
