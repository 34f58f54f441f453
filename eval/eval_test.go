package eval

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func mustRun(t *testing.T, source string) (string, string) {
	t.Helper()
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))
	rv, err := ctx.Run("test.scm", source)
	if err != nil {
		t.Fatalf("%q: unexpected error %s", source, err)
	}
	return rv, out.String()
}

func TestEval(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		// define and lookup
		{"(define x 5) x", "5"},
		{"(define x 5)", "5"},
		{"(define x) x", "unspecified"},
		{"(define x 1) (define x 2) x", "2"},
		{"", "unspecified"},
		// if and truthiness
		{"(if #t 1 2)", "1"},
		{"(if #f 1 2)", "2"},
		{"(if 0 1 2)", "1"},
		{"(if '() 1 2)", "1"},
		{`(if "" 1 2)`, "1"},
		{"(if #f 1)", "unspecified"},
		// closures
		{"(define (make-adder n) (lambda (x) (+ x n))) (define add3 (make-adder 3)) (add3 5)", "8"},
		{"(define (counter) (define n 0) (lambda () (set! n (+ n 1)) n)) (define c (counter)) (c) (c)", "2"},
		{"(define n 1) (define (f) n) (define (g n) (f)) (g 100)", "1"},
		{"(define (fact n) (if (= n 0) 1 (* n (fact (- n 1))))) (fact 10)", "3628800"},
		// variadic lambdas
		{"(define f (lambda args args)) (f 1 2 3)", "(1 2 3)"},
		{"(define f (lambda args (length args))) (f)", "0"},
		// begin
		{"(begin 1 2 3)", "3"},
		{"(begin)", "unspecified"},
		// set!
		{"(define x 1) (set! x 2) x", "2"},
		{"(define x 1) (define (f) (set! x 3)) (f) x", "3"},
		{`(define x 1) (define s set!) (s "x" 5) x`, "5"},
		{`(define x 1) (define s set!) (define (f) (define x 2) (s "x" 7) x) (f)`, "7"},
		// return
		{"(define (f) (return 1) 2) (f)", "1"},
		{"(define (f x) (if (> x 0) (return 1)) 2) (f 5)", "2"},
		{"(define (f x) (if (> x 0) (return 1) 3)) (f 5)", "1"},
		{"(define (g) (begin (return 7) 8) 9) (g)", "9"},
		{"(define (g) (begin (return 7) 8)) (g)", "8"},
		{"(define f (lambda () (return 4) (car 1))) (f)", "4"},
		{"(+ 1 (return 2))", "3"},
		{"(return 3)", "3"},
		{"(return 3) 4", "4"},
		// quote
		{"(quote (1 2 3))", "(1 2 3)"},
		{"'(a b)", "(a b)"},
		{"'x", "x"},
		{"(define x 5) '(x 1)", "(x 1)"},
		{`'(1 "s" #t (2 3))`, "(1 s #t (2 3))"},
		{"'()", "()"},
		{"'(1 (quote x))", "(1 x)"},
		{"(quote 5)", "5"},
		// procedures render with their global name
		{"(define (f) 1) f", "procedure f"},
		{"car", "procedure car"},
		{"(lambda (x) x)", "procedure"},
		{"(define g (lambda (x) x)) (define h g) h", "procedure g"},
		// numbers
		{"0.1", "0.1"},
		{"1e21", "1e+21"},
		{"0.0000001", "1e-7"},
		{"(* -1 0)", "0"},
		{"(/ 0 0)", "NaN"},
		{"(- 0 (/ 1 0))", "-Infinity"},
		{"-2.5", "-2.5"},
	}
	for i, test := range tests {
		var out bytes.Buffer
		ctx := NewContext(WithOutput(&out))
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

func TestDisplay(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{`(display "hi")`, "hi"},
		{`(displayln 5)`, "5\n"},
		{`(display "a\nb")`, "a\nb"},
		{`(display "a\tb")`, `a\tb`},
		{`(display '(1 (2 "x")))`, "(1 (2 x))"},
		{`(display #t) (display #f)`, "#t#f"},
		{`(display (display 1))`, "1unspecified"},
		{`(define (f) 1) (display f)`, "procedure f"},
	}
	for i, test := range tests {
		rv, out := mustRun(t, test.input)
		if out != test.output {
			t.Errorf("tests[%d] (%q): expected output %q, got %q", i, test.input, test.output, out)
		}
		if rv != "unspecified" {
			t.Errorf("tests[%d] (%q): expected unspecified, got %q", i, test.input, rv)
		}
	}
}

func TestReturnSkipsRestOfBody(t *testing.T) {
	rv, out := mustRun(t, `(define (f) (display "a") (return 1) (display "b")) (f)`)
	if rv != "1" || out != "a" {
		t.Errorf("expected 1 and output %q, got %q and %q", "a", rv, out)
	}
	rv, out = mustRun(t, `(define (f) (if #t (return 1)) (display "b") 2) (f)`)
	if rv != "2" || out != "b" {
		t.Errorf("expected 2 and output %q, got %q and %q", "b", rv, out)
	}
}

func TestValueTypes(t *testing.T) {
	tests := []struct {
		value  Value
		expect string
	}{
		{UNSPECIFIED, "VT_UNSPECIFIED"},
		{TRUE, "VT_BOOLEAN"},
		{Number(1), "VT_NUMBER"},
		{String("s"), "VT_STRING"},
		{NewList(), "VT_LIST"},
		{&Procedure{}, "VT_PROCEDURE"},
		{newBuiltin("x", 0, nil), "VT_BUILTIN"},
	}
	for i, test := range tests {
		if got := test.value.Type().String(); got != test.expect {
			t.Errorf("tests[%d] (%#v): expected %q, got %q", i, test.value, test.expect, got)
		}
	}
}

func TestDisplayBeforeError(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))
	_, err := ctx.Run("test.scm", `(display "before") (car 1) (display "after")`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if out.String() != "before" {
		t.Errorf("expected output %q, got %q", "before", out.String())
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"y", "unbound variable y", 1, 1},
		{"(set! y 1)", "unbound variable y", 1, 7},
		{`(+ 1 "a")`, `in procedure '+': wrong type "a"`, 1, 2},
		{`(+ "a" 1)`, `in procedure '+': wrong type "a"`, 1, 2},
		{"(define (f x) x) (f 1 2)", "wrong number of arguments in f (it takes 1 arguments, but 2 are received)", 1, 19},
		{"(define (f a b) a) (f 1)", "wrong number of arguments in f (it takes 2 arguments, but 1 are received)", 1, 21},
		{"(define (f a b) a) (f 1 2 3)", "wrong number of arguments in f (it takes 2 arguments, but 3 are received)", 1, 21},
		{"(car)", "wrong number of arguments in car (it takes 1 arguments, but 0 are received)", 1, 2},
		{"(define x 5) (x)", "x is not a procedure: 5", 1, 15},
		{"(car 1)", `in procedure 'car': wrong type "1"`, 1, 2},
		{"(car '())", "in procedure 'car': empty list", 1, 2},
		{"(cdr #t)", `in procedure 'cdr': wrong type "#t"`, 1, 2},
		{"(length 5)", `in procedure 'length': wrong type "5"`, 1, 2},
		{"(vector-ref '(1 2) 2)", "in procedure 'vector-ref': index out of range: 2", 1, 2},
		{"(vector-ref '(1 2) -1)", "in procedure 'vector-ref': index out of range: -1", 1, 2},
		{"(vector-ref '(1 2) 0.5)", `in procedure 'vector-ref': wrong type "0.5"`, 1, 2},
		{"(vector-set! '(1 2) 5 0)", "in procedure 'vector-set!': index out of range: 5", 1, 2},
		{`(string-append "a" 1)`, `in procedure 'string-append': wrong type "1"`, 1, 2},
		{`(string=? "a" 1)`, `in procedure 'string=?': wrong type "1"`, 1, 2},
		{`(string<? 1 "a")`, `in procedure 'string<?': wrong type "1"`, 1, 2},
		{`(< 1 "a")`, `in procedure '<': wrong type "a"`, 1, 2},
		{`(sqrt "a")`, `in procedure 'sqrt': wrong type "a"`, 1, 2},
		{`(number->string "a")`, `in procedure 'number->string': wrong type "a"`, 1, 2},
		{"(-)", "in procedure '-': expected at least 1 argument", 1, 2},
		{"(make-list -1 0)", "in procedure 'make-list': invalid size -1", 1, 2},
		{"(make-list 1e18 0)", "in procedure 'make-list': invalid size 1000000000000000000", 1, 2},
		{"(make-list 1e20 0)", "in procedure 'make-list': invalid size 100000000000000000000", 1, 2},
		{"(make-list (/ 1 0) 0)", "in procedure 'make-list': invalid size Infinity", 1, 2},
		{"(make-list (/ 0 0) 0)", "in procedure 'make-list': invalid size NaN", 1, 2},
		{"(sort 1 '(1))", `in procedure 'sort': wrong type "1"`, 1, 2},
		{`(define s set!) (s 1 2)`, `in procedure 'set!': wrong type "1"`, 1, 18},
		{`(define s set!) (s "nope" 2)`, "unbound variable nope", 1, 18},
		{"(import 5)", `in procedure 'import': wrong type "5"`, 1, 2},
		{"\n  (car 1)", `in procedure 'car': wrong type "1"`, 2, 4},
	}
	for i, test := range tests {
		ctx := NewContext(WithOutput(&bytes.Buffer{}))
		_, err := ctx.Run("test.scm", test.input)
		var serr *SemanticError
		if !errors.As(err, &serr) {
			t.Errorf("tests[%d] (%q): expected semantic error, got %v", i, test.input, err)
			continue
		}
		if serr.Message != test.message {
			t.Errorf("tests[%d] (%q): expected message %q, got %q", i, test.input, test.message, serr.Message)
		}
		if serr.Line != test.line || serr.Column != test.column {
			t.Errorf("tests[%d] (%q): expected %d:%d, got %d:%d", i, test.input, test.line, test.column, serr.Line, serr.Column)
		}
		if serr.Filename != "test.scm" {
			t.Errorf("tests[%d] (%q): expected filename test.scm, got %q", i, test.input, serr.Filename)
		}
	}
}

func TestSyntaxErrorsAreNotEvaluated(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))
	_, err := ctx.Run("test.scm", `(display "x") (1 2)`)
	if err == nil || !strings.Contains(err.Error(), "syntax error") {
		t.Fatalf("expected a syntax error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestTrace(t *testing.T) {
	ctx := NewContext(WithOutput(&bytes.Buffer{}))
	_, err := ctx.Run("test.scm", "(define (f x) (car x))\n(define (g) (f 1))\n(g)")
	var serr *SemanticError
	if !errors.As(err, &serr) {
		t.Fatalf("expected semantic error, got %v", err)
	}
	if serr.Line != 1 || serr.Column != 16 {
		t.Errorf("expected error at 1:16, got %d:%d", serr.Line, serr.Column)
	}
	expect := []TraceEntry{
		{"test.scm", 2, 14, "in procedure g"},
		{"test.scm", 3, 2, "[module]"},
	}
	if len(serr.Trace) != len(expect) {
		t.Fatalf("expected trace %v, got %v", expect, serr.Trace)
	}
	for i, entry := range expect {
		if serr.Trace[i] != entry {
			t.Errorf("trace[%d]: expected %v, got %v", i, entry, serr.Trace[i])
		}
	}
	if !strings.Contains(err.Error(), "\n  at test.scm:3:2: [module]") {
		t.Errorf("expected trace in message, got %q", err.Error())
	}
}

func TestMaxDepth(t *testing.T) {
	ctx := NewContext(WithMaxDepth(50))
	_, err := ctx.Run("test.scm", "(define (f n) (f n)) (f 1)")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if rerr.Message != "maximum recursion depth exceeded (50)" {
		t.Errorf("unexpected message %q", rerr.Message)
	}
	// the context is still usable afterwards.
	rv, err := ctx.Run("test.scm", "(define (h n) (if (= n 0) 0 (h (- n 1)))) (h 40)")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if rv != "0" {
		t.Errorf("expected 0, got %q", rv)
	}
}

func TestApply(t *testing.T) {
	ctx := NewContext()
	car, _ := ctx.Global().Get("car")
	rv, err := ctx.Apply(car, []Value{NewList(Number(1), Number(2))}, nil)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if rv != Number(1) {
		t.Errorf("expected 1, got %#v", rv)
	}
	if _, err := ctx.Apply(Number(1), nil, nil); err == nil {
		t.Error("expected an error applying a number")
	}
}
