package interpreter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"vela/pkg/interpreter"
	"vela/pkg/value"
)

func ints(ns ...int64) value.List {
	list := value.List{}
	for _, n := range ns {
		list = append(list, value.Integer(n))
	}
	return list
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected value.Operand
	}{
		// lists
		{"HEAD([1, 2])", value.Integer(1)},
		{"HEAD([])", value.List{}},
		{"TAIL([1, 2, 3])", ints(2, 3)},
		{"TAIL([])", value.List{}},
		{"NTH([1, 2, 3], 1)", value.Integer(2)},
		{"LENGTH([1, 2])", value.Integer(2)},
		{"CONCAT([1], [2, 3])", ints(1, 2, 3)},
		{"SEQ(1, 5, 2)", ints(1, 3, 5)},
		{"SEQ(1, 6, 2)", ints(1, 3, 5)},
		{"SEQ(0.0, 1.0, 0.5)", value.List{value.Real(0), value.Real(0.5), value.Real(1)}},
		{"MAP(fun(x:int):int { x * x }, [1, 2, 3])", ints(1, 4, 9)},
		{"FILTER(fun(x:int):bool { x > 1 }, [1, 2, 3])", ints(2, 3)},
		{"FIND(fun(x:int):bool { x > 1 }, [1, 2, 3])", value.Integer(1)},
		{"FIND(fun(x:int):bool { x > 5 }, [1, 2, 3])", value.Integer(-1)},
		{"PAIRWISEFIND(fun(a:int, b:int):bool { b < a }, [1, 2, 1, 3], 1)", value.Integer(1)},
		{"APPEND([1], 2)", ints(1, 2)},
		{"APPEND([1], \"a\")", value.List{value.Integer(1), value.String("a")}},
		{"APPEND([], [1])", value.List{ints(1)}},
		{"REDUCE(fun(a:int, b:int):int { a + b }, [1, 2, 3], 0)", value.Integer(6)},
		{"REDUCE(fun(a:str, b:str):str { a + b }, [\"a\", \"b\"], \"\")", value.String("ab")},
		{"NTH(EVAL(\"1 + 2\"), 0)", value.Integer(3)},
		{"EVAL(\"q <- 1\")", value.List{}},

		// strings
		{"CHR(65)", value.String("A")},
		{"CHR(-1)", value.String("")},
		{"ORD(\"A\")", value.Integer(65)},
		{"FORMAT(\"%d items, %.2f%n\", [3, 2.5])", value.String("3 items, 2.50\n")},
		{"FORMAT(\"%s-%v\", [\"a\", true])", value.String("a-true")},
		{"FORMAT(\"%d\", [1, 2])", value.String("1")},
		{"FORMAT(\"100%%!\", [])", value.String("100%!")},
		{"LENGTH(\"héllo\")", value.Integer(5)},
		{"CONCAT(\"a\", \"b\")", value.String("ab")},
		{"TOUPPERCASE(\"abc\")", value.String("ABC")},
		{"TOLOWERCASE(\"ABC\")", value.String("abc")},
		{"TRIM(\"  x \")", value.String("x")},
		{"SUBSTRING(\"hello\", 1, 3)", value.String("el")},
		{"SUBSTRING(\"hello\", 3)", value.String("lo")},
		{"INDEXOF(\"héllo\", \"l\")", value.Integer(2)},
		{"LASTINDEXOF(\"hello\", \"l\")", value.Integer(3)},
		{"INDEXOF(\"hello\", \"z\")", value.Integer(-1)},
		{"REPLACE(\"a-b-c\", \"-\", \"+\")", value.String("a+b+c")},
		{"MATCHES(\"abc\", \"a.c\")", value.Boolean(true)},
		{"REPEAT(\"ab\", 3)", value.String("ababab")},
		{"EQUALSIGNORECASE(\"ABC\", \"abc\")", value.Boolean(true)},
		{"COMPARETO(\"a\", \"b\")", value.Integer(-1)},
		{"STARTSWITH(\"hello\", \"he\")", value.Boolean(true)},
		{"ENDSWITH(\"hello\", \"lo\")", value.Boolean(true)},
		{"CONTAINS(\"hello\", \"ll\")", value.Boolean(true)},
		{"ISEMPTY(\"\")", value.Boolean(true)},

		// math
		{"ABS(-3)", value.Integer(3)},
		{"ABS(-2.5)", value.Real(2.5)},
		{"SQRT(16)", value.Real(4)},
		{"MIN(2, 3)", value.Integer(2)},
		{"MAX(2, 3.5)", value.Real(3.5)},
		{"HYPOT(3, 4)", value.Real(5)},
		{"FLOOR(2.7)", value.Real(2)},
		{"CEIL(2.2)", value.Real(3)},
		{"RINT(2.5)", value.Real(2)},
		{"SIGNUM(-3.0)", value.Real(-1)},
		{"POW(2, 3)", value.Real(8)},
		{"sqrt(4)", value.Real(2)},
	}

	for _, test := range tests {
		vela := interpreter.NewInterpreter()
		result, err := vela.Expression(test.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		if !value.Equal(result, test.expected) {
			t.Errorf("%q: expected %s, got %s", test.input, value.Repr(test.expected), value.Repr(result))
		}
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		input    string
		fragment string
	}{
		{"NTH([1, 2], 5)", "out of range"},
		{"ORD(\"\")", "non-empty string"},
		{"SEQ(1, 5, 0)", "positive step"},
		{"PAIRWISEFIND(fun(a:int, b:int):bool { true }, [1, 2], 0)", "positive step"},
		{"FILTER(fun(x:int):int { x }, [1])", "Expected boolean value"},
		{"MAP(fun(x:int) { PRINT() }, [1])", "Expected function result"},
		{"MAP(fun(x:str):str { x }, [1])", "Invalid parameters for function"},
		{"HELP()", "One or more expression expected."},
		{"FORMAT(\"%d\", [1.5])", "do not match the format string: %!d(float64=1.5)"},
		{"FORMAT(\"%d and %d\", [1])", "%!d(MISSING)"},
		{"FORMAT(\"50%\", [])", "%!(NOVERB)"},
		{"HEAD(1)", "Invalid parameters for function \"HEAD\""},
	}

	for _, test := range tests {
		expectError(t, test.input, test.fragment)
	}
}

func TestRandom(t *testing.T) {
	x, err := interpreter.NewInterpreter().RealExpression("RANDOM()")
	if err != nil {
		t.Fatal(err)
	}
	if x < 0 || x >= 1 {
		t.Errorf("expected a value in [0, 1), got %v", x)
	}
}

func TestConstants(t *testing.T) {
	vela := interpreter.NewInterpreter()

	x, err := vela.RealExpression("Π")
	if err != nil {
		t.Fatal(err)
	}
	if x < 3.14159 || x > 3.1416 {
		t.Errorf("unexpected value of Π: %v", x)
	}

	if _, err := vela.Program("E <- 1"); err == nil {
		t.Errorf("E should be a constant")
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	vela := interpreter.NewInterpreter(interpreter.WithWriter(&out))

	program(t, vela, `
		PRINT("a", 1)
		PRINTLN(2.5, [1, "b"])
		FOR(fun(x:int) { PRINT(x) }, [3, 4])
	`)

	if expected := "a12.5[1, \"b\"]\n34"; out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrintWriteError(t *testing.T) {
	vela := interpreter.NewInterpreter(interpreter.WithWriter(failingWriter{}))

	_, err := vela.Program("PRINTLN(1)")
	var evalErr *interpreter.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected an EvalError, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the write error in %q", err)
	}
}

func TestNextChar(t *testing.T) {
	vela := interpreter.NewInterpreter(interpreter.WithReader(strings.NewReader("xé")))

	for _, expected := range []string{"x", "é", ""} {
		result := program(t, vela, "NEXTCHAR()")
		if !value.Equal(result, value.String(expected)) {
			t.Errorf("expected %q, got %s", expected, value.Repr(result))
		}
	}
}

func TestExit(t *testing.T) {
	code := -1
	vela := interpreter.NewInterpreter(interpreter.WithExit(func(c int) { code = c }))

	if result := program(t, vela, "EXIT(3)"); result != nil {
		t.Errorf("expected no result, got %s", value.Repr(result))
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
}

func TestClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC) }
	vela := interpreter.NewInterpreter(interpreter.WithClock(clock))

	jd, err := vela.RealExpression("TODAY()")
	if err != nil {
		t.Fatal(err)
	}
	if jd != 2451544.5 {
		t.Errorf("expected JD 2451544.5, got %v", jd)
	}

	ms := program(t, vela, "MILLISECONDS()")
	if !value.Equal(ms, value.Integer(clock().UnixMilli())) {
		t.Errorf("expected %d, got %s", clock().UnixMilli(), value.Repr(ms))
	}
}

func TestHelp(t *testing.T) {
	vela := interpreter.NewInterpreter()

	tests := []struct {
		input    string
		expected string
	}{
		{"HELP(1)", "INTEGER : 1\n\n"},
		{"HELP(\"a\", true)", "STRING : a\n\nBOOLEAN : true\n\n"},
		{"HELP(sqrt)", "SQRT(X:REAL) : REAL\n\n"},
		{"double(n:int):int { <<doubles n>> n * 2 } HELP(double)", "DOUBLE(N:INTEGER) : INTEGER\ndoubles n\n\n"},
		{"HELP(fun(x:real) { x })", "λ(X:REAL)\n\n"},
	}

	for _, test := range tests {
		result := program(t, vela, test.input)
		if !value.Equal(result, value.String(test.expected)) {
			t.Errorf("%q: expected %q, got %s", test.input, test.expected, value.Repr(result))
		}
	}

	help := program(t, vela, "HELP(print)")
	if !strings.Contains(help.String(), "PRINT(ANY...)") {
		t.Errorf("unexpected help for PRINT: %q", help)
	}
}

func TestIntrinsics(t *testing.T) {
	vela := interpreter.NewInterpreter()
	program(t, vela, "mine(x:int):int { x }")

	list, ok := program(t, vela, "INTRINSICS()").(value.List)
	if !ok {
		t.Fatal("expected a list")
	}

	var sqrt, mine bool
	for _, elm := range list {
		switch {
		case elm.String() == "SQRT(X:REAL) : REAL":
			sqrt = true
		case strings.HasPrefix(elm.String(), "MINE"):
			mine = true
		}
	}
	if !sqrt {
		t.Errorf("expected SQRT among intrinsics")
	}
	if mine {
		t.Errorf("user-defined functions are not intrinsics")
	}
}

func TestHostFunctions(t *testing.T) {
	greet := &interpreter.FunctionExecutor{
		FuncName:   "GREET",
		Params:     []interpreter.Param{{Name: "who", Type: value.STRING}},
		ReturnType: value.STRING,
		HelpText:   "Greets someone.",
		Native: func(args []value.Operand) (value.Operand, error) {
			return value.String("hello " + args[0].String()), nil
		},
	}

	vela := interpreter.NewInterpreter(interpreter.WithHostFunctions(greet))

	result := program(t, vela, "greet(\"vela\")")
	if !value.Equal(result, value.String("hello vela")) {
		t.Errorf("expected \"hello vela\", got %s", value.Repr(result))
	}
}
