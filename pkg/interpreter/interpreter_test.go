package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vela/pkg/value"
)

func TestStepBudget(t *testing.T) {
	vela := NewInterpreter(WithMaxSteps(50))

	_, err := vela.Program("while true { }")
	if !errors.Is(err, ErrMaxStepsExceeded) {
		t.Fatalf("expected ErrMaxStepsExceeded, got %v", err)
	}

	// the budget applies per entry point
	result, err := vela.Program("1 + 1")
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(result, value.Integer(2)) {
		t.Errorf("expected 2, got %s", value.Repr(result))
	}
	if vela.stack.Size() != 0 {
		t.Errorf("operand stack should be empty, has %d values", vela.stack.Size())
	}
}

func TestInterrupt(t *testing.T) {
	var vela *Interpreter
	stop := &FunctionExecutor{
		FuncName: "STOP",
		Native: func([]value.Operand) (value.Operand, error) {
			vela.Interrupt()
			return nil, nil
		},
	}
	vela = NewInterpreter(WithHostFunctions(stop))

	_, err := vela.Program("STOP() while true { }")
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}

	if _, err := vela.Program("1"); err != nil {
		t.Errorf("interrupt should be cleared after the entry point returns: %v", err)
	}
}

func TestRecordEnvironment(t *testing.T) {
	vela := NewInterpreter()
	vela.PushEnvironment(NewRecordEnvironment(map[string]value.Operand{
		"mag":  value.Real(5.2),
		"band": value.String("V"),
	}))

	ok, err := vela.BooleanExpression("MAG > 4 and band = \"V\"")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("expected the record to match")
	}

	_, err = vela.Program("extra <- 1")
	if err == nil || !strings.Contains(err.Error(), "immutable") {
		t.Errorf("expected an immutable environment error, got %v", err)
	}

	if _, ok := vela.PopEnvironment(); !ok {
		t.Fatal("expected to pop the record environment")
	}
	if _, ok := vela.PopEnvironment(); ok {
		t.Errorf("the root scope must never be popped")
	}
	if _, err := vela.Expression("mag"); err == nil {
		t.Errorf("record fields should be gone after popping")
	}
}

func TestBindSkipsImmutableEnvironments(t *testing.T) {
	vela := NewInterpreter()
	if _, err := vela.Program("count <- 1"); err != nil {
		t.Fatal(err)
	}

	vela.PushEnvironment(NewRecordEnvironment(map[string]value.Operand{"mag": value.Real(1)}))
	defer vela.PopEnvironment()

	if _, err := vela.Program("count <- count + 1"); err != nil {
		t.Fatal(err)
	}
	if v, _ := vela.root.Lookup("count"); !value.Equal(v, value.Integer(2)) {
		t.Errorf("expected count = 2 in the root scope, got %s", value.Repr(v))
	}
}

func TestSourceDirs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"lib.vl":     "triple(x:int):int { x * 3 }",
		"more.vela":  "ten is 10",
		"broken.vl":  "x <- (",
		"ignored.md": "not VeLa",
	}
	for name, code := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(code), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	vela := NewInterpreter(WithSourceDirs(dir, filepath.Join(dir, "missing")))

	result, err := vela.Expression("triple(ten)")
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(result, value.Integer(30)) {
		t.Errorf("expected 30, got %s", value.Repr(result))
	}
}

func TestProgramFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.vl")
	if err := os.WriteFile(path, []byte("x <- 20\nx + 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := NewInterpreter().ProgramFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(result, value.Integer(21)) {
		t.Errorf("expected 21, got %s", value.Repr(result))
	}

	if _, err := NewInterpreter().ProgramFile(path + ".missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a wrapped not-exist error, got %v", err)
	}
}

func TestCaches(t *testing.T) {
	vela := NewInterpreter()

	for _, src := range []string{"\"ab\" =~ \"a.\"", "  \"ab\" =~ \"a.\"\n"} {
		if _, err := vela.Program(src); err != nil {
			t.Fatal(err)
		}
	}

	if len(vela.programs) != 1 {
		t.Errorf("expected one cached program, got %d", len(vela.programs))
	}
	if len(vela.regexes) != 1 {
		t.Errorf("expected one cached regex, got %d", len(vela.regexes))
	}

	if _, err := vela.Expression("1"); err != nil {
		t.Fatal(err)
	}
	if len(vela.expressions) != 1 {
		t.Errorf("expressions should have their own cache, got %d entries", len(vela.expressions))
	}
}

func TestJulianDay(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected float64
	}{
		{time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 2451544.5},
		{time.Date(1987, time.June, 19, 12, 0, 0, 0, time.UTC), 2446965.5},
		{time.Date(1957, time.October, 4, 19, 26, 0, 0, time.UTC), 2436115.5},
		{time.Date(1988, time.February, 29, 0, 0, 0, 0, time.UTC), 2447220.5},
	}

	for _, test := range tests {
		if got := julianDay(test.date); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.date.Format(time.DateOnly), test.expected, got)
		}
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		f        *FunctionExecutor
		expected string
	}{
		{&FunctionExecutor{FuncName: "hypot", Params: []Param{{"x", value.REAL}, {"y", value.REAL}}, ReturnType: value.REAL},
			"HYPOT(X:REAL, Y:REAL) : REAL"},
		{&FunctionExecutor{FuncName: "print", AnyParams: true}, "PRINT(ANY...)"},
		{&FunctionExecutor{Params: []Param{{"n", value.INTEGER}}}, "λ(N:INTEGER)"},
	}

	for _, test := range tests {
		if got := test.f.String(); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}
}

func TestScopeIsCaseInsensitive(t *testing.T) {
	scope := NewScope(true)
	scope.Bind("μag", value.Integer(1), false)

	if v, ok := scope.Lookup("ΜAG"); !ok || !value.Equal(v, value.Integer(1)) {
		t.Errorf("expected ΜAG to find μag, got %s", value.Repr(v))
	}

	if v, ok := scope.Lookup("μAG"); !ok || !value.Equal(v, value.Integer(1)) {
		t.Errorf("repeated lookups should fold the same way, got %s", value.Repr(v))
	}

	scope.AddFunction(&FunctionExecutor{FuncName: "f"})
	scope.AddFunction(&FunctionExecutor{FuncName: "F", Params: []Param{{"x", value.INTEGER}}})
	if fns, _ := scope.LookupFunctions("f"); len(fns) != 2 {
		t.Errorf("expected two overloads, got %d", len(fns))
	}
}
