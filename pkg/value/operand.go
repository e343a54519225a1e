package value

import (
	"math"
	"strconv"
	"strings"
)

// Operand is a dynamically-typed runtime value. The set of implementations is
// closed: None, Integer, Real, Boolean, String, List and Function.
type Operand interface {
	Type() Type
	// String renders the value the way PRINT shows it.
	String() string
	operand()
}

// Callable is implemented by anything a Function operand can refer to.
type Callable interface {
	Name() string
	String() string
	Help() string
}

type None struct{}

type Integer int64

type Real float64

type Boolean bool

type String string

type List []Operand

type Function struct {
	Fn Callable
}

func (None) Type() Type     { return NONE }
func (Integer) Type() Type  { return INTEGER }
func (Real) Type() Type     { return REAL }
func (Boolean) Type() Type  { return BOOLEAN }
func (String) Type() Type   { return STRING }
func (List) Type() Type     { return LIST }
func (Function) Type() Type { return FUNCTION }

func (None) operand()     {}
func (Integer) operand()  {}
func (Real) operand()     {}
func (Boolean) operand()  {}
func (String) operand()   {}
func (List) operand()     {}
func (Function) operand() {}

func (None) String() string { return "" }

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

func (r Real) String() string { return formatReal(float64(r)) }

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (s String) String() string { return string(s) }

// String renders the list with string elements quoted so nesting stays readable.
func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elm := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Repr(elm))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (f Function) String() string {
	if f.Fn == nil {
		return "<nil function>"
	}
	return f.Fn.String()
}

// Repr renders an operand as it would be written in source code.
func Repr(v Operand) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	if v == nil {
		return "<none>"
	}
	return v.String()
}

// EmptyList returns a fresh list with no elements.
func EmptyList() List {
	return List{}
}

// formatReal keeps a decimal point on integral values so reals stay
// distinguishable from integers when printed.
func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-7) {
		return strconv.FormatFloat(f, 'E', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
