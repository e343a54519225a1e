package interpreter

import (
	"math"
	"regexp"
	"strings"

	"vela/pkg/ast"
	"vela/pkg/value"
)

// operandTypes lists the operand types each binary operator accepts
var operandTypes = map[ast.Operation][]value.Type{
	ast.ADD:                   {value.INTEGER, value.REAL, value.STRING},
	ast.SUB:                   {value.INTEGER, value.REAL},
	ast.MUL:                   {value.INTEGER, value.REAL},
	ast.DIV:                   {value.INTEGER, value.REAL},
	ast.POW:                   {value.INTEGER, value.REAL},
	ast.AND:                   {value.BOOLEAN, value.INTEGER},
	ast.XOR:                   {value.BOOLEAN, value.INTEGER},
	ast.OR:                    {value.BOOLEAN, value.INTEGER},
	ast.EQUAL:                 {value.BOOLEAN, value.INTEGER, value.REAL, value.STRING},
	ast.NOT_EQUAL:             {value.BOOLEAN, value.INTEGER, value.REAL, value.STRING},
	ast.GREATER_THAN:          {value.INTEGER, value.REAL, value.STRING},
	ast.LESS_THAN:             {value.INTEGER, value.REAL, value.STRING},
	ast.GREATER_THAN_OR_EQUAL: {value.INTEGER, value.REAL, value.STRING},
	ast.LESS_THAN_OR_EQUAL:    {value.INTEGER, value.REAL, value.STRING},
	ast.APPROXIMATELY_EQUAL:   {value.STRING},
	ast.IN:                    {value.LIST, value.STRING},
	ast.SHL:                   {value.INTEGER},
	ast.SHR:                   {value.INTEGER},
}

// applyBinary applies a binary operator, broadcasting over lists
func (i *Interpreter) applyBinary(op ast.Operation, a, b value.Operand) (value.Operand, error) {
	if a.Type() == value.LIST || b.Type() == value.LIST {
		return i.applyListOperation(op, a, b)
	}

	a, b = value.Unify(a, b)

	if op == ast.IN {
		if b.Type() != value.STRING {
			return nil, evalErrorf("The second operand must be of type list or string for 'in' operation")
		}
		x, ok := a.(value.String)
		if !ok {
			return nil, operatorError(op, value.STRING)
		}
		return value.Boolean(strings.Contains(string(b.(value.String)), string(x))), nil
	}

	if a.Type() != b.Type() {
		return nil, operatorError(op, operandTypes[op]...)
	}

	switch x := a.(type) {
	case value.Integer:
		return integerOperation(op, x, b.(value.Integer))
	case value.Real:
		return realOperation(op, x, b.(value.Real))
	case value.Boolean:
		return booleanOperation(op, x, b.(value.Boolean))
	case value.String:
		return i.stringOperation(op, x, b.(value.String))
	default:
		return nil, operatorError(op, operandTypes[op]...)
	}
}

// applyListOperation handles IN membership and elementwise broadcasting
func (i *Interpreter) applyListOperation(op ast.Operation, a, b value.Operand) (value.Operand, error) {
	if op == ast.IN {
		switch y := b.(type) {
		case value.List:
			return value.Boolean(y.Contains(a)), nil
		case value.String:
			if x, ok := a.(value.String); ok {
				return value.Boolean(strings.Contains(string(y), string(x))), nil
			}
		}
		return nil, evalErrorf("The second operand must be of type list or string for 'in' operation")
	}

	xs, aIsList := a.(value.List)
	ys, bIsList := b.(value.List)

	switch {
	case aIsList && bIsList:
		if len(xs) != len(ys) {
			return nil, evalErrorf("Lists must be of equal length for '%s' operation", op.Token())
		}
		result := make(value.List, len(xs))
		for k := range xs {
			r, err := i.applyBinary(op, xs[k], ys[k])
			if err != nil {
				return nil, err
			}
			result[k] = r
		}
		return result, nil

	case bIsList:
		result := make(value.List, len(ys))
		for k := range ys {
			r, err := i.applyBinary(op, a, ys[k])
			if err != nil {
				return nil, err
			}
			result[k] = r
		}
		return result, nil

	default:
		result := make(value.List, len(xs))
		for k := range xs {
			r, err := i.applyBinary(op, xs[k], b)
			if err != nil {
				return nil, err
			}
			result[k] = r
		}
		return result, nil
	}
}

func integerOperation(op ast.Operation, a, b value.Integer) (value.Operand, error) {
	switch op {
	case ast.ADD:
		return a + b, nil
	case ast.SUB:
		return a - b, nil
	case ast.MUL:
		return a * b, nil
	case ast.DIV:
		if b == 0 {
			return nil, evalErrorf("%s/%s: division by zero error", a, b)
		}
		return a / b, nil
	case ast.POW:
		return integerPower(a, b)
	case ast.AND:
		return a & b, nil
	case ast.XOR:
		return a ^ b, nil
	case ast.OR:
		return a | b, nil
	case ast.EQUAL:
		return value.Boolean(a == b), nil
	case ast.NOT_EQUAL:
		return value.Boolean(a != b), nil
	case ast.GREATER_THAN:
		return value.Boolean(a > b), nil
	case ast.LESS_THAN:
		return value.Boolean(a < b), nil
	case ast.GREATER_THAN_OR_EQUAL:
		return value.Boolean(a >= b), nil
	case ast.LESS_THAN_OR_EQUAL:
		return value.Boolean(a <= b), nil
	case ast.SHL:
		return a << (uint(b) & 63), nil
	case ast.SHR:
		return a >> (uint(b) & 63), nil
	default:
		return nil, operatorError(op, operandTypes[op]...)
	}
}

// integerPower computes a^n by squaring; overflow wraps
func integerPower(a, n value.Integer) (value.Operand, error) {
	if n < 0 {
		return nil, evalErrorf("'^' expects a non-negative exponent for INTEGER values, found %s", n)
	}

	result := value.Integer(1)
	for n > 0 {
		if n&1 == 1 {
			result *= a
		}
		a *= a
		n >>= 1
	}
	return result, nil
}

func realOperation(op ast.Operation, a, b value.Real) (value.Operand, error) {
	switch op {
	case ast.ADD:
		return a + b, nil
	case ast.SUB:
		return a - b, nil
	case ast.MUL:
		return a * b, nil
	case ast.DIV:
		result := a / b
		if math.IsInf(float64(result), 0) {
			return nil, evalErrorf("%s/%s: division by zero error", a, b)
		}
		return result, nil
	case ast.POW:
		return value.Real(math.Pow(float64(a), float64(b))), nil
	case ast.EQUAL:
		return value.Boolean(a == b), nil
	case ast.NOT_EQUAL:
		return value.Boolean(a != b), nil
	case ast.GREATER_THAN:
		return value.Boolean(a > b), nil
	case ast.LESS_THAN:
		return value.Boolean(a < b), nil
	case ast.GREATER_THAN_OR_EQUAL:
		return value.Boolean(a >= b), nil
	case ast.LESS_THAN_OR_EQUAL:
		return value.Boolean(a <= b), nil
	default:
		return nil, operatorError(op, operandTypes[op]...)
	}
}

func booleanOperation(op ast.Operation, a, b value.Boolean) (value.Operand, error) {
	switch op {
	case ast.AND:
		return a && b, nil
	case ast.XOR:
		return value.Boolean(a != b), nil
	case ast.OR:
		return a || b, nil
	case ast.EQUAL:
		return value.Boolean(a == b), nil
	case ast.NOT_EQUAL:
		return value.Boolean(a != b), nil
	default:
		return nil, operatorError(op, operandTypes[op]...)
	}
}

func (i *Interpreter) stringOperation(op ast.Operation, a, b value.String) (value.Operand, error) {
	switch op {
	case ast.ADD:
		return a + b, nil
	case ast.EQUAL:
		return value.Boolean(a == b), nil
	case ast.NOT_EQUAL:
		return value.Boolean(a != b), nil
	case ast.GREATER_THAN:
		return value.Boolean(a > b), nil
	case ast.LESS_THAN:
		return value.Boolean(a < b), nil
	case ast.GREATER_THAN_OR_EQUAL:
		return value.Boolean(a >= b), nil
	case ast.LESS_THAN_OR_EQUAL:
		return value.Boolean(a <= b), nil
	case ast.APPROXIMATELY_EQUAL:
		re, err := i.regex(string(b))
		if err != nil {
			return nil, err
		}
		return value.Boolean(re.MatchString(string(a))), nil
	default:
		return nil, operatorError(op, operandTypes[op]...)
	}
}

// regex compiles a whole-string match pattern, caching it per interpreter
func (i *Interpreter) regex(pattern string) (*regexp.Regexp, error) {
	if re, ok := i.regexes[pattern]; ok {
		return re, nil
	}

	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, evalErrorf("Invalid regular expression %q: %v", pattern, err)
	}

	i.regexes[pattern] = re
	return re, nil
}

// applyUnary applies NEG or NOT, elementwise over lists
func applyUnary(op ast.Operation, v value.Operand) (value.Operand, error) {
	switch x := v.(type) {
	case value.List:
		result := make(value.List, len(x))
		for k, elm := range x {
			if elm.Type() == value.LIST {
				return nil, unaryError(op, false)
			}
			r, err := applyUnary(op, elm)
			if err != nil {
				return nil, unaryError(op, false)
			}
			result[k] = r
		}
		return result, nil

	case value.Integer:
		if op == ast.NEG {
			return -x, nil
		}
		return ^x, nil

	case value.Real:
		if op == ast.NEG {
			return -x, nil
		}

	case value.Boolean:
		if op == ast.NOT {
			return !x, nil
		}
	}

	return nil, unaryError(op, true)
}

func unaryError(op ast.Operation, allowList bool) error {
	types := []value.Type{value.INTEGER, value.REAL}
	if op == ast.NOT {
		types = []value.Type{value.INTEGER, value.BOOLEAN}
	}
	if allowList {
		types = append(types, value.LIST)
	}

	return operatorError(op, types...)
}
