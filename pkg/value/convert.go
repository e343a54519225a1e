package value

import (
	"fmt"
	"sort"
)

// Unify converts both operands to a common type where the language allows it:
// if exactly one is a string the other becomes its string form, otherwise an
// integer paired with a real is promoted. Composite operands are left alone.
func Unify(a, b Operand) (Operand, Operand) {
	if a.Type().IsComposite() || b.Type().IsComposite() {
		return a, b
	}

	switch {
	case a.Type() != STRING && b.Type() == STRING:
		return String(a.String()), b
	case a.Type() == STRING && b.Type() != STRING:
		return a, String(b.String())
	case a.Type() == INTEGER && b.Type() == REAL:
		return Real(a.(Integer)), b
	case a.Type() == REAL && b.Type() == INTEGER:
		return a, Real(b.(Integer))
	}

	return a, b
}

// Convert performs the coercions permitted when a value is bound to a typed
// name or returned from a typed function. ok is false when no conversion
// preserves the target type.
func Convert(v Operand, target Type) (Operand, bool) {
	if v.Type() == target {
		return v, true
	}

	if i, isInt := v.(Integer); isInt && target == REAL {
		return Real(i), true
	}

	return v, false
}

// Equal reports whether two operands have the same type and value. Lists are
// compared element by element; functions by identity.
func Equal(a, b Operand) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case List:
		y := b.(List)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Function:
		return x.Fn == b.(Function).Fn
	default:
		return a == b
	}
}

// Contains reports whether the list holds an element equal to v.
func (l List) Contains(v Operand) bool {
	for _, elm := range l {
		if Equal(elm, v) {
			return true
		}
	}
	return false
}

// FromGo converts decoded data (YAML, JSON or host values) into an operand.
func FromGo(x any) (Operand, error) {
	switch v := x.(type) {
	case nil:
		return None{}, nil
	case Operand:
		return v, nil
	case int:
		return Integer(v), nil
	case int32:
		return Integer(v), nil
	case int64:
		return Integer(v), nil
	case uint:
		return Integer(v), nil
	case uint64:
		return Integer(v), nil
	case float32:
		return Real(v), nil
	case float64:
		return Real(v), nil
	case bool:
		return Boolean(v), nil
	case string:
		return String(v), nil
	case []any:
		list := make(List, 0, len(v))
		for _, elm := range v {
			o, err := FromGo(elm)
			if err != nil {
				return nil, err
			}
			list = append(list, o)
		}
		return list, nil
	case []float64:
		list := make(List, len(v))
		for i, f := range v {
			list[i] = Real(f)
		}
		return list, nil
	case map[string]any:
		// maps have no operand type; keep them as a list of [key, value] pairs
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		list := make(List, 0, len(v))
		for _, k := range keys {
			o, err := FromGo(v[k])
			if err != nil {
				return nil, err
			}
			list = append(list, List{String(k), o})
		}
		return list, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to an operand", x)
	}
}

// ToGo converts an operand into plain Go data, the inverse of FromGo.
func ToGo(v Operand) any {
	switch x := v.(type) {
	case Integer:
		return int64(x)
	case Real:
		return float64(x)
	case Boolean:
		return bool(x)
	case String:
		return string(x)
	case List:
		out := make([]any, len(x))
		for i, elm := range x {
			out[i] = ToGo(elm)
		}
		return out
	case Function:
		return x.Fn
	default:
		return nil
	}
}
