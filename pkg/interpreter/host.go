package interpreter

import (
	"math"
	"math/rand"
	"strings"
	"unicode/utf8"

	"vela/pkg/value"
)

func realUnary(name string, fn func(float64) float64) *FunctionExecutor {
	return &FunctionExecutor{
		FuncName:   name,
		Params:     []Param{{"x", value.REAL}},
		ReturnType: value.REAL,
		Native: func(args []value.Operand) (value.Operand, error) {
			return value.Real(fn(float64(args[0].(value.Real)))), nil
		},
	}
}

func realBinary(name string, fn func(float64, float64) float64) *FunctionExecutor {
	return &FunctionExecutor{
		FuncName:   name,
		Params:     []Param{{"x", value.REAL}, {"y", value.REAL}},
		ReturnType: value.REAL,
		Native: func(args []value.Operand) (value.Operand, error) {
			return value.Real(fn(float64(args[0].(value.Real)), float64(args[1].(value.Real)))), nil
		},
	}
}

func integerBinary(name string, fn func(int64, int64) int64) *FunctionExecutor {
	return &FunctionExecutor{
		FuncName:   name,
		Params:     []Param{{"a", value.INTEGER}, {"b", value.INTEGER}},
		ReturnType: value.INTEGER,
		Native: func(args []value.Operand) (value.Operand, error) {
			return value.Integer(fn(int64(args[0].(value.Integer)), int64(args[1].(value.Integer)))), nil
		},
	}
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // zero and NaN
}

// mathFunctions returns the numeric host library. Integer overloads come
// first so that integer arguments keep their type.
func mathFunctions() []*FunctionExecutor {
	return []*FunctionExecutor{
		{
			FuncName:   "ABS",
			Params:     []Param{{"a", value.INTEGER}},
			ReturnType: value.INTEGER,
			Native: func(args []value.Operand) (value.Operand, error) {
				n := args[0].(value.Integer)
				if n < 0 {
					return -n, nil
				}
				return n, nil
			},
		},
		realUnary("ABS", math.Abs),
		realUnary("SQRT", math.Sqrt),
		realUnary("CBRT", math.Cbrt),
		realUnary("SIN", math.Sin),
		realUnary("COS", math.Cos),
		realUnary("TAN", math.Tan),
		realUnary("ASIN", math.Asin),
		realUnary("ACOS", math.Acos),
		realUnary("ATAN", math.Atan),
		realBinary("ATAN2", math.Atan2),
		realUnary("SINH", math.Sinh),
		realUnary("COSH", math.Cosh),
		realUnary("TANH", math.Tanh),
		realUnary("EXP", math.Exp),
		realUnary("LOG", math.Log),
		realUnary("LOG10", math.Log10),
		realUnary("CEIL", math.Ceil),
		realUnary("FLOOR", math.Floor),
		realUnary("RINT", math.RoundToEven),
		realUnary("SIGNUM", signum),
		realBinary("HYPOT", math.Hypot),
		realBinary("POW", math.Pow),
		integerBinary("MIN", func(a, b int64) int64 { return min(a, b) }),
		realBinary("MIN", math.Min),
		integerBinary("MAX", func(a, b int64) int64 { return max(a, b) }),
		realBinary("MAX", math.Max),
		realUnary("TORADIANS", func(x float64) float64 { return x * math.Pi / 180 }),
		realUnary("TODEGREES", func(x float64) float64 { return x * 180 / math.Pi }),
		{
			FuncName:   "RANDOM",
			ReturnType: value.REAL,
			Native: func([]value.Operand) (value.Operand, error) {
				return value.Real(rand.Float64()), nil
			},
		},
	}
}

// stringArgs unpacks native arguments that are all strings
func stringArgs(args []value.Operand) []string {
	ss := make([]string, len(args))
	for k, arg := range args {
		ss[k] = string(arg.(value.String))
	}
	return ss
}

func stringParams(names ...string) []Param {
	params := make([]Param, len(names))
	for k, name := range names {
		params[k] = Param{name, value.STRING}
	}
	return params
}

func stringFunction(name string, params []Param, ret value.Type, fn func(args []value.Operand) value.Operand) *FunctionExecutor {
	return &FunctionExecutor{
		FuncName:   name,
		Params:     params,
		ReturnType: ret,
		Native: func(args []value.Operand) (value.Operand, error) {
			return fn(args), nil
		},
	}
}

// runeIndex converts a byte offset into a character offset; -1 stays -1
func runeIndex(s string, byteIndex int) value.Integer {
	if byteIndex < 0 {
		return -1
	}
	return value.Integer(utf8.RuneCountInString(s[:byteIndex]))
}

// substring returns the characters in [begin, end), clamped to the string
func substring(s string, begin, end value.Integer) value.String {
	runes := []rune(s)
	n := value.Integer(len(runes))
	begin = max(0, min(begin, n))
	end = max(begin, min(end, n))
	return value.String(runes[begin:end])
}

// stringFunctions returns the string host library. Character positions
// count runes, not bytes.
func stringFunctions() []*FunctionExecutor {
	return []*FunctionExecutor{
		stringFunction("LENGTH", stringParams("str"), value.INTEGER, func(args []value.Operand) value.Operand {
			return value.Integer(utf8.RuneCountInString(stringArgs(args)[0]))
		}),
		stringFunction("TOUPPERCASE", stringParams("str"), value.STRING, func(args []value.Operand) value.Operand {
			return value.String(strings.ToUpper(stringArgs(args)[0]))
		}),
		stringFunction("TOLOWERCASE", stringParams("str"), value.STRING, func(args []value.Operand) value.Operand {
			return value.String(strings.ToLower(stringArgs(args)[0]))
		}),
		stringFunction("TRIM", stringParams("str"), value.STRING, func(args []value.Operand) value.Operand {
			return value.String(strings.TrimSpace(stringArgs(args)[0]))
		}),
		stringFunction("CONTAINS", stringParams("str", "substr"), value.BOOLEAN, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.Boolean(strings.Contains(ss[0], ss[1]))
		}),
		stringFunction("STARTSWITH", stringParams("str", "prefix"), value.BOOLEAN, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.Boolean(strings.HasPrefix(ss[0], ss[1]))
		}),
		stringFunction("ENDSWITH", stringParams("str", "suffix"), value.BOOLEAN, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.Boolean(strings.HasSuffix(ss[0], ss[1]))
		}),
		stringFunction("INDEXOF", stringParams("str", "substr"), value.INTEGER, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return runeIndex(ss[0], strings.Index(ss[0], ss[1]))
		}),
		stringFunction("LASTINDEXOF", stringParams("str", "substr"), value.INTEGER, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return runeIndex(ss[0], strings.LastIndex(ss[0], ss[1]))
		}),
		stringFunction("SUBSTRING", []Param{{"str", value.STRING}, {"beginIndex", value.INTEGER}}, value.STRING,
			func(args []value.Operand) value.Operand {
				return substring(string(args[0].(value.String)), args[1].(value.Integer), math.MaxInt64)
			}),
		stringFunction("SUBSTRING", []Param{{"str", value.STRING}, {"beginIndex", value.INTEGER}, {"endIndex", value.INTEGER}}, value.STRING,
			func(args []value.Operand) value.Operand {
				return substring(string(args[0].(value.String)), args[1].(value.Integer), args[2].(value.Integer))
			}),
		stringFunction("REPLACE", stringParams("str", "target", "replacement"), value.STRING, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.String(strings.ReplaceAll(ss[0], ss[1], ss[2]))
		}),
		stringFunction("ISEMPTY", stringParams("str"), value.BOOLEAN, func(args []value.Operand) value.Operand {
			return value.Boolean(stringArgs(args)[0] == "")
		}),
		stringFunction("REPEAT", []Param{{"str", value.STRING}, {"count", value.INTEGER}}, value.STRING,
			func(args []value.Operand) value.Operand {
				return value.String(strings.Repeat(string(args[0].(value.String)), max(0, int(args[1].(value.Integer)))))
			}),
		stringFunction("CONCAT", stringParams("str", "other"), value.STRING, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.String(ss[0] + ss[1])
		}),
		stringFunction("EQUALSIGNORECASE", stringParams("str", "other"), value.BOOLEAN, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.Boolean(strings.EqualFold(ss[0], ss[1]))
		}),
		stringFunction("COMPARETO", stringParams("str", "other"), value.INTEGER, func(args []value.Operand) value.Operand {
			ss := stringArgs(args)
			return value.Integer(strings.Compare(ss[0], ss[1]))
		}),
	}
}
