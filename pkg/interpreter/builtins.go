package interpreter

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"vela/pkg/value"
)

// initBindings adds the constant bindings of the root scope
func (i *Interpreter) initBindings() {
	i.root.Bind("Π", value.Real(math.Pi), true)
	i.root.Bind("PI", value.Real(math.Pi), true)
	i.root.Bind("E", value.Real(math.E), true)
}

// initFunctions registers the built-in library. Registration order is the
// order in which overloads are tried.
func (i *Interpreter) initFunctions() {
	// Special functions
	i.addEval()
	i.addExit()
	i.addHelp()
	i.addZeroArityFunctions()

	// I/O
	i.addIOProcedures()

	// String functions
	i.addFormatFunction()
	i.addChrFunction()
	i.addOrdFunction()

	// List functions
	i.addListFunctions()
	for _, t := range value.Types {
		if t != value.NONE {
			i.addListAppendFunction(t)
			i.addListReduceFunction(t)
		}
	}

	// Host tables
	for _, f := range mathFunctions() {
		i.AddFunction(f)
	}
	for _, f := range stringFunctions() {
		i.AddFunction(f)
	}
	i.addMatchesFunction()
	for _, f := range i.host {
		i.AddFunction(f)
	}
}

func (i *Interpreter) addEval() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "EVAL",
		Params:     []Param{{"code", value.STRING}},
		ReturnType: value.LIST,
		HelpText: "Compiles and evaluates a VeLa program given\n" +
			"in the supplied string, returning the empty list if\n" +
			"there is no result, or a single element list if\n" +
			"there is a result.",
		Native: func(args []value.Operand) (value.Operand, error) {
			result, err := i.Program(string(args[0].(value.String)))
			if err != nil {
				return nil, err
			}
			if result == nil {
				return value.EmptyList(), nil
			}
			return value.List{result}, nil
		},
	})
}

func (i *Interpreter) addExit() {
	i.AddFunction(&FunctionExecutor{
		FuncName: "EXIT",
		Params:   []Param{{"exitCode", value.INTEGER}},
		HelpText: "Exits the current program with the specified exit code.",
		Native: func(args []value.Operand) (value.Operand, error) {
			i.exit(int(args[0].(value.Integer)))
			return nil, nil
		},
	})
}

func (i *Interpreter) addHelp() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "HELP",
		AnyParams:  true,
		ReturnType: value.STRING,
		HelpText:   "Returns a help string given an arbitrary parameter.",
		Native: func(args []value.Operand) (value.Operand, error) {
			if len(args) == 0 {
				return nil, evalErrorf("One or more expression expected.")
			}

			var sb strings.Builder
			for _, arg := range args {
				if f, ok := executorOf(arg); ok {
					sb.WriteString(f.String())
					sb.WriteString("\n")
					if f.Help() != "" {
						sb.WriteString(f.Help())
						sb.WriteString("\n")
					}
				} else {
					sb.WriteString(arg.Type().String())
					sb.WriteString(" : ")
					sb.WriteString(arg.String())
					sb.WriteString("\n")
				}
				sb.WriteString("\n")
			}

			return value.String(sb.String()), nil
		},
	})
}

func (i *Interpreter) addZeroArityFunctions() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "TODAY",
		ReturnType: value.REAL,
		HelpText:   "Yields the Julian Day corresponding to the current year, month and day.",
		Native: func([]value.Operand) (value.Operand, error) {
			return value.Real(julianDay(i.clock())), nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "INTRINSICS",
		ReturnType: value.LIST,
		HelpText:   "Returns a list of intrinsic functions.",
		Native: func([]value.Operand) (value.Operand, error) {
			names := i.root.FunctionNames()
			sort.Strings(names)

			intrinsics := value.EmptyList()
			for _, name := range names {
				fns, _ := i.root.LookupFunctions(name)
				for _, f := range fns {
					if !f.IsUserDefined() {
						intrinsics = append(intrinsics, value.String(f.String()))
					}
				}
			}
			return intrinsics, nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "MILLISECONDS",
		ReturnType: value.INTEGER,
		HelpText:   "Returns the number of milliseconds between the current time and midnight, January 1, 1970 UTC",
		Native: func([]value.Operand) (value.Operand, error) {
			return value.Integer(i.clock().UnixMilli()), nil
		},
	})
}

// julianDay returns the Julian Day at 0h UT of the calendar date of t
func julianDay(t time.Time) float64 {
	year, month, day := t.Date()
	y, m := float64(year), float64(month)
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
}

func (i *Interpreter) addIOProcedures() {
	i.AddFunction(&FunctionExecutor{
		FuncName:  "PRINT",
		AnyParams: true,
		HelpText:  "Prints an arbitrary number of parameters (or none) to standard output.",
		Native: func(args []value.Operand) (value.Operand, error) {
			return nil, i.print(args, false)
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:  "PRINTLN",
		AnyParams: true,
		HelpText:  "Prints an arbitrary number of parameters (or none) to standard output, followed by a newline sequence.",
		Native: func(args []value.Operand) (value.Operand, error) {
			return nil, i.print(args, true)
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "NEXTCHAR",
		ReturnType: value.STRING,
		HelpText:   "Gets and returns the next character from standard input.",
		Native: func([]value.Operand) (value.Operand, error) {
			r, _, err := i.in.ReadRune()
			if err != nil {
				return value.String(""), nil
			}
			return value.String(string(r)), nil
		},
	})
}

func (i *Interpreter) print(args []value.Operand, eoln bool) error {
	for _, arg := range args {
		if _, err := io.WriteString(i.out, arg.String()); err != nil {
			return evalErrorf("print: %v", err)
		}
	}

	if eoln {
		if _, err := io.WriteString(i.out, "\n"); err != nil {
			return evalErrorf("print: %v", err)
		}
	}

	return nil
}

func (i *Interpreter) addFormatFunction() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "FORMAT",
		Params:     []Param{{"formatString", value.STRING}, {"valueList", value.LIST}},
		ReturnType: value.STRING,
		HelpText:   "Given a format string and a list of expressions, yields a formatted string.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[1].(value.List)
			values := make([]any, len(list))
			for k, v := range list {
				values[k] = value.ToGo(v)
			}

			format := strings.ReplaceAll(string(args[0].(value.String)), "%n", "\n")
			s, err := formatValues(format, values)
			if err != nil {
				return nil, err
			}
			return value.String(s), nil
		},
	})
}

// badVerb matches the markers fmt leaves for verbs that do not fit their arguments
var badVerb = regexp.MustCompile(`%!\w?\((MISSING|NOVERB|BADWIDTH|BADPREC|BADINDEX|[^)=]+=[^)]*)\)`)

// formatValues formats values, failing on a verb without a fitting argument.
// Surplus arguments are ignored.
func formatValues(format string, values []any) (string, error) {
	s := fmt.Sprintf(format, values...)

	if k := strings.LastIndex(s, "%!(EXTRA "); k >= 0 && !strings.Contains(format, "%!(EXTRA ") {
		s = s[:k]
	}
	if m := badVerb.FindString(s); m != "" && !strings.Contains(format, m) {
		return "", evalErrorf("FORMAT arguments do not match the format string: %s", m)
	}

	return s, nil
}

func (i *Interpreter) addChrFunction() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "CHR",
		Params:     []Param{{"ordinalValue", value.INTEGER}},
		ReturnType: value.STRING,
		HelpText:   "Returns a single character string given an ordinal value.",
		Native: func(args []value.Operand) (value.Operand, error) {
			ord := args[0].(value.Integer)
			if ord < 0 || ord > utf8.MaxRune {
				return value.String(""), nil
			}
			return value.String(string(rune(ord))), nil
		},
	})
}

func (i *Interpreter) addOrdFunction() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "ORD",
		Params:     []Param{{"character", value.STRING}},
		ReturnType: value.INTEGER,
		HelpText:   "Returns an ordinal value given a single character string.",
		Native: func(args []value.Operand) (value.Operand, error) {
			s := string(args[0].(value.String))
			if s == "" {
				return nil, evalErrorf("ORD expects a non-empty string")
			}
			r, _ := utf8.DecodeRuneInString(s)
			return value.Integer(r), nil
		},
	})
}

func (i *Interpreter) addMatchesFunction() {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "MATCHES",
		Params:     []Param{{"str", value.STRING}, {"regex", value.STRING}},
		ReturnType: value.BOOLEAN,
		Native: func(args []value.Operand) (value.Operand, error) {
			re, err := i.regex(string(args[1].(value.String)))
			if err != nil {
				return nil, err
			}
			return value.Boolean(re.MatchString(string(args[0].(value.String)))), nil
		},
	})
}
