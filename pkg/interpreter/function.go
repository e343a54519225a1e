package interpreter

import (
	"strings"

	"vela/pkg/ast"
	"vela/pkg/stack"
	"vela/pkg/value"
)

// Param is a formal parameter of a function
type Param struct {
	Name string
	Type value.Type
}

// NativeFunc implements a function in Go. Arguments have already been
// converted to the declared parameter types; a nil result means no value.
type NativeFunc func(args []value.Operand) (value.Operand, error)

// FunctionExecutor is a named function or lambda, implemented either
// natively or by a VeLa body evaluated in its defining environment
type FunctionExecutor struct {
	FuncName    string     // empty for a lambda
	Params      []Param    // formal parameters, ignored when AnyParams is set
	AnyParams   bool       // accepts any number of parameters of any type
	ReturnType  value.Type // NONE when no value is returned
	Polymorphic bool       // returns a value whose type depends on the arguments
	HelpText    string
	Native      NativeFunc

	body    *ast.Node     // user-defined body
	closure []Environment // environment stack at definition, bottom first
}

func (f *FunctionExecutor) Name() string {
	return f.FuncName
}

func (f *FunctionExecutor) Help() string {
	return f.HelpText
}

// IsUserDefined reports whether the function was defined in VeLa code
func (f *FunctionExecutor) IsUserDefined() bool {
	return f.Native == nil
}

// String renders the signature, e.g. "HYPOT(X:REAL, Y:REAL) : REAL"
func (f *FunctionExecutor) String() string {
	var sb strings.Builder

	if f.FuncName == "" {
		sb.WriteString("λ")
	} else {
		sb.WriteString(canonical(f.FuncName))
	}

	sb.WriteByte('(')
	if f.AnyParams {
		sb.WriteString("ANY...")
	} else {
		for k, p := range f.Params {
			if k > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(canonical(p.Name))
			sb.WriteByte(':')
			sb.WriteString(p.Type.String())
		}
	}
	sb.WriteByte(')')

	if f.ReturnType != value.NONE {
		sb.WriteString(" : ")
		sb.WriteString(f.ReturnType.String())
	}

	return sb.String()
}

// conform checks the actual parameters against the formal ones, returning
// them converted to the declared types
func (f *FunctionExecutor) conform(args []value.Operand) ([]value.Operand, bool) {
	if f.AnyParams {
		return args, true
	}
	if len(args) != len(f.Params) {
		return nil, false
	}

	converted := make([]value.Operand, len(args))
	for k, p := range f.Params {
		v, ok := value.Convert(args[k], p.Type)
		if !ok {
			return nil, false
		}
		converted[k] = v
	}

	return converted, true
}

// checkResult converts a result to the declared return type
func (f *FunctionExecutor) checkResult(result value.Operand) (value.Operand, error) {
	switch {
	case f.Polymorphic:
		return result, nil

	case result != nil && f.ReturnType == value.NONE:
		return nil, evalErrorf("%s has no return type but a value of type %s was returned.", f, result.Type())

	case result != nil:
		converted, ok := value.Convert(result, f.ReturnType)
		if !ok {
			return nil, evalErrorf("The expected return type of %s does not match the actual return type of %s.",
				f, result.Type())
		}
		return converted, nil

	case f.ReturnType != value.NONE:
		return nil, evalErrorf("No value was returned by %s.", f)
	}

	return nil, nil
}

// executorOf extracts the function behind a FUNCTION operand
func executorOf(v value.Operand) (*FunctionExecutor, bool) {
	fn, ok := v.(value.Function)
	if !ok {
		return nil, false
	}

	f, ok := fn.Fn.(*FunctionExecutor)
	return f, ok && f != nil
}

// call applies f if it conforms to args; conforms is false otherwise
func (i *Interpreter) call(f *FunctionExecutor, args []value.Operand) (result value.Operand, conforms bool, err error) {
	converted, ok := f.conform(args)
	if !ok {
		return nil, false, nil
	}

	result, err = i.apply(f, converted)
	return result, true, err
}

// Apply calls a function value with the given arguments, failing if the
// function does not conform to them
func (i *Interpreter) Apply(fn value.Operand, args []value.Operand) (value.Operand, error) {
	f, ok := executorOf(fn)
	if !ok {
		return nil, evalErrorf("Expected a function, found %s", value.Repr(fn))
	}

	result, conforms, err := i.call(f, args)
	if !conforms {
		return nil, evalErrorf("Invalid parameters for function \"%s\"", f)
	}
	return result, err
}

// apply runs a function over already converted arguments
func (i *Interpreter) apply(f *FunctionExecutor, args []value.Operand) (value.Operand, error) {
	var result value.Operand
	var err error

	if f.Native != nil {
		result, err = f.Native(args)
	} else {
		result, err = i.applyUserDefined(f, args)
	}
	if err != nil {
		return nil, err
	}

	return f.checkResult(result)
}

// applyUserDefined evaluates the body in a fresh scope of parameter
// bindings pushed on top of the closure's environments
func (i *Interpreter) applyUserDefined(f *FunctionExecutor, args []value.Operand) (value.Operand, error) {
	if f.body == nil {
		return nil, nil
	}

	scope := NewScope(true)
	for k, p := range f.Params {
		scope.Bind(p.Name, args[k], false)
	}

	saved := i.environments
	i.environments = stack.NewStack(f.closure...)
	i.environments.Push(scope)
	defer func() { i.environments = saved }()

	depth := i.stack.Size()
	if err := i.eval(f.body); err != nil {
		return nil, err
	}

	return i.popResult(depth), nil
}

// callNamed resolves an overloaded name and applies the first conforming
// function; a FUNCTION bound to the name is applied when no function exists
func (i *Interpreter) callNamed(name string, args []value.Operand) (value.Operand, error) {
	if fns, ok := i.LookupFunctions(name); ok {
		for _, f := range fns {
			result, conforms, err := i.call(f, args)
			if conforms {
				return result, err
			}
		}

		var candidates strings.Builder
		for _, f := range fns {
			candidates.WriteString(" ")
			candidates.WriteString(f.String())
			candidates.WriteString("\n")
		}
		return nil, evalErrorf("Invalid parameters for function \"%s\":\n%s", name, candidates.String())
	}

	if v, ok := i.LookupBinding(name); ok {
		if _, isFunction := executorOf(v); !isFunction {
			return nil, evalErrorf("\"%s\" is bound to a value of type %s, not a function", name, v.Type())
		}
		return i.Apply(v, args)
	}

	return nil, evalErrorf("Unknown function \"%s\"", name)
}
