package interpreter

import (
	"vela/pkg/ast"
	"vela/pkg/value"
)

// eval evaluates a node depth first, leaving its result, if any, on the
// operand stack
func (i *Interpreter) eval(node *ast.Node) error {
	if err := i.step(); err != nil {
		return err
	}

	if node.IsLiteral() {
		i.stack.Push(node.Operand)
		return nil
	}

	switch node.Op.Arity() {
	case 2:
		return i.evalBinary(node)
	case 1:
		return i.evalUnary(node)
	}

	switch node.Op {
	case ast.SYMBOL:
		return i.evalSymbol(node)
	case ast.LIST:
		return i.evalList(node)
	case ast.SEQUENCE:
		return i.evalSequence(node)
	case ast.BIND, ast.IS:
		return i.evalBind(node)
	case ast.FUNDEF:
		return i.evalFundef(node)
	case ast.FUNCALL:
		return i.evalFuncall(node)
	case ast.WHEN:
		return i.evalWhen(node)
	case ast.IF:
		return i.evalIf(node)
	case ast.WHILE:
		return i.evalWhile(node)
	default:
		return evalErrorf("Cannot evaluate %s", node.Op)
	}
}

// evalValue evaluates a node that must yield a value
func (i *Interpreter) evalValue(node *ast.Node, context string) (value.Operand, error) {
	depth := i.stack.Size()
	if err := i.eval(node); err != nil {
		return nil, err
	}

	v := i.popResult(depth)
	if v == nil {
		return nil, evalErrorf("No value for %s", context)
	}
	return v, nil
}

func (i *Interpreter) evalBinary(node *ast.Node) error {
	context := "'" + node.Op.Token() + "' operand"

	a, err := i.evalValue(node.Left(), context)
	if err != nil {
		return err
	}
	b, err := i.evalValue(node.Right(), context)
	if err != nil {
		return err
	}

	result, err := i.applyBinary(node.Op, a, b)
	if err != nil {
		return err
	}

	i.stack.Push(result)
	return nil
}

func (i *Interpreter) evalUnary(node *ast.Node) error {
	v, err := i.evalValue(node.Head(), "'"+node.Op.Token()+"' operand")
	if err != nil {
		return err
	}

	result, err := applyUnary(node.Op, v)
	if err != nil {
		return err
	}

	i.stack.Push(result)
	return nil
}

// evalSymbol pushes a binding or, failing that, the first function of that name
func (i *Interpreter) evalSymbol(node *ast.Node) error {
	if v, ok := i.LookupBinding(node.Token); ok {
		i.stack.Push(v)
		return nil
	}

	if fns, ok := i.LookupFunctions(node.Token); ok {
		i.stack.Push(value.Function{Fn: fns[0]})
		return nil
	}

	return evalErrorf("Unknown binding \"%s\"", node.Token)
}

// evalOperands evaluates nodes right to left and returns their values left to right
func (i *Interpreter) evalOperands(nodes []*ast.Node, context string) ([]value.Operand, error) {
	depth := i.stack.Size()
	for k := len(nodes) - 1; k >= 0; k-- {
		before := i.stack.Size()
		if err := i.eval(nodes[k]); err != nil {
			return nil, err
		}
		if i.stack.Size() == before {
			i.stack.Truncate(depth)
			return nil, evalErrorf("No value for %s %d", context, k+1)
		}
	}

	operands := make([]value.Operand, len(nodes))
	for k := range operands {
		operands[k], _ = i.stack.Pop()
	}
	return operands, nil
}

func (i *Interpreter) evalList(node *ast.Node) error {
	elements, err := i.evalOperands(node.Children, "list element")
	if err != nil {
		return err
	}

	i.stack.Push(value.List(elements))
	return nil
}

// evalSequence evaluates statements in order; only the last one's value is kept
func (i *Interpreter) evalSequence(node *ast.Node) error {
	depth := i.stack.Size()
	for _, child := range node.Children {
		i.stack.Truncate(depth)
		if err := i.eval(child); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) evalBind(node *ast.Node) error {
	name := node.Left().Token

	depth := i.stack.Size()
	if err := i.eval(node.Right()); err != nil {
		return err
	}

	v := i.popResult(depth)
	if v == nil {
		return evalErrorf("No value to bind to \"%s\"", name)
	}

	return i.Bind(name, v, node.Op == ast.IS)
}

// evalFundef registers a named function in the innermost scope or pushes a lambda
func (i *Interpreter) evalFundef(node *ast.Node) error {
	f := &FunctionExecutor{closure: i.environments.Array()}

	for k, child := range node.Children {
		switch child.Op {
		case ast.SYMBOL:
			if k == 0 {
				f.FuncName = child.Token
			}

		case ast.HELP_COMMENT:
			f.HelpText = child.Token

		case ast.PAIR:
			t, err := value.ParseType(child.Right().Token)
			if err != nil {
				return evalErrorf("Unknown type \"%s\" for parameter %s", child.Right().Token, child.Left().Token)
			}
			f.Params = append(f.Params, Param{Name: child.Left().Token, Type: t})

		case ast.TYPE:
			t, err := value.ParseType(child.Token)
			if err != nil {
				return evalErrorf("Unknown return type \"%s\"", child.Token)
			}
			f.ReturnType = t

		case ast.SEQUENCE:
			f.body = child
		}
	}

	if f.FuncName != "" {
		i.AddFunction(f)
	} else {
		i.stack.Push(value.Function{Fn: f})
	}

	return nil
}

// evalFuncall calls a named function or the function a callee expression yields
func (i *Interpreter) evalFuncall(node *ast.Node) error {
	args, err := i.evalOperands(node.Children[1:], "argument")
	if err != nil {
		return err
	}

	var result value.Operand
	if callee := node.Head(); callee.Op == ast.SYMBOL && !callee.IsLiteral() {
		result, err = i.callNamed(callee.Token, args)
	} else {
		var fn value.Operand
		if fn, err = i.evalValue(callee, "function call"); err != nil {
			return err
		}
		result, err = i.Apply(fn, args)
	}
	if err != nil {
		return err
	}

	if result != nil {
		i.stack.Push(result)
	}
	return nil
}

// evalCondition evaluates a condition that must yield a BOOLEAN
func (i *Interpreter) evalCondition(node *ast.Node, form string) (bool, error) {
	v, err := i.evalValue(node, form+" condition")
	if err != nil {
		return false, err
	}

	b, ok := v.(value.Boolean)
	if !ok {
		return false, evalErrorf("%s condition must be of type BOOLEAN, found %s", form, v.Type())
	}
	return bool(b), nil
}

func (i *Interpreter) evalWhen(node *ast.Node) error {
	for _, pair := range node.Children {
		ok, err := i.evalCondition(pair.Left(), "WHEN")
		if err != nil {
			return err
		}
		if ok {
			return i.eval(pair.Right())
		}
	}

	return nil
}

func (i *Interpreter) evalIf(node *ast.Node) error {
	ok, err := i.evalCondition(node.Head(), "IF")
	if err != nil {
		return err
	}

	if ok {
		return i.eval(node.Children[1])
	} else if len(node.Children) > 2 {
		return i.eval(node.Children[2])
	}

	return nil
}

// evalWhile runs the body until the condition is false, absent or not BOOLEAN
func (i *Interpreter) evalWhile(node *ast.Node) error {
	depth := i.stack.Size()
	for {
		if err := i.eval(node.Left()); err != nil {
			return err
		}

		cond, ok := i.popResult(depth).(value.Boolean)
		if !ok || !bool(cond) {
			return nil
		}

		if err := i.eval(node.Right()); err != nil {
			return err
		}
		i.stack.Truncate(depth)
	}
}
