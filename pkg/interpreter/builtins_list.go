package interpreter

import (
	"vela/pkg/value"
)

func (i *Interpreter) addListFunctions() {
	i.AddFunction(&FunctionExecutor{
		FuncName:    "HEAD",
		Params:      []Param{{"aList", value.LIST}},
		Polymorphic: true,
		HelpText:    "Returns the head of a list or the empty list if the list is empty.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[0].(value.List)
			if len(list) == 0 {
				return value.EmptyList(), nil
			}
			return list[0], nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "TAIL",
		Params:     []Param{{"aList", value.LIST}},
		ReturnType: value.LIST,
		HelpText:   "Returns the tail of a list or the empty list if the list is empty.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[0].(value.List)
			if len(list) == 0 {
				return value.EmptyList(), nil
			}
			return append(value.List{}, list[1:]...), nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:    "NTH",
		Params:      []Param{{"aList", value.LIST}, {"index", value.INTEGER}},
		Polymorphic: true,
		HelpText:    "Returns the nth element of a list or the empty list if the list is empty.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[0].(value.List)
			index := args[1].(value.Integer)
			if len(list) == 0 {
				return value.EmptyList(), nil
			}
			if index < 0 || int64(index) >= int64(len(list)) {
				return nil, evalErrorf("NTH index %d out of range for list of length %d", index, len(list))
			}
			return list[index], nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "LENGTH",
		Params:     []Param{{"aList", value.LIST}},
		ReturnType: value.INTEGER,
		HelpText:   "Returns the length of a list.",
		Native: func(args []value.Operand) (value.Operand, error) {
			return value.Integer(len(args[0].(value.List))), nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "CONCAT",
		Params:     []Param{{"aList", value.LIST}, {"anotherList", value.LIST}},
		ReturnType: value.LIST,
		HelpText:   "Returns the concatenation of two lists.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := append(value.List{}, args[0].(value.List)...)
			return append(list, args[1].(value.List)...), nil
		},
	})

	i.addSeqFunctions()

	i.AddFunction(&FunctionExecutor{
		FuncName:   "MAP",
		Params:     []Param{{"unaryFunction", value.FUNCTION}, {"aList", value.LIST}},
		ReturnType: value.LIST,
		HelpText:   "Applies a function to each element of a list and returns a corresponding list.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[1].(value.List)
			result := make(value.List, 0, len(list))
			for _, item := range list {
				r, err := i.Apply(args[0], []value.Operand{item})
				if err != nil {
					return nil, err
				}
				if r == nil {
					return nil, evalErrorf("Expected function result")
				}
				result = append(result, r)
			}
			return result, nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "FILTER",
		Params:     []Param{{"predicate", value.FUNCTION}, {"aList", value.LIST}},
		ReturnType: value.LIST,
		HelpText: "Applies a function (predicate) to each element of a list and returns\n" +
			"the subset of those elements that satisfy the predicate.",
		Native: func(args []value.Operand) (value.Operand, error) {
			result := value.EmptyList()
			for _, item := range args[1].(value.List) {
				ok, err := i.predicate(args[0], item)
				if err != nil {
					return nil, err
				}
				if ok {
					result = append(result, item)
				}
			}
			return result, nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "FIND",
		Params:     []Param{{"unaryFunction", value.FUNCTION}, {"aList", value.LIST}},
		ReturnType: value.INTEGER,
		HelpText: "Return the index of the first element of a list matching a\n" +
			"predicate applied to a list element, else -1",
		Native: func(args []value.Operand) (value.Operand, error) {
			for k, item := range args[1].(value.List) {
				ok, err := i.predicate(args[0], item)
				if err != nil {
					return nil, err
				}
				if ok {
					return value.Integer(k), nil
				}
			}
			return value.Integer(-1), nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "PAIRWISEFIND",
		Params:     []Param{{"binaryFunction", value.FUNCTION}, {"aList", value.LIST}, {"step", value.INTEGER}},
		ReturnType: value.INTEGER,
		HelpText: "Return the index of the first element of a list matching a\n" +
			"predicate applied to two list elements, else -1",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := args[1].(value.List)
			step := int(args[2].(value.Integer))
			if step <= 0 {
				return nil, evalErrorf("PAIRWISEFIND expects a positive step, found %d", step)
			}

			for k := 0; k < len(list)-1; k += step {
				ok, err := i.predicate(args[0], list[k], list[k+1])
				if err != nil {
					return nil, err
				}
				if ok {
					return value.Integer(k), nil
				}
			}
			return value.Integer(-1), nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName: "FOR",
		Params:   []Param{{"unaryFunction", value.FUNCTION}, {"aList", value.LIST}},
		HelpText: "Invokes a function on each element of a list.",
		Native: func(args []value.Operand) (value.Operand, error) {
			for _, item := range args[1].(value.List) {
				if _, err := i.Apply(args[0], []value.Operand{item}); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	})
}

// predicate applies a function that must yield a BOOLEAN
func (i *Interpreter) predicate(fn value.Operand, args ...value.Operand) (bool, error) {
	r, err := i.Apply(fn, args)
	if err != nil {
		return false, err
	}

	b, ok := r.(value.Boolean)
	if !ok {
		return false, evalErrorf("Expected boolean value")
	}
	return bool(b), nil
}

func (i *Interpreter) addSeqFunctions() {
	help := "Returns a list which is the sequence of the (inclusive) range\n" +
		"specified by the first and second parameters,\n" +
		"combined with the step, specified by the third parameter."

	i.AddFunction(&FunctionExecutor{
		FuncName:   "SEQ",
		Params:     []Param{{"first", value.INTEGER}, {"last", value.INTEGER}, {"step", value.INTEGER}},
		ReturnType: value.LIST,
		HelpText:   help,
		Native: func(args []value.Operand) (value.Operand, error) {
			first, last, step := args[0].(value.Integer), args[1].(value.Integer), args[2].(value.Integer)
			if step <= 0 {
				return nil, evalErrorf("SEQ expects a positive step, found %s", step)
			}

			result := value.EmptyList()
			for n := first; n <= last; n += step {
				result = append(result, n)
				if n > last-step {
					break
				}
			}
			return result, nil
		},
	})

	i.AddFunction(&FunctionExecutor{
		FuncName:   "SEQ",
		Params:     []Param{{"first", value.REAL}, {"last", value.REAL}, {"step", value.REAL}},
		ReturnType: value.LIST,
		HelpText:   help,
		Native: func(args []value.Operand) (value.Operand, error) {
			first, last, step := args[0].(value.Real), args[1].(value.Real), args[2].(value.Real)
			if !(step > 0) {
				return nil, evalErrorf("SEQ expects a positive step, found %s", step)
			}

			result := value.EmptyList()
			for x := first; x <= last; x += step {
				result = append(result, x)
			}
			return result, nil
		},
	})
}

func (i *Interpreter) addListAppendFunction(elementType value.Type) {
	i.AddFunction(&FunctionExecutor{
		FuncName:   "APPEND",
		Params:     []Param{{"aList", value.LIST}, {"newElement", elementType}},
		ReturnType: value.LIST,
		HelpText:   "Returns the result of appending an expression to a list.",
		Native: func(args []value.Operand) (value.Operand, error) {
			list := append(value.List{}, args[0].(value.List)...)
			return append(list, args[1]), nil
		},
	})
}

func (i *Interpreter) addListReduceFunction(reductionType value.Type) {
	i.AddFunction(&FunctionExecutor{
		FuncName:    "REDUCE",
		Params:      []Param{{"binaryFunction", value.FUNCTION}, {"aList", value.LIST}, {"initialValue", reductionType}},
		ReturnType:  reductionType,
		Polymorphic: true,
		HelpText: "Applies a function to each element of a list, returning\n" +
			"a single value. An initial value must be provided.",
		Native: func(args []value.Operand) (value.Operand, error) {
			acc := args[2]
			for _, item := range args[1].(value.List) {
				r, err := i.Apply(args[0], []value.Operand{acc, item})
				if err != nil {
					return nil, err
				}
				if r != nil {
					acc = r
				}
			}
			return acc, nil
		},
	})
}
