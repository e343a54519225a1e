package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"vela/pkg/ast"
	"vela/pkg/value"
)

var (
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
	ErrInterrupted      = errors.New("evaluation interrupted")
)

// EvalError is an error raised while evaluating VeLa code
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return e.Msg
}

// evalErrorf creates an EvalError with a formatted message
func evalErrorf(format string, args ...any) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// operatorError reports the types an operator accepts
func operatorError(op ast.Operation, types ...value.Type) error {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	return evalErrorf("'%s' expects values of type %s", op.Token(), strings.Join(names, " or "))
}
