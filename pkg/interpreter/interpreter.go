package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"vela/pkg/ast"
	"vela/pkg/parser"
	"vela/pkg/stack"
	"vela/pkg/value"
)

// Interpreter evaluates VeLa ASTs over a stack of environments. It is not
// safe for concurrent use, except for Interrupt.
type Interpreter struct {
	stack        *stack.Stack[value.Operand] // operand stack
	environments *stack.Stack[Environment]   // environment stack, root scope at the bottom
	root         *Scope                      // scope holding the built-in library

	programs    map[string]*ast.Node      // program source -> AST
	expressions map[string]*ast.Node      // expression source -> AST
	regexes     map[string]*regexp.Regexp // pattern -> compiled whole-string matcher

	out   io.Writer           // output writer for PRINT
	in    *bufio.Reader       // input reader for NEXTCHAR
	exit  func(code int)      // EXIT implementation
	clock func() time.Time    // time source for TODAY and MILLISECONDS
	host  []*FunctionExecutor // extra native functions

	verbose    bool     // log registered functions and evaluated programs
	sourceDirs []string // directories of VeLa code loaded at construction

	maxSteps    int         // maximum steps (0 = unlimited)
	steps       int         // steps executed by the current entry point
	entries     int         // nesting depth of entry points
	interrupted atomic.Bool // set by Interrupt
}

type Option func(*Interpreter)

// WithWriter sets the output writer for PRINT and PRINTLN
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithReader sets the input reader for NEXTCHAR
func WithReader(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithMaxSteps sets a maximum number of evaluation steps per entry point before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithVerbose enables debug logging of functions and programs
func WithVerbose(verbose bool) Option {
	return func(i *Interpreter) { i.verbose = verbose }
}

// WithSourceDirs loads every .vl and .vela file in the given directories at construction
func WithSourceDirs(dirs ...string) Option {
	return func(i *Interpreter) { i.sourceDirs = append(i.sourceDirs, dirs...) }
}

// WithHostFunctions registers native functions after the built-in library
func WithHostFunctions(fns ...*FunctionExecutor) Option {
	return func(i *Interpreter) { i.host = append(i.host, fns...) }
}

// WithExit replaces os.Exit as the implementation of EXIT
func WithExit(exit func(code int)) Option {
	return func(i *Interpreter) { i.exit = exit }
}

// WithClock sets the time source used by TODAY and MILLISECONDS
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) { i.clock = clock }
}

// NewInterpreter creates a new Interpreter instance with the built-in
// library in its root scope
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		stack:        stack.NewStack[value.Operand](),
		environments: stack.NewStack[Environment](),
		root:         NewScope(true),
		programs:     make(map[string]*ast.Node),
		expressions:  make(map[string]*ast.Node),
		regexes:      make(map[string]*regexp.Regexp),
		maxSteps:     0, // 0 => unlimited
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.exit == nil {
		it.exit = os.Exit
	}
	if it.clock == nil {
		it.clock = time.Now
	}

	it.environments.Push(it.root)
	it.initBindings()
	it.initFunctions()
	it.loadUserCode()

	return it
}

// Program evaluates a VeLa program, returning its result or nil if it has none
func (i *Interpreter) Program(src string) (value.Operand, error) {
	node, err := i.parse(src, i.programs, parser.Parse)
	if err != nil {
		return nil, err
	}

	return i.run(node)
}

// ProgramFile evaluates the VeLa program in a file
func (i *Interpreter) ProgramFile(path string) (value.Operand, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading VeLa file %s: %w", path, err)
	}

	return i.Program(string(code))
}

// Expression evaluates a single expression, which must yield a value
func (i *Interpreter) Expression(src string) (value.Operand, error) {
	node, err := i.parse(src, i.expressions, parser.ParseExpression)
	if err != nil {
		return nil, err
	}

	result, err := i.run(node)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, evalErrorf("Result expected")
	}

	return result, nil
}

// BooleanExpression evaluates an expression that must yield a BOOLEAN
func (i *Interpreter) BooleanExpression(src string) (bool, error) {
	result, err := i.Expression(src)
	if err != nil {
		return false, err
	}

	b, ok := result.(value.Boolean)
	if !ok {
		return false, evalErrorf("Boolean value expected as result, found %s", result.Type())
	}

	return bool(b), nil
}

// RealExpression evaluates an expression that must yield a number
func (i *Interpreter) RealExpression(src string) (float64, error) {
	result, err := i.Expression(src)
	if err != nil {
		return 0, err
	}

	switch x := result.(type) {
	case value.Integer:
		return float64(x), nil
	case value.Real:
		return float64(x), nil
	default:
		return 0, evalErrorf("Numeric value expected as result, found %s", result.Type())
	}
}

// Eval evaluates an AST, returning its result or nil if it has none
func (i *Interpreter) Eval(node *ast.Node) (value.Operand, error) {
	return i.run(node)
}

// Interrupt stops the running evaluation at the next statement or loop
// iteration with ErrInterrupted. It may be called from any goroutine.
func (i *Interpreter) Interrupt() {
	i.interrupted.Store(true)
}

// parse returns the cached AST for a source text, parsing it on a miss
func (i *Interpreter) parse(src string, cache map[string]*ast.Node, parse func(string) (*ast.Node, error)) (*ast.Node, error) {
	key := strings.TrimSpace(src)
	if node, ok := cache[key]; ok {
		return node, nil
	}

	node, err := parse(src)
	if err != nil {
		return nil, err
	}

	cache[key] = node
	if i.verbose {
		log.Debug("Parsed", "ast", node)
	}

	return node, nil
}

// run evaluates an AST at an entry point. The operand stack is restored
// on error; earlier side effects are kept.
func (i *Interpreter) run(node *ast.Node) (value.Operand, error) {
	if i.entries == 0 {
		i.steps = 0
	}
	i.entries++
	defer func() {
		i.entries--
		if i.entries == 0 {
			i.interrupted.Store(false)
		}
	}()

	depth := i.stack.Size()
	if err := i.eval(node); err != nil {
		i.stack.Truncate(depth)
		return nil, err
	}

	return i.popResult(depth), nil
}

// step accounts for one evaluation step
func (i *Interpreter) step() error {
	if i.interrupted.Load() {
		return ErrInterrupted
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return ErrMaxStepsExceeded
	}
	i.steps++

	return nil
}

// popResult pops the value left above depth, if any, discarding anything below it
func (i *Interpreter) popResult(depth int) value.Operand {
	if i.stack.Size() <= depth {
		return nil
	}

	result, _ := i.stack.Pop()
	i.stack.Truncate(depth)
	return result
}

// PushEnvironment pushes an environment on top of the environment stack
func (i *Interpreter) PushEnvironment(env Environment) {
	i.environments.Push(env)
}

// PopEnvironment pops the innermost environment; the root scope is never popped
func (i *Interpreter) PopEnvironment() (Environment, bool) {
	if i.environments.Size() <= 1 {
		return nil, false
	}

	return i.environments.Pop()
}

// PeekEnvironment returns the innermost environment
func (i *Interpreter) PeekEnvironment() Environment {
	env, _ := i.environments.Peek()
	return env
}

// Bind binds a name in the first mutable environment that already binds it,
// converting the value to the bound type; otherwise in the innermost
// environment
func (i *Interpreter) Bind(name string, v value.Operand, constant bool) error {
	for k := i.environments.Size() - 1; k >= 0; k-- {
		env := i.environments.At(k)
		if !env.Mutable() {
			continue
		}

		existing, ok := env.Lookup(name)
		if !ok {
			continue
		}

		if env.IsConstant(name) {
			return evalErrorf("%s is a constant and cannot be rebound.", name)
		}

		converted, ok := value.Convert(v, existing.Type())
		if !ok {
			return evalErrorf("The type of the value (%s) is not compatible with the bound type of %s.",
				value.Repr(v), name)
		}

		env.Bind(name, converted, constant)
		return nil
	}

	env := i.PeekEnvironment()
	if !env.Mutable() {
		return evalErrorf("The environment in which %s is bound is immutable.", name)
	}

	env.Bind(name, v, constant)
	return nil
}

// LookupBinding searches the environment stack from innermost to outermost
func (i *Interpreter) LookupBinding(name string) (value.Operand, bool) {
	for k := i.environments.Size() - 1; k >= 0; k-- {
		if v, ok := i.environments.At(k).Lookup(name); ok {
			return v, true
		}
	}

	return nil, false
}

// LookupFunctions returns the overloads of the innermost scope defining name
func (i *Interpreter) LookupFunctions(name string) ([]*FunctionExecutor, bool) {
	for k := i.environments.Size() - 1; k >= 0; k-- {
		if scope, ok := i.environments.At(k).(*Scope); ok {
			if fns, ok := scope.LookupFunctions(name); ok {
				return fns, true
			}
		}
	}

	return nil, false
}

// AddFunction registers a function in the innermost scope
func (i *Interpreter) AddFunction(f *FunctionExecutor) {
	for k := i.environments.Size() - 1; k >= 0; k-- {
		if scope, ok := i.environments.At(k).(*Scope); ok {
			scope.AddFunction(f)
			if i.verbose {
				log.Debug("Registered function", "signature", f)
			}
			return
		}
	}
}

// loadUserCode evaluates VeLa files from the source directories. A broken
// file is logged and skipped.
func (i *Interpreter) loadUserCode() {
	for _, dir := range i.sourceDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warn("Error when sourcing VeLa code", "dir", dir, "error", err)
			continue
		}

		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if entry.IsDir() || (ext != ".vl" && ext != ".vela") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if _, err := i.ProgramFile(path); err != nil {
				log.Warn("Error when sourcing VeLa code", "file", path, "error", err)
			}
		}
	}
}
