package interpreter

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vela/pkg/value"
)

// Environment is one level of the environment stack
type Environment interface {
	// Lookup returns the value bound to a canonical name
	Lookup(name string) (value.Operand, bool)
	// Bind binds a canonical name, replacing any existing binding
	Bind(name string, v value.Operand, constant bool)
	// IsConstant reports whether a canonical name is bound as a constant
	IsConstant(name string) bool
	// Mutable reports whether bindings may be created or updated
	Mutable() bool
}

var upperCasers = sync.Pool{
	New: func() any {
		c := cases.Upper(language.Und)
		return &c
	},
}

// canonical folds a name to upper case; VeLa names are case-insensitive.
// Casers are stateful, so they are pooled rather than shared.
func canonical(name string) string {
	c := upperCasers.Get().(*cases.Caser)
	defer upperCasers.Put(c)

	return c.String(name)
}

type binding struct {
	value    value.Operand
	constant bool
}

// Scope holds variables and overloaded functions
type Scope struct {
	bindings  map[string]binding
	functions map[string][]*FunctionExecutor
	mutable   bool
}

// NewScope creates an empty scope
func NewScope(mutable bool) *Scope {
	return &Scope{
		bindings:  make(map[string]binding),
		functions: make(map[string][]*FunctionExecutor),
		mutable:   mutable,
	}
}

func (s *Scope) Lookup(name string) (value.Operand, bool) {
	b, ok := s.bindings[canonical(name)]
	return b.value, ok
}

func (s *Scope) Bind(name string, v value.Operand, constant bool) {
	s.bindings[canonical(name)] = binding{value: v, constant: constant}
}

func (s *Scope) IsConstant(name string) bool {
	return s.bindings[canonical(name)].constant
}

func (s *Scope) Mutable() bool {
	return s.mutable
}

// AddFunction appends an overload; earlier overloads are preferred
func (s *Scope) AddFunction(f *FunctionExecutor) {
	name := canonical(f.Name())
	s.functions[name] = append(s.functions[name], f)
}

// LookupFunctions returns the overloads registered under a name
func (s *Scope) LookupFunctions(name string) ([]*FunctionExecutor, bool) {
	fns, ok := s.functions[canonical(name)]
	return fns, ok
}

// FunctionNames returns the canonical names of every function in the scope
func (s *Scope) FunctionNames() []string {
	names := make([]string, 0, len(s.functions))
	for name := range s.functions {
		names = append(names, name)
	}
	return names
}

// RecordEnvironment exposes the fields of one data record as read-only
// bindings
type RecordEnvironment struct {
	fields map[string]value.Operand
}

// NewRecordEnvironment creates an immutable environment over record fields
func NewRecordEnvironment(fields map[string]value.Operand) *RecordEnvironment {
	env := &RecordEnvironment{fields: make(map[string]value.Operand, len(fields))}
	for name, v := range fields {
		env.fields[canonical(name)] = v
	}
	return env
}

func (r *RecordEnvironment) Lookup(name string) (value.Operand, bool) {
	v, ok := r.fields[canonical(name)]
	return v, ok
}

// Bind is a no-op; the interpreter never binds into an immutable environment
func (r *RecordEnvironment) Bind(string, value.Operand, bool) {}

func (r *RecordEnvironment) IsConstant(string) bool {
	return true
}

func (r *RecordEnvironment) Mutable() bool {
	return false
}
