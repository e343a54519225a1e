package stack

type Stack[T any] struct {
	a []T
	l int
}

// NewStack creates a new stack instance, the last element given ends up on top
func NewStack[T any](elm ...T) *Stack[T] {
	stack := Stack[T]{
		a: make([]T, 0, len(elm)),
		l: 0,
	}

	for _, e := range elm {
		stack.l++
		stack.a = append(stack.a, e)
	}

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.l++
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s.l < 1 {
		return zero, false
	}

	s.l--
	elm := s.a[s.l]
	s.a[s.l] = zero
	s.a = s.a[:s.l]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if s.l < 1 {
		return zero, false
	}

	return s.a[s.l-1], true
}

// At returns the element at depth i, where 0 is the bottom of the stack
func (s *Stack[T]) At(i int) T {
	return s.a[i]
}

// Truncate drops elements until at most n remain
func (s *Stack[T]) Truncate(n int) {
	var zero T
	for s.l > n && s.l > 0 {
		s.l--
		s.a[s.l] = zero
	}
	s.a = s.a[:s.l]
}

// Get the size of the stack
func (s *Stack[T]) Size() int {
	return s.l
}

// IsEmpty reports whether the stack has no elements
func (s *Stack[T]) IsEmpty() bool {
	return s.l == 0
}

// Array returns a copy of the stack contents from bottom to top
func (s *Stack[T]) Array() []T {
	return append([]T(nil), s.a...)
}
