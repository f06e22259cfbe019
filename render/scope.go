package render

import (
	"iter"
	"slices"
)

// Scope is an insertion-ordered set of variable bindings.
//
// The zero value is an empty scope ready to use. A Scope is mutated in place
// by binding declarations; [Scope.Fork] takes the snapshot handed to an
// included document.
type Scope struct {
	names  []string
	values map[string]string
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]string)}
}

// Declare binds name to value, replacing any earlier binding of name. A
// replaced binding keeps its original position in the iteration order.
func (s *Scope) Declare(name, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}

	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}

	s.values[name] = value
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}

	value, ok := s.values[name]

	return value, ok
}

// Fork returns an independent copy of s. Declarations made in either scope
// afterward are not visible in the other.
func (s *Scope) Fork() *Scope {
	f := NewScope()
	if s == nil {
		return f
	}

	f.names = slices.Clone(s.names)
	for name, value := range s.values {
		f.values[name] = value
	}

	return f
}

// Len returns the number of bindings in s.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}

	return len(s.names)
}

// Names returns the bound identifiers in declaration order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}

	return slices.Clone(s.names)
}

// All returns an iterator over all bindings in declaration order.
func (s *Scope) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}

		for _, name := range s.names {
			if !yield(name, s.values[name]) {
				return
			}
		}
	}
}
