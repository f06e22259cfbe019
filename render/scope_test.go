package render

import (
	"slices"
	"testing"
)

func TestScope_DeclareLookup(t *testing.T) {
	var s Scope

	if _, ok := s.Lookup("x"); ok {
		t.Fatal("zero scope should be empty")
	}

	s.Declare("x", "1")
	s.Declare("y", "2")
	s.Declare("x", "3")

	if v, ok := s.Lookup("x"); !ok || v != "3" {
		t.Errorf("Lookup(x) = %q, %v; want 3, true", v, ok)
	}

	if got := s.Names(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Names() = %v, want [x y]", got)
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestScope_Fork(t *testing.T) {
	parent := NewScope()
	parent.Declare("a", "1")

	child := parent.Fork()
	child.Declare("a", "2")
	child.Declare("b", "3")
	parent.Declare("c", "4")

	if v, _ := parent.Lookup("a"); v != "1" {
		t.Errorf("parent a = %q, want 1", v)
	}

	if _, ok := parent.Lookup("b"); ok {
		t.Error("child binding visible in parent")
	}

	if _, ok := child.Lookup("c"); ok {
		t.Error("later parent binding visible in child")
	}
}

func TestScope_Nil(t *testing.T) {
	var s *Scope

	if s.Len() != 0 || s.Names() != nil {
		t.Error("nil scope should be empty")
	}

	if _, ok := s.Lookup("x"); ok {
		t.Error("nil scope lookup should fail")
	}

	if f := s.Fork(); f == nil || f.Len() != 0 {
		t.Error("Fork of nil scope should be empty")
	}

	for range s.All() {
		t.Error("nil scope should yield nothing")
	}
}

func TestScope_All(t *testing.T) {
	s := NewScope()
	s.Declare("z", "1")
	s.Declare("a", "2")

	var got []string

	for name, value := range s.All() {
		got = append(got, name+"="+value)
	}

	if !slices.Equal(got, []string{"z=1", "a=2"}) {
		t.Errorf("All() = %v", got)
	}
}
