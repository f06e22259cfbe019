package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ardnew/kdlhtml/vars"
)

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name string
		env  string
		dirs []string
		want []string
	}{
		{"empty", "", nil, nil},
		{"env only", "a" + sep + "b", nil, []string{"a", "b"}},
		{"dirs only", "", []string{"x", "y"}, []string{"x", "y"}},
		{"dirs before env", "a", []string{"x"}, []string{"x", "a"}},
		{"empty entries dropped", sep + "a" + sep + sep, nil, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchPath(tt.env, tt.dirs...); !slices.Equal(got, tt.want) {
				t.Errorf("searchPath(%q, %q) = %q, want %q", tt.env, tt.dirs, got, tt.want)
			}
		})
	}
}

func TestFlagValues(t *testing.T) {
	type named string

	tests := []struct {
		name string
		in   any
		want []any
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"string", "debug", []any{"debug"}},
		{"named string", named("text"), []any{"text"}},
		{"bool", false, []any{false}},
		{"int", 3, []any{int64(3)}},
		{"list", []string{"a", "b"}, []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []any
			for _, v := range flagValues(tt.in) {
				got = append(got, v.Native())
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("flagValues(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRender_Validate(t *testing.T) {
	r := Render{Bind: []string{"a=1", "b="}}
	if err := r.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	r.Bind = append(r.Bind, "oops")
	if err := r.Validate(); !errors.Is(err, vars.ErrBindingSyntax) {
		t.Errorf("expected ErrBindingSyntax, got %v", err)
	}
}

func TestRender_Scope(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "a.env")
	second := filepath.Join(dir, "b.toml")

	if err := os.WriteFile(first, []byte("X=first\nY=first\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(second, []byte("Y = \"second\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := Render{
		EnvFile: []string{first, second},
		Bind:    []string{"X=bound=twice"},
	}

	scope, err := r.scope()
	if err != nil {
		t.Fatalf("scope failed: %v", err)
	}

	for name, want := range map[string]string{"X": "bound=twice", "Y": "second"} {
		if got, _ := scope.Lookup(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}

	r.EnvFile = []string{filepath.Join(dir, "missing.env")}
	if _, err := r.scope(); !errors.Is(err, vars.ErrBindingFile) {
		t.Errorf("expected ErrBindingFile, got %v", err)
	}
}
