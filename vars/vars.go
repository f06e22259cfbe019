// Package vars collects variable bindings for a render from the process
// environment, binding files and NAME=VALUE arguments.
package vars

import (
	"bytes"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/ardnew/kdlhtml/render"
)

var (
	// ErrBindingSyntax is returned for a binding argument without "=".
	ErrBindingSyntax = render.NewError("binding must have the form NAME=VALUE")

	// ErrBindingFile is returned when a binding file cannot be read or decoded.
	ErrBindingFile = render.NewError("invalid binding file")
)

// Binding is one variable assignment.
type Binding struct {
	Name  string
	Value string
}

// String returns the binding as NAME=VALUE.
func (b Binding) String() string { return b.Name + "=" + b.Value }

// Environ converts KEY=VALUE pairs, as returned by [os.Environ], to bindings.
// Entries without "=" are skipped.
func Environ(environ []string) []Binding {
	out := make([]Binding, 0, len(environ))

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}

		out = append(out, Binding{Name: name, Value: value})
	}

	return out
}

// ParseBinding splits s at its first "=". The value may be empty or contain
// further "=" characters.
func ParseBinding(s string) (Binding, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Binding{}, ErrBindingSyntax.With(slog.String("binding", s))
	}

	return Binding{Name: name, Value: value}, nil
}

// LoadFile reads bindings from path, decoding by extension:
//
//   - .yaml, .yml, .json: a top-level mapping
//   - .toml: a TOML document
//   - anything else: dotenv (KEY=VALUE lines)
//
// Nested mappings are flattened with "." between keys and sequence elements
// are addressed by index, so {site: {title: x}} binds site.title. Bindings are
// returned sorted by name.
func LoadFile(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrBindingFile.Wrap(err).With(slog.String("path", path))
	}

	bindings, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, ErrBindingFile.Wrap(err).With(slog.String("path", path))
	}

	return bindings, nil
}

// Decode decodes binding file contents in the format named by ext, which is
// a file extension such as ".toml". See [LoadFile].
func Decode(ext string, data []byte) ([]Binding, error) {
	tree := map[string]any{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}

	case ".toml":
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}

	default:
		env, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}

		for k, v := range env {
			tree[k] = v
		}
	}

	flat := map[string]string{}
	flatten(flat, "", tree)

	out := make([]Binding, 0, len(flat))
	for _, name := range slices.Sorted(maps.Keys(flat)) {
		out = append(out, Binding{Name: name, Value: flat[name]})
	}

	return out, nil
}

func flatten(dst map[string]string, prefix string, v any) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}

		return prefix + "." + key
	}

	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			flatten(dst, join(k), e)
		}

	case map[any]any:
		for k, e := range v {
			flatten(dst, join(fmt.Sprint(k)), e)
		}

	case []any:
		for i, e := range v {
			flatten(dst, join(strconv.Itoa(i)), e)
		}

	case []map[string]any:
		for i, e := range v {
			flatten(dst, join(strconv.Itoa(i)), e)
		}

	default:
		if prefix != "" {
			dst[prefix] = stringify(v)
		}
	}
}

// stringify renders a decoded scalar in its natural textual form.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Apply declares every binding in scope, in order. A later binding of the
// same name replaces an earlier one.
func Apply(scope *render.Scope, bindings ...Binding) {
	for _, b := range bindings {
		scope.Declare(b.Name, b.Value)
	}
}
