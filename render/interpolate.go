package render

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Interpolate replaces every ${name} in text with the value bound to name in
// scope. Markers are resolved left to right and substituted values are not
// scanned again.
//
// A name with no binding fails with [ErrUnboundVariable]; a "${" without a
// following "}" fails with [ErrUnterminatedInterpolation].
func Interpolate(scope *Scope, text string) (string, error) {
	parts := strings.Split(text, "${")
	if len(parts) == 1 {
		return text, nil
	}

	var sb strings.Builder

	sb.WriteString(parts[0])

	for _, part := range parts[1:] {
		name, rest, ok := strings.Cut(part, "}")
		if !ok {
			return "", ErrUnterminatedInterpolation.
				With(slog.String("text", text))
		}

		value, ok := scope.Lookup(name)
		if !ok {
			return "", unbound(scope, name)
		}

		sb.WriteString(value)
		sb.WriteString(rest)
	}

	return sb.String(), nil
}

// unbound builds an ErrUnboundVariable for name, suggesting the closest bound
// name when one matches.
func unbound(scope *Scope, name string) error {
	err := ErrUnboundVariable.With(slog.String("name", name))

	if name == "" {
		return err
	}

	if matches := fuzzy.Find(name, scope.Names()); len(matches) > 0 {
		return err.With(slog.String("suggest", matches[0].Str))
	}

	return err
}
