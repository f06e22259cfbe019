package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kdlhtml/kdl"
	"github.com/ardnew/kdlhtml/log"
)

// loadKDL is a [kong.ConfigurationLoader] for config files written in KDL.
//
// Each top-level node sets the flag of the same name from its arguments. A
// flag name may be spelled with "-" or "_":
//
//	log-level "debug"
//	log_pretty #false
//	include-dir "partials" "vendor/partials"
//	bind "site=Docs"
//
// Nodes with several arguments set repeatable flags. Unknown nodes are
// ignored, and command-line flags override config values.
func loadKDL(r io.Reader) (kong.Resolver, error) {
	doc, err := kdl.Parse(r)
	if err != nil {
		log.Warn("ignoring invalid config file", slog.Any("error", err))

		return config{}, nil
	}

	cfg := config{}

	for _, node := range doc.Nodes {
		args := node.Arguments()

		switch len(args) {
		case 0:
			continue

		case 1:
			cfg[node.Name] = configValue(args[0])

		default:
			list := make([]any, len(args))
			for i, arg := range args {
				list[i] = configValue(arg)
			}

			cfg[node.Name] = list
		}
	}

	return cfg, nil
}

// configValue converts a KDL value for kong, which parses numbers from their
// textual form.
func configValue(v *kdl.Value) any {
	switch v.Kind {
	case kdl.KindBool:
		return v.Bool
	case kdl.KindString:
		return v.Str
	default:
		return v.String()
	}
}

// config implements [kong.Resolver] for KDL configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil // nil value means unset to kong
}
