package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kdlhtml/kdl"
	"github.com/ardnew/kdlhtml/log"
	"github.com/ardnew/kdlhtml/profile"
	"github.com/ardnew/kdlhtml/render"
)

// ErrFileExists is returned by init when the configuration file exists and
// --force was not given.
var ErrFileExists = render.NewError("file exists (use --force to overwrite)")

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return render.NewError("init requires a parsed command line")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrFileExists.With(slog.String("path", confPath))
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return render.ErrIO.Wrap(err).With(slog.String("path", confPath))
	}

	file, err := os.Create(confPath)
	if err != nil {
		return render.ErrIO.Wrap(err).With(slog.String("path", confPath))
	}
	defer file.Close()

	if err := configDocument(ktx).Format(file); err != nil {
		return render.ErrIO.Wrap(err).With(slog.String("path", confPath))
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configDocument builds one node per global flag with a value.
func configDocument(ktx *kong.Context) *kdl.Document {
	doc := kdl.New()
	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		values := flagValues(ktx.FlagValue(flag))
		if len(values) == 0 {
			continue
		}

		node := &kdl.Node{Name: flag.Name}
		for _, v := range values {
			node.Entries = append(node.Entries, &kdl.Entry{Value: v})
		}

		doc.AddNode(node)
	}

	return doc
}

// flagValues converts a parsed flag value to KDL arguments. Empty values
// produce none.
func flagValues(val any) []*kdl.Value {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return []*kdl.Value{kdl.BoolValue(v)}

	case string:
		if v == "" {
			return nil
		}

		return []*kdl.Value{kdl.StringValue(v)}

	case fmt.Stringer:
		return flagValues(v.String())

	case int:
		return []*kdl.Value{kdl.IntValue(int64(v))}

	case int64:
		return []*kdl.Value{kdl.IntValue(v)}

	case []string:
		out := make([]*kdl.Value, len(v))
		for i, s := range v {
			out[i] = kdl.StringValue(s)
		}

		return out

	default:
		return flagValues(fmt.Sprint(v))
	}
}
