package render

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/kdlhtml/kdl"
)

func (r *Renderer) evalInclude(
	ctx context.Context,
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
	deps *Deps,
) error {
	name, err := requireArgument(node, ec)
	if err != nil {
		return err
	}

	name, err = interpolate(node, ec, name)
	if err != nil {
		return err
	}

	path := r.includePath(ec.wdir, name)
	deps.Add(path)

	r.logger.DebugContext(ctx, "include",
		slog.String("name", name),
		slog.String("path", path),
		slog.Int("depth", depth),
	)

	data, err := r.fsys.ReadFile(path)
	if err != nil {
		return nodeError(ErrIO, node, ec).Wrap(err).
			With(slog.String("path", path))
	}

	if !utf8.Valid(data) {
		return nodeError(ErrIO, node, ec).
			With(slog.String("path", path), slog.String("reason", "invalid UTF-8"))
	}

	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "html":
		writeLines(out, depth, string(data))

	case "md", "markdown":
		writeLines(out, depth, r.markdown.Render(string(data)))

	case "kdl":
		doc, err := parse(data, path)
		if err != nil {
			return err
		}

		scope := ec.scope.Fork()
		for _, prop := range node.Properties() {
			scope.Declare(prop.Name, prop.Value.String())
		}

		inner := &evalContext{
			scope: scope,
			wdir:  filepath.Dir(path),
			file:  path,
		}

		return r.evaluate(ctx, doc.Nodes, depth, inner, out, deps)

	case "":
		return nodeError(ErrMissingExtension, node, ec).
			With(slog.String("path", path))

	default:
		return nodeError(ErrUnsupportedExtension, node, ec).
			With(slog.String("path", path), slog.String("ext", ext))
	}

	return nil
}
