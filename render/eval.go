package render

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/kdlhtml/kdl"
)

// evalContext is the state of one document: the root, or an included KDL
// file. It is shared by siblings and replaced at include boundaries.
type evalContext struct {
	scope *Scope
	wdir  string // directory relative includes resolve against
	file  string // document path, for diagnostics
}

// evaluate renders nodes in order at depth, appending to out and recording
// every file read in deps. The first error aborts the walk.
func (r *Renderer) evaluate(
	ctx context.Context,
	nodes []*kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
	deps *Deps,
) error {
	for _, node := range nodes {
		kind := Classify(node)

		r.logger.TraceContext(ctx, "evaluate node",
			slog.String("name", node.Name),
			slog.String("kind", kind.String()),
			slog.Int("depth", depth),
		)

		var err error

		switch kind {
		case KindText:
			err = r.evalText(node, depth, ec, out)
		case KindLet:
			evalLet(node, ec)
		case KindDoctype:
			err = evalDoctype(node, depth, ec, out)
		case KindElement:
			err = r.evalElement(ctx, node, depth, ec, out, deps)
		case KindInclude:
			err = r.evalInclude(ctx, node, depth, ec, out, deps)
		case KindMarkdown:
			err = r.evalMarkdown(node, depth, ec, out)
		case KindShell:
			err = r.evalShell(ctx, node, depth, ec, out)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) evalText(
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
) error {
	text, err := requireArgument(node, ec)
	if err != nil {
		return err
	}

	text, err = interpolate(node, ec, text)
	if err != nil {
		return err
	}

	writeIndent(out, depth)
	out.WriteString(text)
	out.WriteByte('\n')

	return nil
}

// evalLet declares every property of node. Arguments are ignored.
func evalLet(node *kdl.Node, ec *evalContext) {
	for _, prop := range node.Properties() {
		ec.scope.Declare(prop.Name, prop.Value.String())
	}
}

func evalDoctype(
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
) error {
	if depth != 0 {
		return nodeError(ErrMisplacedDoctype, node, ec).
			With(slog.Int("depth", depth))
	}

	text, err := requireArgument(node, ec)
	if err != nil {
		return err
	}

	out.WriteString("<!DOCTYPE ")
	out.WriteString(text)
	out.WriteString(">\n")

	return nil
}

func (r *Renderer) evalElement(
	ctx context.Context,
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
	deps *Deps,
) error {
	writeIndent(out, depth)
	out.WriteByte('<')
	out.WriteString(node.Name)

	for _, prop := range node.Properties() {
		value, err := interpolate(node, ec, prop.Value.String())
		if err != nil {
			return err
		}

		out.WriteByte(' ')
		out.WriteString(prop.Name)
		out.WriteString(`="`)
		out.WriteString(value)
		out.WriteByte('"')
	}

	// Only a string argument is text content.
	arg, _ := node.Argument()

	switch text, ok := arg.AsString(); {
	case ok:
		text, err := interpolate(node, ec, text)
		if err != nil {
			return err
		}

		out.WriteByte('>')
		out.WriteString(text)
		writeCloseTag(out, node.Name)

	case node.HasChildren:
		out.WriteString(">\n")

		err := r.evaluate(ctx, node.Children, depth+1, ec, out, deps)
		if err != nil {
			return err
		}

		writeIndent(out, depth)
		writeCloseTag(out, node.Name)

	case IsVoidElement(node.Name):
		out.WriteString(" />\n")

	default:
		out.WriteByte('>')
		writeCloseTag(out, node.Name)
	}

	return nil
}

func (r *Renderer) evalMarkdown(
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
) error {
	var source string

	if arg, ok := node.Argument(); ok {
		source = arg.String()
	} else {
		var sb strings.Builder

		for _, child := range node.Children {
			sb.WriteString(child.Name)
			sb.WriteByte('\n')
		}

		source = sb.String()
	}

	source, err := interpolate(node, ec, source)
	if err != nil {
		return err
	}

	writeLines(out, depth, r.markdown.Render(source))

	return nil
}

func (r *Renderer) evalShell(
	ctx context.Context,
	node *kdl.Node,
	depth int,
	ec *evalContext,
	out *strings.Builder,
) error {
	command, err := requireArgument(node, ec)
	if err != nil {
		return err
	}

	command, err = interpolate(node, ec, command)
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "run shell command",
		slog.String("command", command),
	)

	stdout, err := r.shell.Run(ctx, command)
	if err != nil {
		serr := nodeError(ErrSpawn, node, ec).Wrap(err).
			With(slog.String("command", command))

		var exit *exec.ExitError
		if errors.As(err, &exit) {
			serr = serr.With(slog.Int("status", exit.ExitCode()))
		}

		return serr
	}

	if !utf8.Valid(stdout) {
		return nodeError(ErrDecode, node, ec).
			With(slog.String("command", command))
	}

	writeLines(out, depth, string(stdout))

	return nil
}

// requireArgument returns the textual form of the first argument of node.
func requireArgument(node *kdl.Node, ec *evalContext) (string, error) {
	arg, ok := node.Argument()
	if !ok {
		return "", nodeError(ErrMissingArgument, node, ec)
	}

	return arg.String(), nil
}

// interpolate resolves text in the scope of ec, locating any failure at node.
func interpolate(node *kdl.Node, ec *evalContext, text string) (string, error) {
	s, err := Interpolate(ec.scope, text)
	if err != nil {
		var ierr *Error
		if errors.As(err, &ierr) {
			return "", locate(ierr, node, ec)
		}

		return "", err
	}

	return s, nil
}

// nodeError derives an error from sentinel located at node.
func nodeError(sentinel *Error, node *kdl.Node, ec *evalContext) *Error {
	return locate(sentinel, node, ec)
}

func locate(err *Error, node *kdl.Node, ec *evalContext) *Error {
	attrs := []slog.Attr{slog.String("node", node.Name)}

	if ec.file != "" {
		attrs = append(attrs, slog.String("file", ec.file))
	}

	return err.With(attrs...)
}

func writeIndent(out *strings.Builder, depth int) {
	for range depth {
		out.WriteByte('\t')
	}
}

func writeCloseTag(out *strings.Builder, name string) {
	out.WriteString("</")
	out.WriteString(name)
	out.WriteString(">\n")
}

// writeLines writes every line of s indented to depth. A final newline does
// not start another line and a trailing carriage return is dropped.
func writeLines(out *strings.Builder, depth int, s string) {
	for line := range strings.Lines(s) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		writeIndent(out, depth)
		out.WriteString(line)
		out.WriteByte('\n')
	}
}

// includePath resolves name against wdir, falling back to the search path
// when the file does not exist there.
func (r *Renderer) includePath(wdir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	path := filepath.Join(wdir, name)
	if len(r.search) == 0 {
		return path
	}

	if _, err := r.fsys.Stat(path); err == nil {
		return path
	}

	for _, dir := range r.search {
		candidate := filepath.Join(dir, name)
		if _, err := r.fsys.Stat(candidate); err == nil {
			return candidate
		}
	}

	return path
}
