package render

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/kdlhtml/kdl"
	"github.com/ardnew/kdlhtml/log"
)

// StdinName identifies the root document in diagnostics when it is read from
// standard input.
const StdinName = "<stdin>"

// Renderer evaluates KDL documents into HTML.
//
// A Renderer holds only its collaborators; every call to a Render method
// starts from fresh state, so a Renderer may be reused.
type Renderer struct {
	markdown Markdown
	shell    Shell
	fsys     FileSystem
	search   []string
	logger   log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMarkdown sets the Markdown converter used by markdown blocks and
// Markdown includes.
func WithMarkdown(md Markdown) Option {
	return func(r *Renderer) {
		r.markdown = md
	}
}

// WithShell sets the shell used by @sh nodes.
func WithShell(sh Shell) Option {
	return func(r *Renderer) {
		r.shell = sh
	}
}

// WithFileSystem sets the file system include paths are read from.
func WithFileSystem(fsys FileSystem) Option {
	return func(r *Renderer) {
		r.fsys = fsys
	}
}

// WithSearchPath sets directories searched, in order, for a relative include
// that does not exist under the including document's directory.
func WithSearchPath(dirs ...string) Option {
	return func(r *Renderer) {
		r.search = dirs
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New returns a Renderer using goldmark, /bin/sh and the host file system
// unless overridden by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		markdown: NewGoldmark(),
		shell:    SystemShell{Stderr: os.Stderr},
		fsys:     OSFileSystem{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Result is the product of a successful render.
type Result struct {
	Output string
	Deps   Deps
}

// Render evaluates doc with a copy of scope. Relative include paths resolve
// against wdir.
func (r *Renderer) Render(
	ctx context.Context,
	doc *kdl.Document,
	scope *Scope,
	wdir string,
) (*Result, error) {
	return r.render(ctx, doc, scope, wdir, "", nil)
}

// RenderFile reads, parses and evaluates the document at path. The path is
// the first dependency of the result and its directory is the working
// directory for includes.
func (r *Renderer) RenderFile(
	ctx context.Context,
	path string,
	scope *Scope,
) (*Result, error) {
	deps := Deps{path}

	data, err := r.fsys.ReadFile(path)
	if err != nil {
		return nil, ErrIO.Wrap(err).
			With(slog.String("path", path))
	}

	doc, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	return r.render(ctx, doc, scope, filepath.Dir(path), path, deps)
}

// RenderReader parses and evaluates a document read from rd, such as
// standard input. Includes resolve against the current directory.
func (r *Renderer) RenderReader(
	ctx context.Context,
	rd io.Reader,
	scope *Scope,
) (*Result, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, ErrIO.Wrap(err).
			With(slog.String("path", StdinName))
	}

	doc, err := parse(data, StdinName)
	if err != nil {
		return nil, err
	}

	return r.render(ctx, doc, scope, ".", StdinName, nil)
}

func (r *Renderer) render(
	ctx context.Context,
	doc *kdl.Document,
	scope *Scope,
	wdir, file string,
	deps Deps,
) (*Result, error) {
	ec := &evalContext{
		scope: scope.Fork(),
		wdir:  wdir,
		file:  file,
	}

	var out strings.Builder

	err := r.evaluate(ctx, doc.Nodes, 0, ec, &out, &deps)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "render complete",
		slog.String("file", file),
		slog.Int("bytes", out.Len()),
		slog.Int("deps", len(deps)),
	)

	return &Result{Output: out.String(), Deps: deps}, nil
}

// parse parses KDL source read from path.
func parse(data []byte, path string) (*kdl.Document, error) {
	doc, err := kdl.ParseString(string(data))
	if err != nil {
		return nil, ErrParse.Wrap(err).
			With(slog.String("path", path))
	}

	return doc, nil
}
