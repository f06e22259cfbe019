package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/kdlhtml/log"
	"github.com/ardnew/kdlhtml/render"
	"github.com/ardnew/kdlhtml/vars"
)

// Render renders a KDL document to HTML.
type Render struct {
	File string `arg:"" default:"-" help:"Input KDL file, or '-' for stdin" optional:""`

	Env        bool     `help:"Bind every environment variable"                       short:"e"`
	EnvFile    []string `help:"Bind variables from a dotenv, YAML, JSON or TOML file" short:"E" placeholder:"FILE" type:"existingfile" sep:"none"`
	Bind       []string `help:"Bind a variable"                                       short:"b" placeholder:"NAME=VALUE" sep:"none"`
	IncludeDir []string `help:"Search directory for includes, before KDLHTML_PATH"    short:"I" placeholder:"DIR" sep:"none"`
	Depfile    string   `help:"Write a make dependency file listing every file read"  short:"d" placeholder:"PATH"`
	Output     string   `help:"Write HTML to a file instead of stdout"                short:"o" placeholder:"PATH"`
	Shell      string   `help:"Interpreter for @sh nodes"                             default:"${shell}"`
}

// Validate implements kong's validation hook. Malformed bindings are usage
// errors.
func (r *Render) Validate() error {
	for _, b := range r.Bind {
		if _, err := vars.ParseBinding(b); err != nil {
			return err
		}
	}

	return nil
}

// Run executes the render command. Output and the dependency file are only
// written when rendering succeeds.
func (r *Render) Run(ctx context.Context, streams *Streams) error {
	scope, err := r.scope()
	if err != nil {
		return err
	}

	renderer := render.New(
		render.WithShell(render.SystemShell{Path: r.Shell, Stderr: streams.Err}),
		render.WithSearchPath(searchPath(os.Getenv(SearchPathEnv), r.IncludeDir...)...),
		render.WithLogger(log.With(slog.String("component", "render"))),
	)

	var res *render.Result

	if r.File == "" || r.File == stdinSource {
		res, err = renderer.RenderReader(ctx, streams.In, scope)
	} else {
		res, err = renderer.RenderFile(ctx, r.File, scope)
	}

	if err != nil {
		return err
	}

	if err := r.writeOutput(streams.Out, res.Output); err != nil {
		return err
	}

	if r.Depfile == "" {
		return nil
	}

	target := render.DefaultDepTarget
	if r.Output != "" {
		target = r.Output
	}

	var dep bytes.Buffer
	if err := res.Deps.WriteDepfile(&dep, target); err != nil {
		return render.ErrIO.Wrap(err).With(slog.String("path", r.Depfile))
	}

	if err := writeFile(r.Depfile, dep.Bytes()); err != nil {
		return err
	}

	log.DebugContext(ctx, "wrote depfile",
		slog.String("path", r.Depfile),
		slog.Int("deps", len(res.Deps)),
	)

	return nil
}

// scope assembles the initial bindings. Later sources override earlier ones:
// the environment, then env files in order, then explicit bindings.
func (r *Render) scope() (*render.Scope, error) {
	scope := render.NewScope()

	if r.Env {
		vars.Apply(scope, vars.Environ(os.Environ())...)
	}

	for _, path := range r.EnvFile {
		bindings, err := vars.LoadFile(path)
		if err != nil {
			return nil, err
		}

		vars.Apply(scope, bindings...)
	}

	for _, s := range r.Bind {
		b, err := vars.ParseBinding(s)
		if err != nil {
			return nil, err
		}

		vars.Apply(scope, b)
	}

	return scope, nil
}

func (r *Render) writeOutput(out io.Writer, html string) error {
	if r.Output != "" {
		return writeFile(r.Output, []byte(html))
	}

	if _, err := io.WriteString(out, html); err != nil {
		return render.ErrIO.Wrap(err).With(slog.String("path", "<stdout>"))
	}

	return nil
}

func writeFile(path string, data []byte) error {
	err := os.WriteFile(path, data, 0o644) //nolint:gosec // generated site files
	if err != nil {
		var perr *os.PathError
		if errors.As(err, &perr) {
			err = perr.Err
		}

		return render.ErrIO.Wrap(err).With(slog.String("path", path))
	}

	return nil
}
