package render

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// FileSystem reads the files named by include nodes. [testing/fstest.MapFS]
// satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem is a FileSystem backed by the host operating system.
type OSFileSystem struct{}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// Stat implements FileSystem.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// Markdown converts Markdown source to HTML. Conversion never fails.
type Markdown interface {
	Render(source string) string
}

// Goldmark is a CommonMark converter. Raw HTML in the source is passed
// through unchanged.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a Goldmark converter.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render implements Markdown.
func (g *Goldmark) Render(source string) string {
	var buf bytes.Buffer

	// Writes to a bytes.Buffer do not fail.
	_ = g.md.Convert([]byte(source), &buf)

	return buf.String()
}

// Shell runs a command line and returns its standard output.
type Shell interface {
	Run(ctx context.Context, command string) ([]byte, error)
}

// DefaultShell is the interpreter used by SystemShell when Path is empty.
const DefaultShell = "/bin/sh"

// SystemShell runs commands with "<Path> -c <command>".
type SystemShell struct {
	Path   string
	Stderr io.Writer // nil discards the command's standard error
}

// Run implements Shell. A non-zero exit status is returned as an
// [*exec.ExitError].
func (s SystemShell) Run(ctx context.Context, command string) ([]byte, error) {
	sh := s.Path
	if sh == "" {
		sh = DefaultShell
	}

	cmd := exec.CommandContext(ctx, sh, "-c", command)
	cmd.Stderr = s.Stderr

	return cmd.Output()
}
