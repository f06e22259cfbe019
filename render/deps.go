package render

import (
	"bufio"
	"io"
	"strings"
)

// DefaultDepTarget is the make target written by [Deps.WriteDepfile] when
// the rendered output goes to standard output.
const DefaultDepTarget = "stdout"

// Deps records the files read during one render in the order they were
// first read. Repeated reads are recorded again.
type Deps []string

// Add appends path.
func (d *Deps) Add(path string) {
	*d = append(*d, path)
}

// WriteDepfile writes d as a single make rule for target:
//
//	stdout: \
//	 index.kdl \
//	 header.html
func (d Deps) WriteDepfile(w io.Writer, target string) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(escapeMake(target))
	bw.WriteString(":")

	for _, path := range d {
		bw.WriteString(" \\\n ")
		bw.WriteString(escapeMake(path))
	}

	bw.WriteString("\n")

	return bw.Flush()
}

var makeEscaper = strings.NewReplacer(
	" ", `\ `,
	"#", `\#`,
	"$", "$$",
)

// escapeMake quotes the characters make treats specially in a file name.
func escapeMake(path string) string {
	return makeEscaper.Replace(path)
}
