// Package render evaluates KDL documents into HTML.
//
// Each top-level node of a document is classified by name:
//
//	-          one line of text
//	let        variable declarations from properties
//	!doctype   a document type declaration, root only
//	@include   another KDL, HTML or Markdown file spliced in place
//	markdown   a Markdown block converted to HTML
//	@sh        the standard output of a shell command
//
// Every other node is an HTML element: properties become attributes, and the
// first argument or the children block becomes its content. Text, attribute
// values and the arguments of the directives above may reference variables
// as ${name}.
//
// Variables are declared in order and visible to every node after them in the
// same document, including nested children. An included KDL document starts
// from a snapshot of the including scope plus the include node's properties;
// its own declarations are not visible to the includer.
//
// A render records every file it reads, in order, as [Deps], which can be
// written as a make dependency file.
package render
