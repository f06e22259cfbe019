package render

import "github.com/ardnew/kdlhtml/kdl"

// Kind identifies the behavior applied to a node.
type Kind int

const (
	// KindElement is any node without a reserved name; it renders as an HTML
	// element of the same name.
	KindElement Kind = iota

	// KindText ("-") emits one line of interpolated text.
	KindText

	// KindLet ("let") declares its properties as variables.
	KindLet

	// KindDoctype ("!doctype") emits a document type declaration.
	KindDoctype

	// KindInclude ("@include") splices in another file.
	KindInclude

	// KindMarkdown ("markdown") renders a Markdown block.
	KindMarkdown

	// KindShell ("@sh") emits the standard output of a shell command.
	KindShell
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindLet:
		return "Let"
	case KindDoctype:
		return "Doctype"
	case KindInclude:
		return "Include"
	case KindMarkdown:
		return "Markdown"
	case KindShell:
		return "Shell"
	default:
		return "Unknown"
	}
}

// Classify returns the Kind of node. It depends only on the node name, and
// any name not reserved below is an element.
func Classify(node *kdl.Node) Kind {
	return classifyName(node.Name)
}

func classifyName(name string) Kind {
	switch name {
	case "-":
		return KindText
	case "let":
		return KindLet
	case "markdown":
		return KindMarkdown
	case "@include":
		return KindInclude
	case "@sh":
		return KindShell
	case "!doctype":
		return KindDoctype
	default:
		return KindElement
	}
}

// voidElements lists the HTML elements that never have content or a closing
// tag.
var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// IsVoidElement reports whether name is an HTML void element.
func IsVoidElement(name string) bool {
	_, ok := voidElements[name]

	return ok
}
