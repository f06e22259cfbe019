// Package kdl adapts the github.com/sblinch/kdl-go decoder to the small
// document model the renderer walks.
//
// Nodes keep their positional arguments in source order followed by their
// properties sorted by name. Strings of every KDL 2 form, including
// multi-line and raw strings, arrive already unescaped and dedented.
//
//	doc, err := kdl.ParseString(`p "hello" class=intro`)
//
// Syntax errors are returned as *[ParseError].
package kdl
