package kdl

import (
	"fmt"
	"io"
	"maps"
	"math/big"
	"slices"
	"strings"

	kdlgo "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// ParseError wraps a syntax error reported by the KDL decoder.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string { return "kdl: " + e.Err.Error() }

// Unwrap returns the decoder's error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a KDL document from an io.Reader.
//
// Any returned syntax error is a *[ParseError].
func Parse(r io.Reader) (*Document, error) {
	src, err := kdlgo.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := New()
	for _, n := range src.Nodes {
		doc.AddNode(fromNode(n))
	}

	return doc, nil
}

// ParseString parses a KDL document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func fromNode(n *document.Node) *Node {
	node := &Node{
		Name: nameOf(n.Name),
		Type: string(n.Type),
	}

	for _, arg := range n.Arguments {
		node.Entries = append(node.Entries, &Entry{Value: fromValue(arg)})
	}

	for _, name := range slices.Sorted(maps.Keys(n.Properties)) {
		node.Entries = append(node.Entries, &Entry{
			Name:  name,
			Named: true,
			Value: fromValue(n.Properties[name]),
		})
	}

	for _, child := range n.Children {
		node.Children = append(node.Children, fromNode(child))
	}

	node.HasChildren = len(node.Children) > 0

	return node
}

func nameOf(v *document.Value) string {
	if v == nil {
		return ""
	}

	if s, ok := v.Value.(string); ok {
		return s
	}

	return fmt.Sprint(v.Value)
}

func fromValue(v *document.Value) *Value {
	if v == nil {
		return NullValue()
	}

	out := convert(v.Value)
	out.Type = string(v.Type)

	return out
}

// convert maps a decoded Go value onto a Value.
func convert(x any) *Value {
	switch x := x.(type) {
	case nil:
		return NullValue()

	case string:
		return StringValue(x)

	case bool:
		return BoolValue(x)

	case int:
		return IntValue(int64(x))

	case int64:
		return IntValue(x)

	case *big.Int:
		if x.IsInt64() {
			return IntValue(x.Int64())
		}

		f, _ := new(big.Float).SetInt(x).Float64()

		return &Value{Kind: KindFloat, Float: f, Raw: x.String()}

	case float64:
		return &Value{Kind: KindFloat, Float: x}

	case *big.Float:
		f, acc := x.Float64()
		if acc == big.Exact {
			return &Value{Kind: KindFloat, Float: f}
		}

		return &Value{Kind: KindFloat, Float: f, Raw: x.Text('g', -1)}

	default:
		// Suffixed and other library-specific number forms keep their text.
		return StringValue(fmt.Sprint(x))
	}
}

// toNode is the inverse of fromNode, used when generating KDL text.
func toNode(n *Node) *document.Node {
	node := &document.Node{
		Name: &document.Value{Value: n.Name},
		Type: document.TypeAnnotation(n.Type),
	}

	for _, e := range n.Entries {
		val := toValue(e.Value)

		if !e.Named {
			node.Arguments = append(node.Arguments, val)

			continue
		}

		if node.Properties == nil {
			node.Properties = document.Properties{}
		}

		node.Properties[e.Name] = val
	}

	for _, child := range n.Children {
		node.Children = append(node.Children, toNode(child))
	}

	return node
}

func toValue(v *Value) *document.Value {
	if v == nil {
		return &document.Value{}
	}

	return &document.Value{
		Type:  document.TypeAnnotation(v.Type),
		Value: v.Native(),
	}
}

// Format writes d as KDL text using the decoder's generator. Parsing the
// output yields an equivalent document.
func (d *Document) Format(w io.Writer) error {
	out := &document.Document{Nodes: make([]*document.Node, 0, len(d.Nodes))}
	for _, n := range d.Nodes {
		out.Nodes = append(out.Nodes, toNode(n))
	}

	return kdlgo.Generate(out, w)
}

// String returns d formatted as KDL text.
func (d *Document) String() string {
	var sb strings.Builder

	_ = d.Format(&sb)

	return sb.String()
}
