package kdl

// Document is the top-level container for a KDL document.
type Document struct {
	Nodes []*Node
}

// New creates a new empty Document.
func New() *Document {
	return &Document{
		Nodes: make([]*Node, 0, 32),
	}
}

// AddNode adds a Node to this document.
func (d *Document) AddNode(child *Node) {
	d.Nodes = append(d.Nodes, child)
}

// Node is a single KDL node: a name, its arguments followed by its
// properties, and its children.
type Node struct {
	Name    string
	Type    string // type annotation, if any
	Entries []*Entry

	// HasChildren reports whether the node has at least one child. An empty
	// children block is the same as none.
	Children    []*Node
	HasChildren bool
}

// Entry is either a positional argument or a named property of a Node.
type Entry struct {
	Name  string
	Named bool
	Value *Value
}

// Arguments returns the positional entries of n in source order.
func (n *Node) Arguments() []*Value {
	var args []*Value

	for _, e := range n.Entries {
		if !e.Named {
			args = append(args, e.Value)
		}
	}

	return args
}

// Argument returns the first positional entry of n, if any.
func (n *Node) Argument() (*Value, bool) {
	for _, e := range n.Entries {
		if !e.Named {
			return e.Value, true
		}
	}

	return nil, false
}

// Properties returns the named entries of n sorted by name. KDL properties
// are unordered and a repeated name keeps only its last value.
func (n *Node) Properties() []*Entry {
	var props []*Entry

	for _, e := range n.Entries {
		if e.Named {
			props = append(props, e)
		}
	}

	return props
}

// Property returns the value of the property named key.
func (n *Node) Property(key string) (*Value, bool) {
	for _, e := range n.Entries {
		if e.Named && e.Name == key {
			return e.Value, true
		}
	}

	return nil, false
}
