package soap

// Kind identifies which variant a Node holds.
type Kind int

const (
	// KindScalar is a plain string value.
	KindScalar Kind = iota
	// KindBool is a scalar carrying an explicit xsd:boolean type tag. The
	// vendor's engine loses the type otherwise, so booleans are modeled
	// separately from plain scalars.
	KindBool
	// KindMap is an ordered sequence of key/value pairs (ns2:Map).
	KindMap
	// KindArray is a typed array of Map nodes (SOAP-ENC array).
	KindArray
)

// Pair is one entry of a Map node. Pair order is significant on the wire:
// the vendor reads some positions directly (the first pair of every response
// is the return code, and createOrder reports the order number as the last
// pair), so Maps never reorder their entries.
type Pair struct {
	Key   string
	Value *Node
}

// Node models the vendor's generic map/array wire convention as a tagged
// variant: a node is a Scalar, a boolean Scalar, a Map, or an Array of Maps.
// The same structure is used for encoding requests and for decoded responses.
type Node struct {
	Kind  Kind
	Text  string  // scalar value, valid for KindScalar
	Flag  bool    // boolean value, valid for KindBool
	Pairs []Pair  // ordered entries, valid for KindMap
	Elems []*Node // array elements (each a Map), valid for KindArray
}

// String returns a scalar node.
func String(s string) *Node {
	return &Node{Kind: KindScalar, Text: s}
}

// Bool returns a boolean-tagged scalar node.
func Bool(b bool) *Node {
	return &Node{Kind: KindBool, Flag: b}
}

// NewMap returns an empty Map node.
func NewMap() *Node {
	return &Node{Kind: KindMap}
}

// Array returns an Array node over the given Map elements.
func Array(elems ...*Node) *Node {
	return &Node{Kind: KindArray, Elems: elems}
}

// Append adds a key/value pair to the end of a Map node and returns the node
// for chaining. Appending to a non-Map node is a programming error and
// panics.
func (n *Node) Append(key string, value *Node) *Node {
	if n.Kind != KindMap {
		panic("soap: Append on non-map node")
	}
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})

	return n
}

// Len returns the number of pairs of a Map node, or the number of elements
// of an Array node.
func (n *Node) Len() int {
	switch n.Kind {
	case KindMap:
		return len(n.Pairs)
	case KindArray:
		return len(n.Elems)
	default:
		return 0
	}
}

// First returns the first pair of a Map node, or nil if the node is not a
// Map or is empty.
func (n *Node) First() *Pair {
	if n.Kind != KindMap || len(n.Pairs) == 0 {
		return nil
	}
	return &n.Pairs[0]
}

// Last returns the last pair of a Map node, or nil if the node is not a Map
// or is empty.
func (n *Node) Last() *Pair {
	if n.Kind != KindMap || len(n.Pairs) == 0 {
		return nil
	}
	return &n.Pairs[len(n.Pairs)-1]
}

// Lookup scans a Map node for the first pair with the given key. Keys are
// vendor-defined and case-sensitive.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n.Kind != KindMap {
		return nil, false
	}
	for i := range n.Pairs {
		if n.Pairs[i].Key == key {
			return n.Pairs[i].Value, true
		}
	}

	return nil, false
}

// StringValue returns the scalar text of a node, or "" for non-scalar nodes.
// Boolean nodes render as "true" or "false".
func (n *Node) StringValue() string {
	switch n.Kind {
	case KindScalar:
		return n.Text
	case KindBool:
		if n.Flag {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
