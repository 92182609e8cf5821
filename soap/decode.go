package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMalformedResponse indicates the response body could not be
	// interpreted as a SOAP envelope for the requested operation.
	ErrMalformedResponse = errors.New("soap: malformed response envelope")
	// ErrFault indicates the service answered with a SOAP fault instead of
	// an operation response.
	ErrFault = errors.New("soap: service returned a fault")
)

// DecodeResponse parses a response envelope and returns the decoded return
// value of the given operation, the pair sequence described by
// "<operation>Response -> return -> item" on the wire.
func DecodeResponse(body []byte, operation string) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	want := operation + "Response"

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing %s element", ErrMalformedResponse, want)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Fault":
			fault, err := decodeElement(d, start)
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s", ErrFault, faultSummary(fault))
		case want:
			return decodeReturn(d, start)
		}
	}
}

// decodeReturn decodes the first child element of the operation response
// (the rpc return wrapper) and discards the rest.
func decodeReturn(d *xml.Decoder, start xml.StartElement) (*Node, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return decodeElement(d, t)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil, fmt.Errorf("%w: empty %s element", ErrMalformedResponse, start.Name.Local)
			}
		}
	}
}

// child is a decoded child element together with its element name.
type child struct {
	name string
	node *Node
}

// decodeElement reads the content of one element (start already consumed)
// and builds a node from it.
func decodeElement(d *xml.Decoder, start xml.StartElement) (*Node, error) {
	var (
		text     strings.Builder
		children []child
	)

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node, err := decodeElement(d, t)
			if err != nil {
				return nil, err
			}
			children = append(children, child{name: t.Name.Local, node: node})
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return classify(children, strings.TrimSpace(text.String())), nil
		}
	}
}

// classify projects a decoded element into the node variants. An element
// with no children is a scalar. An element whose children are all <item>
// entries is a Map when the items carry key/value structure, otherwise an
// Array of its item nodes. Any other element is treated as a Map keyed by
// child element names.
func classify(children []child, text string) *Node {
	if len(children) == 0 {
		return String(text)
	}

	allItems := true
	for _, c := range children {
		if c.name != "item" {
			allItems = false
			break
		}
	}

	if allItems {
		if pairs, ok := asPairs(children); ok {
			return &Node{Kind: KindMap, Pairs: pairs}
		}

		elems := make([]*Node, 0, len(children))
		for _, c := range children {
			elems = append(elems, c.node)
		}
		return &Node{Kind: KindArray, Elems: elems}
	}

	node := NewMap()
	for _, c := range children {
		node.Append(c.name, c.node)
	}

	return node
}

// asPairs interprets item children as key/value pairs. An item qualifies
// when it carries a <key> or a <value> child; a missing key yields an empty
// pair key (the vendor leaves some positional fields unlabeled), a missing
// value yields an empty scalar.
func asPairs(children []child) ([]Pair, bool) {
	pairs := make([]Pair, 0, len(children))

	for _, c := range children {
		if c.node.Kind != KindMap {
			return nil, false
		}

		key, hasKey := c.node.Lookup("key")
		value, hasValue := c.node.Lookup("value")
		if !hasKey && !hasValue {
			return nil, false
		}

		pair := Pair{Value: value}
		if hasKey {
			pair.Key = key.StringValue()
		}
		if !hasValue {
			pair.Value = String("")
		}
		pairs = append(pairs, pair)
	}

	return pairs, true
}

// faultSummary renders a short description of a decoded SOAP fault.
func faultSummary(fault *Node) string {
	code, _ := fault.Lookup("faultcode")
	reason, _ := fault.Lookup("faultstring")

	var parts []string
	if code != nil && code.StringValue() != "" {
		parts = append(parts, code.StringValue())
	}
	if reason != nil && reason.StringValue() != "" {
		parts = append(parts, reason.StringValue())
	}
	if len(parts) == 0 {
		return "no fault detail"
	}

	return strings.Join(parts, ": ")
}
