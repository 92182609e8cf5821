package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Namespace URIs used by the vendor's rpc/encoded services.
const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	encodingNS = "http://schemas.xmlsoap.org/soap/encoding/"
	xsiNS      = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS      = "http://www.w3.org/2001/XMLSchema"
	// apacheMapNS is the Apache SOAP namespace the vendor's engine uses for
	// its generic map type (bound to the ns2 prefix below).
	apacheMapNS = "http://xml.apache.org/xml-soap"
)

// arrayTypeMarker is the arrayType annotation the vendor expects on the
// order items array. The schema marker is fixed at Map[2] regardless of the
// actual element count; the vendor's decoder ignores the declared length but
// rejects other markers.
const arrayTypeMarker = "ns2:Map[2]"

// Param is one named, ordered parameter of an rpc-style call body.
type Param struct {
	Name  string
	Value *Node
}

// EncodeEnvelope serializes an operation call into a SOAP 1.1 rpc/encoded
// envelope with the vendor's ns2:Map / SOAP-ENC array type tagging.
func EncodeEnvelope(namespace, operation string, params []Param) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)

	envelope := xml.StartElement{
		Name: xml.Name{Local: "SOAP-ENV:Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:SOAP-ENV"}, Value: envelopeNS},
			{Name: xml.Name{Local: "xmlns:SOAP-ENC"}, Value: encodingNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xsdNS},
			{Name: xml.Name{Local: "xmlns:ns1"}, Value: namespace},
			{Name: xml.Name{Local: "xmlns:ns2"}, Value: apacheMapNS},
			{Name: xml.Name{Local: "SOAP-ENV:encodingStyle"}, Value: encodingNS},
		},
	}
	if err := enc.EncodeToken(envelope); err != nil {
		return nil, err
	}

	body := xml.StartElement{Name: xml.Name{Local: "SOAP-ENV:Body"}}
	if err := enc.EncodeToken(body); err != nil {
		return nil, err
	}

	op := xml.StartElement{Name: xml.Name{Local: "ns1:" + operation}}
	if err := enc.EncodeToken(op); err != nil {
		return nil, err
	}

	for _, p := range params {
		if err := encodeNode(enc, p.Name, p.Value); err != nil {
			return nil, fmt.Errorf("soap: encoding parameter %q: %w", p.Name, err)
		}
	}

	for _, end := range []xml.EndElement{op.End(), body.End(), envelope.End()} {
		if err := enc.EncodeToken(end); err != nil {
			return nil, err
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeNode writes one node as an element with the given name, tagging it
// with the xsi:type the vendor's decoder requires for its kind.
func encodeNode(enc *xml.Encoder, name string, n *Node) error {
	if n == nil {
		n = String("")
	}

	switch n.Kind {
	case KindScalar:
		return encodeTyped(enc, name, "xsd:string", n.Text)

	case KindBool:
		return encodeTyped(enc, name, "xsd:boolean", strconv.FormatBool(n.Flag))

	case KindMap:
		start := xml.StartElement{
			Name: xml.Name{Local: name},
			Attr: []xml.Attr{{Name: xml.Name{Local: "xsi:type"}, Value: "ns2:Map"}},
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, pair := range n.Pairs {
			item := xml.StartElement{Name: xml.Name{Local: "item"}}
			if err := enc.EncodeToken(item); err != nil {
				return err
			}
			if err := encodeTyped(enc, "key", "xsd:string", pair.Key); err != nil {
				return err
			}
			if err := encodeNode(enc, "value", pair.Value); err != nil {
				return err
			}
			if err := enc.EncodeToken(item.End()); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	case KindArray:
		start := xml.StartElement{
			Name: xml.Name{Local: name},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "SOAP-ENC:arrayType"}, Value: arrayTypeMarker},
				{Name: xml.Name{Local: "xsi:type"}, Value: "SOAP-ENV:Array"},
			},
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, elem := range n.Elems {
			if err := encodeArrayElement(enc, elem); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())

	default:
		return fmt.Errorf("soap: unknown node kind %d", n.Kind)
	}
}

// encodeArrayElement writes one array element as an <item xsi:type="ns2:Map">
// carrying the element map's pairs.
func encodeArrayElement(enc *xml.Encoder, elem *Node) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "item"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xsi:type"}, Value: "ns2:Map"}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if elem != nil {
		for _, pair := range elem.Pairs {
			item := xml.StartElement{Name: xml.Name{Local: "item"}}
			if err := enc.EncodeToken(item); err != nil {
				return err
			}
			if err := encodeTyped(enc, "key", "xsd:string", pair.Key); err != nil {
				return err
			}
			if err := encodeNode(enc, "value", pair.Value); err != nil {
				return err
			}
			if err := enc.EncodeToken(item.End()); err != nil {
				return err
			}
		}
	}

	return enc.EncodeToken(start.End())
}

// encodeTyped writes a leaf element with an xsi:type attribute and character
// data content.
func encodeTyped(enc *xml.Encoder, name, xsiType, text string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xsi:type"}, Value: xsiType}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}

	return enc.EncodeToken(start.End())
}
