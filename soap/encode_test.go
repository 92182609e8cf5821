package soap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrderParams() []Param {
	order := NewMap().
		Append("shipDate", String("2024-05-06")).
		Append("shipViaCode", String("UG")).
		Append("purchaseOrderNumber", String("PO-1"))

	item := NewMap().
		Append("itemNumber", String("123")).
		Append("quantity", String("2")).
		Append("allowBackOrder", Bool(false))
	order.Append("items", Array(item))

	return []Param{
		{Name: "username", Value: String("user")},
		{Name: "password", Value: String("secret")},
		{Name: "order", Value: order},
	}
}

func TestEncodeEnvelope_Structure(t *testing.T) {
	body, err := EncodeEnvelope("urn:webservice", "createOrder", buildOrderParams())
	require.NoError(t, err)

	xml := string(body)

	assert.Contains(t, xml, `xmlns:ns2="http://xml.apache.org/xml-soap"`)
	assert.Contains(t, xml, "<ns1:createOrder>")
	assert.Contains(t, xml, `<username xsi:type="xsd:string">user</username>`)
	assert.Contains(t, xml, `<order xsi:type="ns2:Map">`)
	assert.Contains(t, xml, `<key xsi:type="xsd:string">shipDate</key>`)
	assert.Contains(t, xml, `<value xsi:type="xsd:string">2024-05-06</value>`)
}

func TestEncodeEnvelope_ArrayTypeMarker(t *testing.T) {
	body, err := EncodeEnvelope("urn:webservice", "createOrder", buildOrderParams())
	require.NoError(t, err)

	xml := string(body)

	// The schema marker stays Map[2] regardless of the element count.
	assert.Contains(t, xml, `SOAP-ENC:arrayType="ns2:Map[2]"`)
	assert.Contains(t, xml, `xsi:type="SOAP-ENV:Array"`)
	assert.Contains(t, xml, `<item xsi:type="ns2:Map">`)
}

func TestEncodeEnvelope_BooleanTypeTag(t *testing.T) {
	body, err := EncodeEnvelope("urn:webservice", "createOrder", buildOrderParams())
	require.NoError(t, err)

	assert.Contains(t, string(body), `<value xsi:type="xsd:boolean">false</value>`)
}

func TestEncodeEnvelope_PairOrder(t *testing.T) {
	body, err := EncodeEnvelope("urn:webservice", "createOrder", buildOrderParams())
	require.NoError(t, err)

	xml := string(body)

	shipDate := strings.Index(xml, ">shipDate<")
	shipVia := strings.Index(xml, ">shipViaCode<")
	po := strings.Index(xml, ">purchaseOrderNumber<")
	items := strings.Index(xml, ">items<")

	require.NotEqual(t, -1, shipDate)
	require.NotEqual(t, -1, shipVia)
	require.NotEqual(t, -1, po)
	require.NotEqual(t, -1, items)

	assert.Less(t, shipDate, shipVia)
	assert.Less(t, shipVia, po)
	assert.Less(t, po, items)
}

func TestEncodeEnvelope_EscapesContent(t *testing.T) {
	params := []Param{{Name: "username", Value: String(`a<b&"c"`)}}

	body, err := EncodeEnvelope("urn:webservice", "getItems", params)
	require.NoError(t, err)

	xml := string(body)
	assert.Contains(t, xml, "a&lt;b&amp;")
	assert.NotContains(t, xml, `>a<b&`)
}

func TestEncodeEnvelope_NilValueEncodesEmptyString(t *testing.T) {
	body, err := EncodeEnvelope("urn:webservice", "getItems", []Param{{Name: "itemnumber"}})
	require.NoError(t, err)

	assert.Contains(t, string(body), `<itemnumber xsi:type="xsd:string"></itemnumber>`)
}
