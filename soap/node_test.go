package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_MapPreservesOrder(t *testing.T) {
	m := NewMap().
		Append("first", String("1")).
		Append("second", String("2")).
		Append("first", String("3"))

	require.Equal(t, 3, m.Len())
	assert.Equal(t, "first", m.Pairs[0].Key)
	assert.Equal(t, "second", m.Pairs[1].Key)
	assert.Equal(t, "first", m.Pairs[2].Key)

	assert.Equal(t, "first", m.First().Key)
	assert.Equal(t, "3", m.Last().Value.Text)

	// Lookup returns the first match for duplicate keys
	v, ok := m.Lookup("first")
	require.True(t, ok)
	assert.Equal(t, "1", v.Text)
}

func TestNode_LookupMissing(t *testing.T) {
	m := NewMap().Append("present", String("x"))

	_, ok := m.Lookup("absent")
	assert.False(t, ok)

	_, ok = String("scalar").Lookup("present")
	assert.False(t, ok)
}

func TestNode_FirstLastOnEmptyOrScalar(t *testing.T) {
	assert.Nil(t, NewMap().First())
	assert.Nil(t, NewMap().Last())
	assert.Nil(t, String("x").First())
}

func TestNode_StringValue(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{name: "scalar", node: String("abc"), want: "abc"},
		{name: "bool true", node: Bool(true), want: "true"},
		{name: "bool false", node: Bool(false), want: "false"},
		{name: "map", node: NewMap(), want: ""},
		{name: "array", node: Array(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.StringValue())
		})
	}
}

func TestNode_AppendOnNonMapPanics(t *testing.T) {
	assert.Panics(t, func() {
		String("x").Append("k", String("v"))
	})
}
