package csvstream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, p *Parser) []*Row {
	t.Helper()

	var rows []*Row
	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestParser_Basic(t *testing.T) {
	input := "name,qty\nwidget,5\ngadget,3\n"

	p, err := New(strings.NewReader(input))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	assert.Equal(t, []string{"name", "qty"}, p.Headers())
	assert.True(t, p.HasHeader("qty"))
	assert.False(t, p.HasHeader("price"))

	rows := readAll(t, p)
	require.Len(t, rows, 2)
	assert.Equal(t, "widget", rows[0].Get("name"))
	assert.Equal(t, "5", rows[0].Get("qty"))
	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, 3, rows[1].LineNumber)
}

func TestParser_LowercaseHeaders(t *testing.T) {
	input := "ItemNumber,Desc1\nA-1,ammo\n"

	p, err := New(strings.NewReader(input), WithLowercaseHeaders(true))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	assert.Equal(t, []string{"itemnumber", "desc1"}, p.Headers())

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "A-1", rows[0].Get("itemnumber"))
}

func TestParser_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFname\nvalue\n"

	p, err := New(strings.NewReader(input))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	assert.Equal(t, []string{"name"}, p.Headers())
}

func TestParser_ShortRowsPadEmpty(t *testing.T) {
	input := "a,b,c\n1,2\n"

	p, err := New(strings.NewReader(input))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Get("b"))
	assert.Equal(t, "", rows[0].Get("c"))
}

func TestParser_TrimSpace(t *testing.T) {
	input := " name , qty \n widget , 5 \n"

	p, err := New(strings.NewReader(input), WithTrimSpace(true))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "widget", rows[0].Get("name"))
	assert.Equal(t, "5", rows[0].Get("qty"))
}

func TestParser_CustomDelimiter(t *testing.T) {
	input := "name;qty\nwidget;5\n"

	p, err := New(strings.NewReader(input), WithDelimiter(';'))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	rows := readAll(t, p)
	require.Len(t, rows, 1)
	assert.Equal(t, "widget", rows[0].Get("name"))
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := New(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParser_HeaderOnly(t *testing.T) {
	p, err := New(strings.NewReader("name,qty\n"))
	require.NoError(t, err)
	require.NoError(t, p.ParseHeader())

	_, err = p.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestParser_MissingHeader(t *testing.T) {
	p, err := New(strings.NewReader("\n"))
	require.NoError(t, err)

	// Blank lines are skipped by the reader, leaving no header to parse.
	assert.ErrorIs(t, p.ParseHeader(), ErrMissingHeader)
}

func TestRow_IsEmpty(t *testing.T) {
	assert.True(t, (&Row{Data: map[string]string{"a": "", "b": ""}}).IsEmpty())
	assert.False(t, (&Row{Data: map[string]string{"a": "x"}}).IsEmpty())
	assert.True(t, (&Row{Data: map[string]string{}}).IsEmpty())
}
