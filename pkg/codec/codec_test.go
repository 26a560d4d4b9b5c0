package codec

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_SkipsCommentsAndBlankLines(t *testing.T) {
	doc := "# header comment\n\nStatic 1\n   # indented comment\nBegin Roles\n"
	r := NewReader(strings.NewReader(doc))

	l, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, l.Num)
	assert.Equal(t, []string{"Static", "1"}, l.Fields)

	l, err = r.Next()
	require.NoError(t, err)
	assert.True(t, l.Is("Begin", "Roles"))

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_PeekDoesNotConsume(t *testing.T) {
	r := NewReader(strings.NewReader("KNN 1\nBegin Roles\n"))

	peeked, err := r.Peek()
	require.NoError(t, err)
	again, err := r.Peek()
	require.NoError(t, err)
	assert.Equal(t, peeked, again)

	next, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)

	next, err = r.Next()
	require.NoError(t, err)
	assert.True(t, next.Is("Begin", "Roles"))
}

func TestReader_Expect(t *testing.T) {
	r := NewReader(strings.NewReader("Begin Roles\nEnd Samples\n"))

	_, err := r.Expect("Begin", "Roles")
	require.NoError(t, err)

	_, err = r.Expect("End", "Roles")
	assert.ErrorIs(t, err, domain.ErrFormat)

	_, err = r.Expect("End", "Roles")
	assert.ErrorIs(t, err, domain.ErrFormat, "EOF must surface as a format error")
}

func TestLine_Numbers(t *testing.T) {
	l := Line{Num: 7, Fields: []string{"3", "-1.5", "abc"}}

	n, err := l.Int(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := l.Float(1)
	require.NoError(t, err)
	assert.Equal(t, -1.5, f)

	_, err = l.Int(2)
	assert.ErrorIs(t, err, domain.ErrFormat)
	_, err = l.Float(5)
	assert.ErrorIs(t, err, domain.ErrFormat)

	vals, err := l.Floats(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -1.5}, vals)
}

func TestWriter_FloatsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Comment("generated")
	w.Line(1, -1, "Goalie", 0.1+0.2, true)
	require.NoError(t, w.Flush())

	assert.Equal(t, "# generated\n1 -1 Goalie 0.30000000000000004 1\n", buf.String())

	r := NewReader(&buf)
	l, err := r.Next()
	require.NoError(t, err)
	f, err := l.Float(3)
	require.NoError(t, err)
	assert.Equal(t, 0.1+0.2, f)
}

func TestReader_Row(t *testing.T) {
	r := NewReader(strings.NewReader("2 -20 -8\n3 1\n5 0 0\n"))

	v, err := r.Row(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-20, -8}, v)

	_, err = r.Row(3, 2)
	assert.ErrorIs(t, err, domain.ErrFormat, "short row")

	_, err = r.Row(4, 2)
	assert.ErrorIs(t, err, domain.ErrFormat, "wrong unum")

	_, err = r.Row(6, 2)
	assert.ErrorIs(t, err, domain.ErrFormat, "end of input")
}
