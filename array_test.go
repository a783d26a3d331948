package pgcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilvcarvalho/pgcast"
)

func textCoderFor(t *testing.T, name string) *pgcast.Coder {
	t.Helper()
	reg := pgcast.NewDefaultRegistry()
	coders, err := reg.Coders(pgcast.TextFormatCode, pgcast.DecodeDirection)
	require.NoError(t, err)
	c := coders[name]
	require.NotNil(t, c)
	return c
}

func TestTextArrayCoderRoundTrip(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	buf, err := c.Encode([]int64{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{1,2,3}", string(buf))

	v, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, v)
}

func TestTextArrayCoderNested(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	buf, err := c.Encode([][]int64{{1, 2}, {3, 4}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{{1,2},{3,4}}", string(buf))

	v, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{
		[]interface{}{int64(1), int64(2)},
		[]interface{}{int64(3), int64(4)},
	}, v)
}

func TestTextArrayCoderEmpty(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	buf, err := c.Encode([]int64{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(buf))

	v, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, v)
}

func TestTextArrayCoderNilSlice(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	buf, err := c.Encode([]int64(nil), nil)
	require.NoError(t, err)
	assert.Nil(t, buf)
}

func TestTextArrayCoderQuoting(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "text"))
	c.NeedsQuotation = true

	src := []string{`b"ar`, `back\slash`, ``, `plain`, `NULL`}
	buf, err := c.Encode(src, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"b\"ar","back\\slash","",plain,"NULL"}`, string(buf))

	v, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{`b"ar`, `back\slash`, ``, `plain`, `NULL`}, v)
}

func TestTextArrayCoderNullElements(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "text"))

	v, err := c.Decode([]byte(`{foo,NULL,"NULL"}`))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"foo", nil, "NULL"}, v)
}

func TestTextArrayCoderEncodesNilElementsAsNull(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	buf, err := c.Encode([]interface{}{int64(1), nil, int64(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{1,NULL,3}", string(buf))
}

func TestTextArrayCoderRejectsScalars(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "int8"))

	_, err := c.Encode(int64(7), nil)
	assert.Error(t, err)
}

func TestTextArrayCoderDecodeErrors(t *testing.T) {
	c := pgcast.NewTextArrayCoder(textCoderFor(t, "text"))

	for _, src := range []string{"1,2", "{1,2", "{1}x", `{"open`, "{{1,2},{3}}", "{{1,2},{3,4,5}}"} {
		_, err := c.Decode([]byte(src))
		assert.Error(t, err, "input %q", src)
	}
}

func TestQuoteArrayElementIfNeeded(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"abc", "abc"},
		{"a b", "a b"},
		{"", `""`},
		{"NULL", `"NULL"`},
		{"null", `"null"`},
		{" a", `" a"`},
		{"a ", `"a "`},
		{"a,b", `"a,b"`},
		{"a{b", `"a{b"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pgcast.QuoteArrayElementIfNeeded(tt.src), "input %q", tt.src)
	}
}
