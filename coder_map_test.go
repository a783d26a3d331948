package pgcast_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilvcarvalho/pgcast"
)

func TestCoderMapStampsAliasedCodersWithTheirOwnOID(t *testing.T) {
	r := pgcast.NewRegistry()
	require.NoError(t, r.RegisterType(pgcast.TextFormatCode, "int2", stubEncode, stubDecode))
	require.NoError(t, r.AliasType(pgcast.TextFormatCode, "int4", "int2"))
	require.NoError(t, r.AliasType(pgcast.TextFormatCode, "int8", "int2"))

	conn := &fakeConn{rows: []pgcast.CatalogRow{
		plainRow(21, "int2", "int2in"),
		plainRow(23, "int4", "int4in"),
		plainRow(20, "int8", "int8in"),
	}}
	bundle, err := pgcast.NewCoderMapsBundle(context.Background(), conn, r)
	require.NoError(t, err)

	m := bundle.MapFor(pgcast.TextFormatCode, pgcast.DecodeDirection)
	require.Equal(t, 3, m.Len())

	for _, oid := range []uint32{21, 23, 20} {
		coder := m.CoderForOID(oid)
		require.NotNil(t, coder, "oid %d", oid)
		assert.Equal(t, oid, coder.OID)
		assert.True(t, coder.CanDecode())
	}
	assert.Equal(t, "int2", m.CoderForOID(21).Name)
	assert.Equal(t, "int4", m.CoderForOID(23).Name)
	assert.Equal(t, "int8", m.CoderForOID(20).Name)
}

func TestCoderMapSkipsUnregisteredTypes(t *testing.T) {
	ctx := context.Background()
	bundle, err := defaultBundle(ctx)
	require.NoError(t, err)

	// point has no coder in the default registry
	for _, format := range []int16{pgcast.TextFormatCode, pgcast.BinaryFormatCode} {
		for _, dir := range []pgcast.Direction{pgcast.EncodeDirection, pgcast.DecodeDirection} {
			m := bundle.MapFor(format, dir)
			assert.Nil(t, m.CoderForOID(600), "format %d dir %v", format, dir)
			assert.Nil(t, m.CoderForName("point"), "format %d dir %v", format, dir)
		}
	}
}

func TestArrayWithUnmappedElementIsAbsentFromEveryMap(t *testing.T) {
	ctx := context.Background()
	bundle, err := defaultBundle(ctx)
	require.NoError(t, err)

	// _point's element type point is unmapped, so _point must not resolve
	for _, format := range []int16{pgcast.TextFormatCode, pgcast.BinaryFormatCode} {
		for _, dir := range []pgcast.Direction{pgcast.EncodeDirection, pgcast.DecodeDirection} {
			m := bundle.MapFor(format, dir)
			assert.Nil(t, m.CoderForOID(1017), "format %d dir %v", format, dir)
			assert.Nil(t, m.CoderForName("_point"), "format %d dir %v", format, dir)
		}
	}
}

func TestArrayCoderResolution(t *testing.T) {
	ctx := context.Background()
	bundle, err := defaultBundle(ctx)
	require.NoError(t, err)

	m := bundle.MapFor(pgcast.TextFormatCode, pgcast.DecodeDirection)

	intArray := m.CoderForName("_int4")
	require.NotNil(t, intArray)
	assert.Equal(t, uint32(1007), intArray.OID)
	require.NotNil(t, intArray.ElementsType)
	assert.Equal(t, "int4", intArray.ElementsType.Name)
	assert.Equal(t, uint32(23), intArray.ElementsType.OID)

	// element coder is shared by reference with the plain entry
	assert.Same(t, m.CoderForOID(23), intArray.ElementsType)
}

func TestArrayCoderQuotationFlag(t *testing.T) {
	ctx := context.Background()
	bundle, err := defaultBundle(ctx)
	require.NoError(t, err)

	m := bundle.MapFor(pgcast.TextFormatCode, pgcast.EncodeDirection)

	tests := []struct {
		name           string
		needsQuotation bool
	}{
		{"_int2", false},
		{"_int4", false},
		{"_int8", false},
		{"_float4", false},
		{"_float8", false},
		{"_bool", false},
		{"_date", false},
		{"_timestamp", false},
		{"_timestamptz", false},
		{"_text", true},
		{"_numeric", true},
		{"_bytea", true},
		{"_inet", true},
		{"_json", true},
	}
	for _, tt := range tests {
		coder := m.CoderForName(tt.name)
		require.NotNil(t, coder, tt.name)
		assert.Equal(t, tt.needsQuotation, coder.NeedsQuotation, tt.name)
	}
}

func TestBinaryMapsHaveNoArrayCoders(t *testing.T) {
	ctx := context.Background()
	bundle, err := defaultBundle(ctx)
	require.NoError(t, err)

	for _, dir := range []pgcast.Direction{pgcast.EncodeDirection, pgcast.DecodeDirection} {
		m := bundle.MapFor(pgcast.BinaryFormatCode, dir)
		assert.Nil(t, m.CoderForName("_int4"), "dir %v", dir)
		assert.Nil(t, m.CoderForName("_text"), "dir %v", dir)
	}
}
