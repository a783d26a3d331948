package pgcast

// NewDefaultRegistry returns a registry pre-populated with coders for the
// common scalar types. Callers who want a process-wide default construct one
// instance at startup and pass it explicitly; there is no implicit global.
//
// The binary format registers a strict subset of the text format: full
// round trips only for bool, bytea, text and the integer types, and decode
// paths for a few numeric and temporal types. Types the server would return
// for extensions (uuid, hstore, ltree, citext, macaddr, interval, bit,
// geometric types, tsvector) are deliberately not registered here; they
// decode as opaque text until a caller registers a coder for them.
func NewDefaultRegistry() *CoderRegistry {
	r := NewRegistry()

	// text format
	r.RegisterType(TextFormatCode, "int2", encodeIntText, decodeIntText)
	r.RegisterType(TextFormatCode, "int4", encodeIntText, decodeIntText)
	r.RegisterType(TextFormatCode, "int8", encodeIntText, decodeIntText)
	r.RegisterType(TextFormatCode, "oid", encodeIntText, decodeIntText)
	r.RegisterType(TextFormatCode, "float4", encodeFloatText, decodeFloatText)
	r.RegisterType(TextFormatCode, "float8", encodeFloatText, decodeFloatText)
	r.RegisterType(TextFormatCode, "bool", encodeBoolText, decodeBoolText)
	r.RegisterType(TextFormatCode, "text", encodeTextText, decodeTextText)
	r.RegisterType(TextFormatCode, "bytea", encodeByteaText, decodeByteaText)
	r.RegisterType(TextFormatCode, "numeric", encodeNumericText, decodeNumericText)
	r.RegisterType(TextFormatCode, "timestamp", encodeTimestampText, decodeTimestampText)
	r.RegisterType(TextFormatCode, "timestamptz", encodeTimestamptzText, decodeTimestamptzText)
	r.RegisterType(TextFormatCode, "date", encodeDateText, decodeDateText)
	r.RegisterType(TextFormatCode, "json", encodeJSONText, decodeJSONText)
	r.RegisterType(TextFormatCode, "inet", encodeInetText, decodeInetText)

	r.AliasType(TextFormatCode, "varchar", "text")
	r.AliasType(TextFormatCode, "char", "text")
	r.AliasType(TextFormatCode, "bpchar", "text")
	r.AliasType(TextFormatCode, "name", "text")
	r.AliasType(TextFormatCode, "decimal", "numeric")
	r.AliasType(TextFormatCode, "jsonb", "json")
	r.AliasType(TextFormatCode, "cidr", "inet")

	// binary format
	r.RegisterType(BinaryFormatCode, "int2", encodeInt2Binary, decodeInt2Binary)
	r.RegisterType(BinaryFormatCode, "int4", encodeInt4Binary, decodeInt4Binary)
	r.RegisterType(BinaryFormatCode, "int8", encodeInt8Binary, decodeInt8Binary)
	r.RegisterType(BinaryFormatCode, "oid", encodeInt4Binary, decodeInt4Binary)
	r.RegisterType(BinaryFormatCode, "bool", encodeBoolBinary, decodeBoolBinary)
	r.RegisterType(BinaryFormatCode, "text", encodeTextText, decodeTextText)
	r.RegisterType(BinaryFormatCode, "bytea", encodeByteaBinary, decodeByteaBinary)
	r.RegisterType(BinaryFormatCode, "float4", nil, decodeFloat4Binary)
	r.RegisterType(BinaryFormatCode, "float8", nil, decodeFloat8Binary)
	r.RegisterType(BinaryFormatCode, "timestamp", nil, decodeTimestampBinary)
	r.RegisterType(BinaryFormatCode, "timestamptz", nil, decodeTimestampBinary)
	r.RegisterType(BinaryFormatCode, "date", nil, decodeDateBinary)

	r.AliasType(BinaryFormatCode, "varchar", "text")
	r.AliasType(BinaryFormatCode, "char", "text")
	r.AliasType(BinaryFormatCode, "bpchar", "text")
	r.AliasType(BinaryFormatCode, "name", "text")

	return r
}
