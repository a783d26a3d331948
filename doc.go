// Package pgcast converts values between Go types and the PostgreSQL wire
// representation.
/*
pgcast is the type-casting core of a PostgreSQL client. It keeps a static
CoderRegistry of conversion strategies per (wire format, direction, type
name), joins that registry against a live pg_type catalog snapshot to build
per-connection CoderMap lookup tables, and wraps those tables in two
consumers: ResultTypeMap, which decodes result values by oid, and
ParameterTypeMap, which selects encoders for outgoing values by their runtime
type.

Building the maps costs one catalog query:

	registry := pgcast.NewDefaultRegistry()
	bundle, err := pgcast.NewCoderMapsBundle(ctx, conn, registry)
	if err != nil {
		return err
	}
	results, err := pgcast.NewResultTypeMap(ctx, bundle, nil)
	params, err := pgcast.NewParameterTypeMap(ctx, bundle, nil)

Everything built from one bundle shares one catalog snapshot, so the four
underlying maps always agree on oid and name assignments.

Custom Type Support

Register additional coders on a registry before building a bundle:

	registry.RegisterType(pgcast.TextFormatCode, "uuid", encodeUUID, decodeUUID)
	registry.AliasType(pgcast.TextFormatCode, "citext", "text")

Array types resolve automatically: when a catalog snapshot contains an array
type whose element type has a registered coder, the text-format maps gain an
array coder for it. Array types whose element type is unregistered are left
unmapped.

Diagnostics

Decoding an oid with no registered coder is not an error; the value comes
back as raw text (or BinaryData in the binary format) and a warning naming
the type is emitted once per (format, oid) pair. Adapters for zerolog, zap,
logrus and the testing package live under log/.
*/
package pgcast
