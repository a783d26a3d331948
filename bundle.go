package pgcast

import (
	"context"

	"github.com/pkg/errors"
)

// CoderMapsBundle holds the four CoderMap instances (text/binary ×
// encode/decode) for one catalog snapshot, plus a name-by-oid index for
// diagnostics. All four maps are built from a single catalog query, so they
// always agree on oid and name assignments. A bundle is immutable; a fresh
// snapshot requires a new bundle.
type CoderMapsBundle struct {
	maps           [2][2]*CoderMap
	typeNamesByOID map[uint32]string
}

// NewCoderMapsBundle retrieves the catalog snapshot through q (exactly one
// query) and builds all four maps from it. A nil registry uses
// NewDefaultRegistry.
func NewCoderMapsBundle(ctx context.Context, q Querier, registry *CoderRegistry) (*CoderMapsBundle, error) {
	if registry == nil {
		registry = NewDefaultRegistry()
	}

	rows, err := loadCatalogRows(ctx, q)
	if err != nil {
		return nil, err
	}

	b := &CoderMapsBundle{
		typeNamesByOID: make(map[uint32]string, len(rows)),
	}
	for _, row := range rows {
		b.typeNamesByOID[row.OID] = row.Name
	}

	for _, format := range []int16{TextFormatCode, BinaryFormatCode} {
		var arrayFactory ArrayCoderFactory
		if format == TextFormatCode {
			arrayFactory = NewTextArrayCoder
		}
		for _, dir := range []Direction{EncodeDirection, DecodeDirection} {
			bucket, err := registry.Coders(format, dir)
			if err != nil {
				return nil, err
			}
			b.maps[format][dir] = newCoderMap(rows, bucket, format, arrayFactory)
		}
	}

	return b, nil
}

// BundleFrom resolves src into a bundle. src may be a Querier, in which case
// a new bundle is built against it, or an existing *CoderMapsBundle, which is
// returned as is. Supplying a registry together with an existing bundle is an
// error: the bundle has already committed to one.
func BundleFrom(ctx context.Context, src interface{}, registry *CoderRegistry) (*CoderMapsBundle, error) {
	switch s := src.(type) {
	case *CoderMapsBundle:
		if registry != nil {
			return nil, errors.New("cannot supply a registry together with an existing bundle")
		}
		return s, nil
	case Querier:
		return NewCoderMapsBundle(ctx, s, registry)
	default:
		return nil, errors.Errorf("expected Querier or *CoderMapsBundle, got %T", src)
	}
}

// MapFor returns the coder map for one format and direction, or nil when the
// arguments are outside the valid set.
func (b *CoderMapsBundle) MapFor(format int16, dir Direction) *CoderMap {
	if validateFormat(format) != nil || validateDirection(dir) != nil {
		return nil
	}
	return b.maps[format][dir]
}

// EachFormat calls fn with the text and binary map for one direction.
func (b *CoderMapsBundle) EachFormat(dir Direction, fn func(format int16, m *CoderMap)) {
	if validateDirection(dir) != nil {
		return
	}
	for _, format := range []int16{TextFormatCode, BinaryFormatCode} {
		fn(format, b.maps[format][dir])
	}
}

// TypeNameForOID reports the catalog type name for oid.
func (b *CoderMapsBundle) TypeNameForOID(oid uint32) (string, bool) {
	name, ok := b.typeNamesByOID[oid]
	return name, ok
}
