package pgcast

import (
	"github.com/samber/lo"
)

// CoderMap is the per-connection lookup table for one wire format and one
// direction, built by joining a registry bucket against a catalog snapshot.
// It is immutable after construction and safe for concurrent readers.
type CoderMap struct {
	coders []*Coder
	byOID  map[uint32]*Coder
	byName map[string]*Coder
}

// newCoderMap cross-references the catalog rows with the registry bucket.
// Plain rows resolve first so that array rows can find their element coder by
// oid. arrayFactory may be nil, in which case array rows are skipped entirely
// (the binary format has no generic array codec here). An array row whose
// element type did not resolve is also skipped: no partial array coder is
// ever produced.
func newCoderMap(rows []CatalogRow, bucket map[string]*Coder, format int16, arrayFactory ArrayCoderFactory) *CoderMap {
	arrayRows := lo.Filter(rows, func(row CatalogRow, _ int) bool {
		return row.InputFunc == arrayInputFunc
	})
	plainRows := lo.Filter(rows, func(row CatalogRow, _ int) bool {
		return row.InputFunc != arrayInputFunc
	})

	byOID := make(map[uint32]*Coder, len(plainRows))

	for _, row := range plainRows {
		tmpl, ok := bucket[row.Name]
		if !ok {
			continue
		}
		coder := tmpl.clone()
		coder.Name = row.Name
		coder.OID = row.OID
		coder.Format = format
		byOID[row.OID] = coder
	}

	if arrayFactory != nil {
		for _, row := range arrayRows {
			elem, ok := byOID[row.ElementOID]
			if !ok {
				continue
			}
			coder := arrayFactory(elem)
			coder.Name = row.Name
			coder.OID = row.OID
			coder.Format = format
			coder.ElementsType = elem
			coder.NeedsQuotation = !tokenSafeElementNames[elem.Name]
			byOID[row.OID] = coder
		}
	}

	m := &CoderMap{
		coders: make([]*Coder, 0, len(byOID)),
		byOID:  byOID,
		byName: make(map[string]*Coder, len(byOID)),
	}
	for _, coder := range byOID {
		m.coders = append(m.coders, coder)
		m.byName[coder.Name] = coder
	}
	return m
}

// CoderForOID returns the resolved coder for oid, or nil.
func (m *CoderMap) CoderForOID(oid uint32) *Coder {
	return m.byOID[oid]
}

// CoderForName returns the resolved coder for a type name, or nil.
func (m *CoderMap) CoderForName(name string) *Coder {
	return m.byName[name]
}

// Coders returns all resolved coders in the map.
func (m *CoderMap) Coders() []*Coder {
	return m.coders
}

// Len returns the number of resolved coders.
func (m *CoderMap) Len() int {
	return len(m.byOID)
}
