package pgcast

import (
	"context"

	"github.com/pkg/errors"
)

// Rows is the subset of a database result set needed to read the catalog
// snapshot. It matches the shape of pgx's Rows.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}

// Querier is the connection collaborator. A bundle build issues exactly one
// query through it.
type Querier interface {
	Query(ctx context.Context, sql string) (Rows, error)
}

// CatalogRow is one server-known type descriptor. ElementOID is zero for
// non-array types. InputFunc is the name of the type's input function; the
// value "array_in" identifies array types.
type CatalogRow struct {
	OID        uint32
	Name       string
	ElementOID uint32
	Delim      string
	InputFunc  string
}

const catalogSQL = `SELECT t.oid, t.typname, t.typelem, t.typdelim, ti.proname AS typinput
FROM pg_type AS t
JOIN pg_proc AS ti ON ti.oid = t.typinput`

const arrayInputFunc = "array_in"

func loadCatalogRows(ctx context.Context, q Querier) ([]CatalogRow, error) {
	rows, err := q.Query(ctx, catalogSQL)
	if err != nil {
		return nil, errors.Wrap(err, "query type catalog")
	}
	defer rows.Close()

	var catalog []CatalogRow
	for rows.Next() {
		var row CatalogRow
		if err := rows.Scan(&row.OID, &row.Name, &row.ElementOID, &row.Delim, &row.InputFunc); err != nil {
			return nil, errors.Wrap(err, "scan type catalog row")
		}
		catalog = append(catalog, row)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "read type catalog")
	}

	return catalog, nil
}
