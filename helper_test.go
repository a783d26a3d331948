package pgcast_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/neilvcarvalho/pgcast"
)

// fakeConn is a Querier over a fixed catalog snapshot. It records how many
// queries were issued.
type fakeConn struct {
	rows       []pgcast.CatalogRow
	queryCount int
}

func (c *fakeConn) Query(ctx context.Context, sql string) (pgcast.Rows, error) {
	c.queryCount++
	return &fakeRows{rows: c.rows, idx: -1}, nil
}

type fakeRows struct {
	rows []pgcast.CatalogRow
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	if len(dest) != 5 {
		return fmt.Errorf("expected 5 scan targets, got %d", len(dest))
	}
	row := r.rows[r.idx]
	*(dest[0].(*uint32)) = row.OID
	*(dest[1].(*string)) = row.Name
	*(dest[2].(*uint32)) = row.ElementOID
	*(dest[3].(*string)) = row.Delim
	*(dest[4].(*string)) = row.InputFunc
	return nil
}

func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Close()     {}

func plainRow(oid uint32, name, inputFunc string) pgcast.CatalogRow {
	return pgcast.CatalogRow{OID: oid, Name: name, Delim: ",", InputFunc: inputFunc}
}

func arrayRow(oid uint32, name string, elementOID uint32) pgcast.CatalogRow {
	return pgcast.CatalogRow{OID: oid, Name: name, ElementOID: elementOID, Delim: ",", InputFunc: "array_in"}
}

// defaultCatalogRows is a realistic pg_type subset. point has no registered
// coder in the default registry, so it and _point exercise the coverage-gap
// paths.
func defaultCatalogRows() []pgcast.CatalogRow {
	return []pgcast.CatalogRow{
		plainRow(16, "bool", "boolin"),
		plainRow(17, "bytea", "byteain"),
		plainRow(20, "int8", "int8in"),
		plainRow(21, "int2", "int2in"),
		plainRow(23, "int4", "int4in"),
		plainRow(25, "text", "textin"),
		plainRow(26, "oid", "oidin"),
		plainRow(114, "json", "json_in"),
		plainRow(600, "point", "point_in"),
		plainRow(700, "float4", "float4in"),
		plainRow(701, "float8", "float8in"),
		plainRow(869, "inet", "inet_in"),
		plainRow(1043, "varchar", "varcharin"),
		plainRow(1082, "date", "date_in"),
		plainRow(1114, "timestamp", "timestamp_in"),
		plainRow(1184, "timestamptz", "timestamptz_in"),
		plainRow(1700, "numeric", "numeric_in"),
		plainRow(3802, "jsonb", "jsonb_in"),
		arrayRow(199, "_json", 114),
		arrayRow(1000, "_bool", 16),
		arrayRow(1001, "_bytea", 17),
		arrayRow(1005, "_int2", 21),
		arrayRow(1007, "_int4", 23),
		arrayRow(1009, "_text", 25),
		arrayRow(1015, "_varchar", 1043),
		arrayRow(1016, "_int8", 20),
		arrayRow(1017, "_point", 600),
		arrayRow(1021, "_float4", 700),
		arrayRow(1022, "_float8", 701),
		arrayRow(1041, "_inet", 869),
		arrayRow(1115, "_timestamp", 1114),
		arrayRow(1182, "_date", 1082),
		arrayRow(1185, "_timestamptz", 1184),
		arrayRow(1231, "_numeric", 1700),
		arrayRow(3807, "_jsonb", 3802),
	}
}

func defaultBundle(ctx context.Context) (*pgcast.CoderMapsBundle, error) {
	return pgcast.NewCoderMapsBundle(ctx, &fakeConn{rows: defaultCatalogRows()}, nil)
}

// countingLogger records warn calls.
type countingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *countingLogger) Debug(msg string, ctx ...interface{}) {}
func (l *countingLogger) Info(msg string, ctx ...interface{})  {}
func (l *countingLogger) Error(msg string, ctx ...interface{}) {}

func (l *countingLogger) Warn(msg string, ctx ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	line := msg
	for i := 0; i+1 < len(ctx); i += 2 {
		line += fmt.Sprintf(" %v=%v", ctx[i], ctx[i+1])
	}
	l.warns = append(l.warns, line)
}

func (l *countingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}
