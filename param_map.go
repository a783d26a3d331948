package pgcast

import (
	"context"
	"fmt"
	"net"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ArrayEncoding selects how parameter values with slice or array runtime
// types are encoded.
type ArrayEncoding string

const (
	// ArrayEncodingArray resolves an array coder from the element's runtime
	// type: exact type first, then its ancestor types, then the generic text
	// array that stringifies elements. This is the default.
	ArrayEncodingArray ArrayEncoding = "array"

	// ArrayEncodingJSON routes every array value through the json encoder.
	ArrayEncodingJSON ArrayEncoding = "json"

	// ArrayEncodingRecord routes every array value through a composite row
	// encoder that encodes each field by consulting this same map.
	ArrayEncodingRecord ArrayEncoding = "record"

	// Any other value must name a PostgreSQL array type (leading underscore,
	// e.g. "_json"): every array is routed through that type's encoder, or
	// through per-element string conversion if the name is not registered.
)

func (v ArrayEncoding) valid() bool {
	switch v {
	case ArrayEncodingArray, ArrayEncodingJSON, ArrayEncodingRecord:
		return true
	}
	return strings.HasPrefix(string(v), "_")
}

// UndefinedEncoderHandler is consulted when encoder table derivation needs a
// type name that has no registered encoder. Returning a nil coder with a nil
// error skips the entry; returning a coder substitutes it.
type UndefinedEncoderHandler func(name string, format int16) (*Coder, error)

func defaultUndefinedEncoderHandler(name string, format int16) (*Coder, error) {
	return nil, &UndefinedEncoderError{Name: name, Format: format}
}

// ParameterTypeMap selects encoders for outgoing parameter values by their
// runtime type. It is safe for concurrent use by readers; SetArrayEncoding is
// the one mutating operation and requires exclusive access.
type ParameterTypeMap struct {
	bundle        *CoderMapsBundle
	undefined     UndefinedEncoderHandler
	arrayEncoding ArrayEncoding

	encoders    map[reflect.Type]*Coder
	arrayCoders map[reflect.Type]*Coder

	// arrayOverride is non-nil for every policy except ArrayEncodingArray and
	// takes precedence over arrayCoders.
	arrayOverride  *Coder
	stringifyArray *Coder
}

// ParameterTypeMapOption configures a ParameterTypeMap.
type ParameterTypeMapOption func(*ParameterTypeMap)

// WithUndefinedEncoderHandler replaces the default handler, which fails
// derivation with an UndefinedEncoderError.
func WithUndefinedEncoderHandler(h UndefinedEncoderHandler) ParameterTypeMapOption {
	return func(m *ParameterTypeMap) { m.undefined = h }
}

// WithArrayEncoding sets the initial array encoding policy.
func WithArrayEncoding(v ArrayEncoding) ParameterTypeMapOption {
	return func(m *ParameterTypeMap) { m.arrayEncoding = v }
}

// paramEntry maps one runtime type to a registered encoder. bindOID names a
// companion type whose resolved oid is force-assigned to the encoder; every
// other encoder is given a zero oid so the server infers the parameter type.
type paramEntry struct {
	typ     reflect.Type
	format  int16
	name    string
	bindOID string
}

var (
	typeOfBool       = reflect.TypeOf(false)
	typeOfInt64      = reflect.TypeOf(int64(0))
	typeOfFloat64    = reflect.TypeOf(float64(0))
	typeOfString     = reflect.TypeOf("")
	typeOfBytes      = reflect.TypeOf([]byte(nil))
	typeOfBinaryData = reflect.TypeOf(BinaryData(nil))
	typeOfDecimal    = reflect.TypeOf(decimal.Decimal{})
	typeOfAPDDecimal = reflect.TypeOf((*apd.Decimal)(nil))
	typeOfTime       = reflect.TypeOf(time.Time{})
	typeOfIP         = reflect.TypeOf(net.IP(nil))
	typeOfIPNet      = reflect.TypeOf((*net.IPNet)(nil))
	typeOfJSONMap    = reflect.TypeOf(map[string]interface{}(nil))
)

// Evaluated in declaration order.
var defaultParamEntries = []paramEntry{
	{typ: typeOfBool, format: BinaryFormatCode, name: "bool", bindOID: "bool"},
	{typ: typeOfInt64, format: TextFormatCode, name: "int8"},
	{typ: typeOfFloat64, format: TextFormatCode, name: "float8"},
	{typ: typeOfDecimal, format: TextFormatCode, name: "numeric"},
	{typ: typeOfAPDDecimal, format: TextFormatCode, name: "numeric"},
	{typ: typeOfTime, format: TextFormatCode, name: "timestamptz"},
	{typ: typeOfIP, format: TextFormatCode, name: "inet"},
	{typ: typeOfIPNet, format: TextFormatCode, name: "inet"},
	{typ: typeOfJSONMap, format: TextFormatCode, name: "json"},
	{typ: typeOfBinaryData, format: BinaryFormatCode, name: "bytea"},
	{typ: typeOfBytes, format: BinaryFormatCode, name: "bytea"},
}

// Leaf element types for the default array policy, all text format.
var defaultArrayEntries = []paramEntry{
	{typ: typeOfBool, name: "_bool"},
	{typ: typeOfInt64, name: "_int8"},
	{typ: typeOfString, name: "_text"},
	{typ: typeOfFloat64, name: "_float8"},
	{typ: typeOfDecimal, name: "_numeric"},
	{typ: typeOfAPDDecimal, name: "_numeric"},
	{typ: typeOfTime, name: "_timestamptz"},
	{typ: typeOfIP, name: "_inet"},
}

// NewParameterTypeMap builds an encoder table from src, which may be a
// Querier or an existing *CoderMapsBundle (see BundleFrom for the registry
// contract).
func NewParameterTypeMap(ctx context.Context, src interface{}, registry *CoderRegistry, opts ...ParameterTypeMapOption) (*ParameterTypeMap, error) {
	bundle, err := BundleFrom(ctx, src, registry)
	if err != nil {
		return nil, err
	}

	m := &ParameterTypeMap{
		bundle:         bundle,
		undefined:      defaultUndefinedEncoderHandler,
		arrayEncoding:  ArrayEncodingArray,
		stringifyArray: newStringifyArrayCoder(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.arrayEncoding.valid() {
		return nil, errors.Errorf("invalid array encoding %q", m.arrayEncoding)
	}
	if err := m.derive(); err != nil {
		return nil, err
	}
	return m, nil
}

// ArrayEncoding returns the current array encoding policy.
func (m *ParameterTypeMap) ArrayEncoding() ArrayEncoding {
	return m.arrayEncoding
}

// SetArrayEncoding changes the array encoding policy and rebuilds the full
// encoder table. An invalid value fails before any rebuild, leaving the
// previous policy and tables intact. Not safe to interleave with concurrent
// encodes.
func (m *ParameterTypeMap) SetArrayEncoding(v ArrayEncoding) error {
	if !v.valid() {
		return errors.Errorf("invalid array encoding %q", v)
	}

	prev := m.arrayEncoding
	m.arrayEncoding = v
	if err := m.derive(); err != nil {
		m.arrayEncoding = prev
		return err
	}
	return nil
}

// derive rebuilds the runtime-type tables from the bundle. It assigns the new
// tables only after the whole derivation succeeds, so a failed derivation
// leaves the map as it was.
func (m *ParameterTypeMap) derive() error {
	encoders := make(map[reflect.Type]*Coder, len(defaultParamEntries))
	for _, e := range defaultParamEntries {
		cm := m.bundle.MapFor(e.format, EncodeDirection)
		tmpl := cm.CoderForName(e.name)
		if tmpl == nil || tmpl.Encode == nil {
			sub, err := m.undefined(e.name, e.format)
			if err != nil {
				return err
			}
			if sub == nil {
				continue
			}
			tmpl = sub
		}

		coder := tmpl.clone()
		coder.OID = 0
		if e.bindOID != "" {
			if companion := cm.CoderForName(e.bindOID); companion != nil {
				coder.OID = companion.OID
			}
		}
		encoders[e.typ] = coder
	}

	arrayCoders := make(map[reflect.Type]*Coder)
	var arrayOverride *Coder
	textEncoders := m.bundle.MapFor(TextFormatCode, EncodeDirection)

	switch {
	case m.arrayEncoding == ArrayEncodingArray:
		for _, e := range defaultArrayEntries {
			tmpl := textEncoders.CoderForName(e.name)
			if tmpl == nil || tmpl.Encode == nil {
				continue
			}
			coder := tmpl.clone()
			coder.OID = 0
			arrayCoders[e.typ] = coder
		}
	case m.arrayEncoding == ArrayEncodingJSON:
		tmpl := textEncoders.CoderForName("json")
		if tmpl == nil || tmpl.Encode == nil {
			sub, err := m.undefined("json", TextFormatCode)
			if err != nil {
				return err
			}
			tmpl = sub
		}
		if tmpl != nil {
			arrayOverride = tmpl.clone()
			arrayOverride.OID = 0
		}
	case m.arrayEncoding == ArrayEncodingRecord:
		arrayOverride = m.newRecordCoder()
	default:
		if tmpl := textEncoders.CoderForName(string(m.arrayEncoding)); tmpl != nil && tmpl.Encode != nil {
			arrayOverride = tmpl.clone()
			arrayOverride.OID = 0
		} else {
			arrayOverride = m.stringifyArray
		}
	}

	m.encoders = encoders
	m.arrayCoders = arrayCoders
	m.arrayOverride = arrayOverride
	return nil
}

// kindCanonicalType returns the canonical type a named or sized type reduces
// to for encoder lookup, or nil when there is none.
func kindCanonicalType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeOfInt64
	case reflect.Float32, reflect.Float64:
		return typeOfFloat64
	case reflect.Bool:
		return typeOfBool
	case reflect.String:
		return typeOfString
	}
	return nil
}

// typeAncestors returns the lookup chain for t: the exact type first, then
// its canonical kind type. Most-derived first; the order is load-bearing for
// encoder selection.
func typeAncestors(t reflect.Type) []reflect.Type {
	ancestors := []reflect.Type{t}
	if c := kindCanonicalType(t); c != nil && c != t {
		ancestors = append(ancestors, c)
	}
	return ancestors
}

// isLeafType reports whether t terminates array descent. Byte slices are
// bytea values, not arrays of int2.
func isLeafType(t reflect.Type) bool {
	if t == typeOfBytes || t == typeOfBinaryData {
		return true
	}
	k := t.Kind()
	return k != reflect.Slice && k != reflect.Array
}

// leafElemType descends through nested slice and array layers to the first
// non-array element type.
func leafElemType(t reflect.Type) reflect.Type {
	for !isLeafType(t) {
		t = t.Elem()
	}
	return t
}

// EncoderForValue selects the encoder for one outgoing value. It returns nil
// with no error when no encoder applies; such values are sent as their
// default string conversion.
func (m *ParameterTypeMap) EncoderForValue(value interface{}) (*Coder, error) {
	if value == nil {
		return nil, nil
	}

	t := reflect.TypeOf(value)
	for _, ancestor := range typeAncestors(t) {
		if coder, ok := m.encoders[ancestor]; ok {
			return coder, nil
		}
	}

	if !isLeafType(t) {
		return m.arrayCoderForLeaf(leafElemType(t)), nil
	}

	return nil, nil
}

func (m *ParameterTypeMap) arrayCoderForLeaf(leaf reflect.Type) *Coder {
	if m.arrayOverride != nil {
		return m.arrayOverride
	}
	for _, ancestor := range typeAncestors(leaf) {
		if coder, ok := m.arrayCoders[ancestor]; ok {
			return coder
		}
	}
	return m.stringifyArray
}

// Encode appends the wire representation of one parameter value to buf. A
// nil value is SQL NULL. Values with no selected encoder are rendered with
// their default string conversion in text format.
func (m *ParameterTypeMap) Encode(value interface{}, buf []byte) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	coder, err := m.EncoderForValue(value)
	if err != nil {
		return nil, err
	}
	if coder == nil || coder.Encode == nil {
		return append(buf, fmt.Sprint(value)...), nil
	}
	return coder.Encode(value, buf)
}
