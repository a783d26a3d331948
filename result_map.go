package pgcast

import (
	"context"
	"sync"
)

type resultKey struct {
	format int16
	oid    uint32
}

// ResultTypeMap decodes result values. It collects every decoder across both
// formats of a bundle into a (format, oid)-keyed table. Unregistered oids
// degrade to opaque passthrough decoding with a warning emitted once per
// (format, oid) pair for the lifetime of the map.
type ResultTypeMap struct {
	bundle   *CoderMapsBundle
	logger   Logger
	logLevel int
	decoders map[resultKey]*Coder

	// fallback coders are memoized on first miss; this is the only state
	// written after construction.
	mu       sync.Mutex
	fallback map[resultKey]*Coder
}

// ResultTypeMapOption configures a ResultTypeMap.
type ResultTypeMapOption func(*ResultTypeMap)

// WithResultLogger sets the diagnostics sink for decode fallback warnings.
func WithResultLogger(l Logger) ResultTypeMapOption {
	return func(m *ResultTypeMap) { m.logger = l }
}

// WithResultLogLevel sets the minimum severity forwarded to the logger.
// Fallback warnings are emitted at LogLevelWarn; a lower threshold such as
// LogLevelError silences them. The default is LogLevelWarn.
func WithResultLogLevel(level int) ResultTypeMapOption {
	return func(m *ResultTypeMap) { m.logLevel = level }
}

// NewResultTypeMap builds a decode table from src, which may be a Querier or
// an existing *CoderMapsBundle (see BundleFrom for the registry contract).
func NewResultTypeMap(ctx context.Context, src interface{}, registry *CoderRegistry, opts ...ResultTypeMapOption) (*ResultTypeMap, error) {
	bundle, err := BundleFrom(ctx, src, registry)
	if err != nil {
		return nil, err
	}

	m := &ResultTypeMap{
		bundle:   bundle,
		logger:   stderrLogger{},
		logLevel: LogLevelWarn,
		decoders: make(map[resultKey]*Coder),
		fallback: make(map[resultKey]*Coder),
	}
	for _, opt := range opts {
		opt(m)
	}

	bundle.EachFormat(DecodeDirection, func(format int16, cm *CoderMap) {
		for _, coder := range cm.Coders() {
			m.decoders[resultKey{format: format, oid: coder.OID}] = coder
		}
	})

	return m, nil
}

// DecoderFor returns the decoder for a (oid, format) pair. When no decoder is
// registered it returns a passthrough coder that yields the raw text (text
// format) or BinaryData (binary format), warning on the first request for
// that pair.
func (m *ResultTypeMap) DecoderFor(oid uint32, format int16) *Coder {
	if coder, ok := m.decoders[resultKey{format: format, oid: oid}]; ok {
		return coder
	}
	return m.fallbackFor(oid, format)
}

func (m *ResultTypeMap) fallbackFor(oid uint32, format int16) *Coder {
	key := resultKey{format: format, oid: oid}

	m.mu.Lock()
	defer m.mu.Unlock()

	if coder, ok := m.fallback[key]; ok {
		return coder
	}

	name, ok := m.bundle.TypeNameForOID(oid)
	if !ok {
		name = "unknown type"
	}
	if m.logLevel >= LogLevelWarn {
		m.logger.Warn("no decoder registered for type, decoding as opaque data",
			"type", name, "oid", oid, "format", format)
	}

	coder := &Coder{Name: name, OID: oid, Format: format}
	if format == BinaryFormatCode {
		coder.Decode = func(src []byte) (interface{}, error) {
			b := make([]byte, len(src))
			copy(b, src)
			return BinaryData(b), nil
		}
	} else {
		coder.Decode = decodeTextText
	}
	m.fallback[key] = coder
	return coder
}

// Decode converts one wire value. A nil src is SQL NULL and decodes to nil.
func (m *ResultTypeMap) Decode(oid uint32, format int16, src []byte) (interface{}, error) {
	if err := validateFormat(format); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}
	return m.DecoderFor(oid, format).Decode(src)
}
