package pgcast

// PostgreSQL format codes
const (
	TextFormatCode   int16 = 0
	BinaryFormatCode int16 = 1
)

// Direction selects which side of the wire conversion a coder serves.
type Direction int8

const (
	EncodeDirection Direction = iota
	DecodeDirection
)

func (d Direction) String() string {
	switch d {
	case EncodeDirection:
		return "encode"
	case DecodeDirection:
		return "decode"
	default:
		return "invalid"
	}
}

// PostgreSQL oids for common types. Only used as fixture values and for
// readability; live oids always come from the catalog snapshot.
const (
	BoolOID        = 16
	ByteaOID       = 17
	Int8OID        = 20
	Int2OID        = 21
	Int4OID        = 23
	TextOID        = 25
	OIDOID         = 26
	JSONOID        = 114
	Float4OID      = 700
	Float8OID      = 701
	InetOID        = 869
	VarcharOID     = 1043
	DateOID        = 1082
	TimestampOID   = 1114
	TimestamptzOID = 1184
	NumericOID     = 1700
	UUIDOID        = 2950
	JSONBOID       = 3802
)

// EncodeFunc appends the wire representation of value to buf and returns the
// extended buffer. A nil return with nil error represents SQL NULL.
type EncodeFunc func(value interface{}, buf []byte) ([]byte, error)

// DecodeFunc converts wire bytes into a value. src is never nil; NULL is
// handled before the coder is consulted.
type DecodeFunc func(src []byte) (interface{}, error)

// Coder is a conversion strategy for one logical PostgreSQL type in one wire
// format. A capability is present when the corresponding function slot is
// non-nil. Registry entries are unresolved templates with a zero OID; putting
// a coder into a CoderMap clones the template and stamps it with the oid and
// name from the catalog row it matched. A resolved coder is never mutated.
type Coder struct {
	Name   string
	OID    uint32
	Format int16

	Encode EncodeFunc
	Decode DecodeFunc

	// Array coders only. ElementsType is the resolved coder for the array's
	// element type. NeedsQuotation reports whether elements must be quoted
	// when serialized inside an array or composite text literal.
	ElementsType   *Coder
	NeedsQuotation bool
}

func (c *Coder) clone() *Coder {
	c2 := *c
	return &c2
}

// CanEncode reports whether c has an encode capability.
func (c *Coder) CanEncode() bool { return c.Encode != nil }

// CanDecode reports whether c has a decode capability.
func (c *Coder) CanDecode() bool { return c.Decode != nil }

// BinaryData marks a byte slice as binary bytea data rather than text. It is
// a distinct type so parameter encoding can tell it apart from a string or a
// plain byte slice by its runtime type alone.
type BinaryData []byte
