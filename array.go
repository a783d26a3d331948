package pgcast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Element type names that never require quoting inside an array or composite
// text literal. Every other element type gets NeedsQuotation set when its
// array coder is resolved.
var tokenSafeElementNames = map[string]bool{
	"int2":        true,
	"int4":        true,
	"int8":        true,
	"oid":         true,
	"float4":      true,
	"float8":      true,
	"bool":        true,
	"date":        true,
	"timestamp":   true,
	"timestamptz": true,
}

var quoteArrayReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteArrayElement(src string) string {
	return `"` + quoteArrayReplacer.Replace(src) + `"`
}

// QuoteArrayElementIfNeeded quotes src when required for embedding in an
// array text literal.
func QuoteArrayElementIfNeeded(src string) string {
	if src == "" || (len(src) == 4 && strings.EqualFold(src, "null")) ||
		src[0] == ' ' || src[len(src)-1] == ' ' || strings.ContainsAny(src, `{},"\`) {
		return quoteArrayElement(src)
	}
	return src
}

// ArrayCoderFactory builds an array coder around a resolved element coder.
// CoderMap construction stamps the result with the catalog row's oid, name,
// and quoting flag.
type ArrayCoderFactory func(elem *Coder) *Coder

// NewTextArrayCoder returns the generic text-format array coder for elem. The
// encoder accepts any Go slice or array, including nested slices, and the
// decoder produces []interface{} nested per the array dimensions.
func NewTextArrayCoder(elem *Coder) *Coder {
	c := &Coder{
		Format:       TextFormatCode,
		ElementsType: elem,
	}
	c.Encode = func(value interface{}, buf []byte) ([]byte, error) {
		return encodeTextArray(c, value, buf)
	}
	c.Decode = func(src []byte) (interface{}, error) {
		return decodeTextArray(c, src)
	}
	return c
}

// newStringifyArrayCoder is the fallback array encoder used when no element
// coder applies: every element is rendered with fmt.Sprint.
func newStringifyArrayCoder() *Coder {
	c := &Coder{
		Name:           "_text",
		Format:         TextFormatCode,
		NeedsQuotation: true,
	}
	c.Encode = func(value interface{}, buf []byte) ([]byte, error) {
		return encodeTextArray(c, value, buf)
	}
	c.Decode = func(src []byte) (interface{}, error) {
		return decodeTextArray(c, src)
	}
	return c
}

func encodeTextArray(c *Coder, value interface{}, buf []byte) ([]byte, error) {
	refVal := reflect.ValueOf(value)
	if !refVal.IsValid() || (refVal.Kind() == reflect.Slice && refVal.IsNil()) {
		return nil, nil
	}
	if k := refVal.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, errors.Errorf("cannot encode %v (%T) as array", value, value)
	}

	buf = append(buf, '{')
	for i := 0; i < refVal.Len(); i++ {
		if i > 0 {
			buf = append(buf, ',')
		}

		elem := refVal.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if (elem.Kind() == reflect.Interface || elem.Kind() == reflect.Ptr) && elem.IsNil() {
			buf = append(buf, `NULL`...)
			continue
		}

		if k := elem.Kind(); (k == reflect.Slice || k == reflect.Array) && elem.Type() != reflect.TypeOf(BinaryData(nil)) && elem.Type() != reflect.TypeOf([]byte(nil)) {
			var err error
			buf, err = encodeTextArray(c, elem.Interface(), buf)
			if err != nil {
				return nil, err
			}
			continue
		}

		elemBuf, err := encodeArrayElement(c, elem.Interface())
		if err != nil {
			return nil, err
		}
		if elemBuf == nil {
			buf = append(buf, `NULL`...)
			continue
		}
		if c.NeedsQuotation {
			buf = append(buf, QuoteArrayElementIfNeeded(string(elemBuf))...)
		} else {
			buf = append(buf, elemBuf...)
		}
	}
	return append(buf, '}'), nil
}

func encodeArrayElement(c *Coder, value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	if c.ElementsType != nil && c.ElementsType.Encode != nil {
		return c.ElementsType.Encode(value, nil)
	}
	return []byte(fmt.Sprint(value)), nil
}

func decodeTextArray(c *Coder, src []byte) (interface{}, error) {
	uta, err := parseUntypedTextArray(string(src))
	if err != nil {
		return nil, err
	}

	elements := make([]interface{}, len(uta.Elements))
	for i, s := range uta.Elements {
		if !uta.Quoted[i] && s == "NULL" {
			continue
		}
		if c.ElementsType != nil && c.ElementsType.Decode != nil {
			v, err := c.ElementsType.Decode([]byte(s))
			if err != nil {
				return nil, err
			}
			elements[i] = v
		} else {
			elements[i] = s
		}
	}

	return nestElements(elements, uta.Dimensions), nil
}

// nestElements rebuilds the nested slice structure described by dims from the
// flat element list. Each child of the outer dimension holds the product of
// the inner dimension lengths.
func nestElements(elements []interface{}, dims []arrayDimension) []interface{} {
	if len(dims) <= 1 {
		return elements
	}

	childLen := 1
	for _, d := range dims[1:] {
		childLen *= int(d.Length)
	}

	length := int(dims[0].Length)
	out := make([]interface{}, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, nestElements(elements[i*childLen:(i+1)*childLen], dims[1:]))
	}
	return out
}

type arrayDimension struct {
	Length     int32
	LowerBound int32
}

type untypedTextArray struct {
	Elements   []string
	Quoted     []bool
	Dimensions []arrayDimension
}

type arrayParser struct {
	src string
	pos int
}

func (p *arrayParser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *arrayParser) next() (byte, bool) {
	b, ok := p.peek()
	if ok {
		p.pos++
	}
	return b, ok
}

func parseUntypedTextArray(src string) (*untypedTextArray, error) {
	p := &arrayParser{src: strings.TrimSpace(src)}
	uta := &untypedTextArray{Elements: []string{}}

	b, ok := p.next()
	if !ok || b != '{' {
		return nil, errors.Errorf("invalid array, expected '{': %v", src)
	}

	dims := []arrayDimension{{LowerBound: 1}}

	// Consume all initial opening braces. This gives the number of dimensions.
	for {
		b, ok = p.peek()
		if !ok {
			return nil, errors.New("invalid array: unexpected end of input")
		}
		if b != '{' {
			break
		}
		p.next()
		dims[len(dims)-1].Length = 1
		dims = append(dims, arrayDimension{LowerBound: 1})
	}

	currentDim := len(dims) - 1
	counterDim := currentDim

	for {
		b, ok = p.next()
		if !ok {
			return nil, errors.New("invalid array: unexpected end of input")
		}

		switch b {
		case '{':
			if currentDim == counterDim {
				dims[currentDim].Length++
			}
			currentDim++
		case ',':
		case '}':
			currentDim--
			if currentDim < counterDim {
				counterDim = currentDim
			}
		default:
			p.pos--
			value, quoted, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if currentDim == counterDim {
				dims[currentDim].Length++
			}
			uta.Elements = append(uta.Elements, value)
			uta.Quoted = append(uta.Quoted, quoted)
		}

		if currentDim < 0 {
			break
		}
	}

	if p.pos != len(p.src) {
		return nil, errors.Errorf("unexpected trailing data: %v", p.src[p.pos:])
	}

	uta.Dimensions = dims
	if len(dims) == 1 && dims[0].Length == 0 {
		uta.Dimensions = []arrayDimension{}
	}

	// An irregular literal such as {{1,2},{3}} parses with dimension lengths
	// taken from the first child at each depth, so the element count is the
	// only way to detect it.
	expected := 0
	if len(uta.Dimensions) > 0 {
		expected = 1
		for _, d := range uta.Dimensions {
			expected *= int(d.Length)
		}
	}
	if expected != len(uta.Elements) {
		return nil, errors.Errorf("invalid array: %d elements do not fit dimensions %v", len(uta.Elements), uta.Dimensions)
	}

	return uta, nil
}

func (p *arrayParser) parseValue() (string, bool, error) {
	b, ok := p.peek()
	if !ok {
		return "", false, errors.New("invalid array: unexpected end of input")
	}
	if b == '"' {
		p.next()
		s, err := p.parseQuotedValue()
		return s, true, err
	}

	start := p.pos
	for {
		b, ok = p.peek()
		if !ok {
			return "", false, errors.New("invalid array: unexpected end of input")
		}
		if b == ',' || b == '}' {
			return p.src[start:p.pos], false, nil
		}
		p.next()
	}
}

func (p *arrayParser) parseQuotedValue() (string, error) {
	var sb strings.Builder
	for {
		b, ok := p.next()
		if !ok {
			return "", errors.New("invalid array: unterminated quoted value")
		}
		switch b {
		case '\\':
			b, ok = p.next()
			if !ok {
				return "", errors.New("invalid array: unterminated escape")
			}
			sb.WriteByte(b)
		case '"':
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
	}
}
