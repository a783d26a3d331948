package pgcast

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

var quoteCompositeReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteCompositeField(src string) string {
	return `"` + quoteCompositeReplacer.Replace(src) + `"`
}

func quoteCompositeFieldIfNeeded(src string) string {
	if src == "" || src[0] == ' ' || src[len(src)-1] == ' ' || strings.ContainsAny(src, `(),"\`) {
		return quoteCompositeField(src)
	}
	return src
}

// newRecordCoder returns the composite row encoder used by the record array
// policy. Each field is encoded by consulting the owning parameter map, so
// nested arrays recurse through the same policy.
func (m *ParameterTypeMap) newRecordCoder() *Coder {
	c := &Coder{Name: "record", Format: TextFormatCode, NeedsQuotation: true}
	c.Encode = func(value interface{}, buf []byte) ([]byte, error) {
		refVal := reflect.ValueOf(value)
		if k := refVal.Kind(); k != reflect.Slice && k != reflect.Array {
			return nil, errors.Errorf("cannot encode %v (%T) as record", value, value)
		}

		buf = append(buf, '(')
		for i := 0; i < refVal.Len(); i++ {
			if i > 0 {
				buf = append(buf, ',')
			}

			field := refVal.Index(i).Interface()
			fieldBuf, err := m.Encode(field, nil)
			if err != nil {
				return nil, err
			}
			if fieldBuf == nil {
				// an empty field is NULL in a record literal
				continue
			}
			buf = append(buf, quoteCompositeFieldIfNeeded(string(fieldBuf))...)
		}
		return append(buf, ')'), nil
	}
	return c
}
