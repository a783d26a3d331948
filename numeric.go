package pgcast

import (
	"github.com/cockroachdb/apd"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func encodeNumericText(value interface{}, buf []byte) ([]byte, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return append(buf, v.String()...), nil
	case *decimal.Decimal:
		return append(buf, v.String()...), nil
	case *apd.Decimal:
		return append(buf, v.String()...), nil
	}

	if f, err := float64From(value); err == nil {
		return encodeFloatText(f, buf)
	}

	return nil, errors.Errorf("cannot convert %v (%T) to numeric", value, value)
}

func decodeNumericText(src []byte) (interface{}, error) {
	d, err := decimal.NewFromString(string(src))
	if err != nil {
		return nil, errors.Wrap(err, "invalid numeric")
	}
	return d, nil
}
