package pgcast

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

func encodeIntText(value interface{}, buf []byte) ([]byte, error) {
	n, err := int64From(value)
	if err != nil {
		return nil, err
	}
	return strconv.AppendInt(buf, n, 10), nil
}

func decodeIntText(src []byte) (interface{}, error) {
	n, err := strconv.ParseInt(string(src), 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid integer")
	}
	return n, nil
}

func encodeInt2Binary(value interface{}, buf []byte) ([]byte, error) {
	n, err := int64From(value)
	if err != nil {
		return nil, err
	}
	if n < math.MinInt16 || n > math.MaxInt16 {
		return nil, errors.Errorf("%d is out of range for int2", n)
	}
	return pgio.AppendInt16(buf, int16(n)), nil
}

func decodeInt2Binary(src []byte) (interface{}, error) {
	if len(src) != 2 {
		return nil, errors.Errorf("invalid length for int2: %v", len(src))
	}
	return int64(int16(binary.BigEndian.Uint16(src))), nil
}

func encodeInt4Binary(value interface{}, buf []byte) ([]byte, error) {
	n, err := int64From(value)
	if err != nil {
		return nil, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, errors.Errorf("%d is out of range for int4", n)
	}
	return pgio.AppendInt32(buf, int32(n)), nil
}

func decodeInt4Binary(src []byte) (interface{}, error) {
	if len(src) != 4 {
		return nil, errors.Errorf("invalid length for int4: %v", len(src))
	}
	return int64(int32(binary.BigEndian.Uint32(src))), nil
}

func encodeInt8Binary(value interface{}, buf []byte) ([]byte, error) {
	n, err := int64From(value)
	if err != nil {
		return nil, err
	}
	return pgio.AppendInt64(buf, n), nil
}

func decodeInt8Binary(src []byte) (interface{}, error) {
	if len(src) != 8 {
		return nil, errors.Errorf("invalid length for int8: %v", len(src))
	}
	return int64(binary.BigEndian.Uint64(src)), nil
}
