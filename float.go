package pgcast

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

func encodeFloatText(value interface{}, buf []byte) ([]byte, error) {
	f, err := float64From(value)
	if err != nil {
		return nil, err
	}
	return strconv.AppendFloat(buf, f, 'f', -1, 64), nil
}

func decodeFloatText(src []byte) (interface{}, error) {
	f, err := strconv.ParseFloat(string(src), 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid float")
	}
	return f, nil
}

func decodeFloat4Binary(src []byte) (interface{}, error) {
	if len(src) != 4 {
		return nil, errors.Errorf("invalid length for float4: %v", len(src))
	}
	return float64(math.Float32frombits(binary.BigEndian.Uint32(src))), nil
}

func decodeFloat8Binary(src []byte) (interface{}, error) {
	if len(src) != 8 {
		return nil, errors.Errorf("invalid length for float8: %v", len(src))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(src)), nil
}
