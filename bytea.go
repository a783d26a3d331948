package pgcast

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

func encodeByteaText(value interface{}, buf []byte) ([]byte, error) {
	b, err := bytesFrom(value)
	if err != nil {
		return nil, err
	}
	buf = append(buf, `\x`...)
	return append(buf, hex.EncodeToString(b)...), nil
}

func decodeByteaText(src []byte) (interface{}, error) {
	if len(src) < 2 || src[0] != '\\' || src[1] != 'x' {
		return nil, errors.Errorf("invalid hex format for bytea: %v", string(src))
	}
	b, err := hex.DecodeString(string(src[2:]))
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex format for bytea")
	}
	return b, nil
}

func encodeByteaBinary(value interface{}, buf []byte) ([]byte, error) {
	b, err := bytesFrom(value)
	if err != nil {
		return nil, err
	}
	return append(buf, b...), nil
}

func decodeByteaBinary(src []byte) (interface{}, error) {
	b := make([]byte, len(src))
	copy(b, src)
	return b, nil
}
