package pgcast

import (
	"github.com/pkg/errors"
)

func encodeBoolText(value interface{}, buf []byte) ([]byte, error) {
	b, err := boolFrom(value)
	if err != nil {
		return nil, err
	}
	if b {
		return append(buf, 't'), nil
	}
	return append(buf, 'f'), nil
}

func decodeBoolText(src []byte) (interface{}, error) {
	if len(src) != 1 {
		return nil, errors.Errorf("invalid length for bool: %v", len(src))
	}
	return src[0] == 't', nil
}

func encodeBoolBinary(value interface{}, buf []byte) ([]byte, error) {
	b, err := boolFrom(value)
	if err != nil {
		return nil, err
	}
	if b {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}

func decodeBoolBinary(src []byte) (interface{}, error) {
	if len(src) != 1 {
		return nil, errors.Errorf("invalid length for bool: %v", len(src))
	}
	return src[0] == 1, nil
}
