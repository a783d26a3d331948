package pgcast

// The text type uses the same representation in both wire formats.

func encodeTextText(value interface{}, buf []byte) ([]byte, error) {
	s, err := stringFrom(value)
	if err != nil {
		return nil, err
	}
	return append(buf, s...), nil
}

func decodeTextText(src []byte) (interface{}, error) {
	return string(src), nil
}
