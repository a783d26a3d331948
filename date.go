package pgcast

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

const pgDateFormat = "2006-01-02"

func encodeDateText(value interface{}, buf []byte) ([]byte, error) {
	t, err := timeFrom(value)
	if err != nil {
		return nil, err
	}
	return t.AppendFormat(buf, pgDateFormat), nil
}

func decodeDateText(src []byte) (interface{}, error) {
	t, err := time.ParseInLocation(pgDateFormat, string(src), time.UTC)
	if err != nil {
		return nil, errors.Wrap(err, "invalid date")
	}
	return t, nil
}

// Binary format is days since 2000-01-01.
func decodeDateBinary(src []byte) (interface{}, error) {
	if len(src) != 4 {
		return nil, errors.Errorf("invalid length for date: %v", len(src))
	}
	days := int32(binary.BigEndian.Uint32(src))
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(days)), nil
}
