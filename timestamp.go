package pgcast

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

const (
	pgTimestampFormat   = "2006-01-02 15:04:05.999999999"
	pgTimestamptzFormat = "2006-01-02 15:04:05.999999999Z07:00"

	// Binary timestamps are microseconds relative to 2000-01-01 00:00:00 UTC.
	microsecFromUnixEpochToY2K = 946684800 * 1000000
)

func timeFrom(value interface{}) (time.Time, error) {
	if t, ok := value.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, errors.Errorf("cannot convert %v (%T) to timestamp", value, value)
}

func encodeTimestampText(value interface{}, buf []byte) ([]byte, error) {
	t, err := timeFrom(value)
	if err != nil {
		return nil, err
	}
	return t.UTC().AppendFormat(buf, pgTimestampFormat), nil
}

func decodeTimestampText(src []byte) (interface{}, error) {
	t, err := time.ParseInLocation(pgTimestampFormat, string(src), time.UTC)
	if err != nil {
		return nil, errors.Wrap(err, "invalid timestamp")
	}
	return t, nil
}

func encodeTimestamptzText(value interface{}, buf []byte) ([]byte, error) {
	t, err := timeFrom(value)
	if err != nil {
		return nil, err
	}
	return t.AppendFormat(buf, pgTimestamptzFormat), nil
}

func decodeTimestamptzText(src []byte) (interface{}, error) {
	s := string(src)
	for _, layout := range []string{pgTimestamptzFormat, "2006-01-02 15:04:05.999999999-07", "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, errors.Errorf("invalid timestamptz: %v", s)
}

func decodeTimestampBinary(src []byte) (interface{}, error) {
	if len(src) != 8 {
		return nil, errors.Errorf("invalid length for timestamp: %v", len(src))
	}
	micros := int64(binary.BigEndian.Uint64(src)) + microsecFromUnixEpochToY2K
	return time.Unix(micros/1000000, (micros%1000000)*1000).UTC(), nil
}
