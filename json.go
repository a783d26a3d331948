package pgcast

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func encodeJSONText(value interface{}, buf []byte) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return append(buf, v...), nil
	case []byte:
		return append(buf, v...), nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal json")
	}
	return append(buf, b...), nil
}

func decodeJSONText(src []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(src, &v); err != nil {
		return nil, errors.Wrap(err, "invalid json")
	}
	return v, nil
}
