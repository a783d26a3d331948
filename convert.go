package pgcast

import (
	"reflect"

	"github.com/pkg/errors"
)

// int64From converts any integer value, including named integer types, to
// int64. Unsigned values that overflow int64 are rejected.
func int64From(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64From(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > maxInt64 {
			return 0, errors.Errorf("%d is greater than maximum value for int8", v)
		}
		return int64(v), nil
	}

	refVal := reflect.ValueOf(value)
	switch refVal.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return refVal.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64From(refVal.Uint())
	}

	return 0, errors.Errorf("cannot convert %v (%T) to int8", value, value)
}

const maxInt64 = uint64(1)<<63 - 1

func float64From(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	}

	refVal := reflect.ValueOf(value)
	switch refVal.Kind() {
	case reflect.Float32, reflect.Float64:
		return refVal.Float(), nil
	}

	if n, err := int64From(value); err == nil {
		return float64(n), nil
	}

	return 0, errors.Errorf("cannot convert %v (%T) to float8", value, value)
}

func boolFrom(value interface{}) (bool, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	if refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Bool {
		return refVal.Bool(), nil
	}
	return false, errors.Errorf("cannot convert %v (%T) to bool", value, value)
}

func stringFrom(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	if refVal := reflect.ValueOf(value); refVal.Kind() == reflect.String {
		return refVal.String(), nil
	}
	return "", errors.Errorf("cannot convert %v (%T) to text", value, value)
}

func bytesFrom(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case BinaryData:
		return []byte(v), nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.Errorf("cannot convert %v (%T) to bytea", value, value)
}
