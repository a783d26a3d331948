package pgcast

import (
	"net"
	"strings"

	"github.com/pkg/errors"
)

func encodeInetText(value interface{}, buf []byte) ([]byte, error) {
	switch v := value.(type) {
	case net.IP:
		return append(buf, v.String()...), nil
	case *net.IPNet:
		return append(buf, v.String()...), nil
	case string:
		return append(buf, v...), nil
	}
	return nil, errors.Errorf("cannot convert %v (%T) to inet", value, value)
}

func decodeInetText(src []byte) (interface{}, error) {
	s := string(src)
	if strings.Contains(s, "/") {
		_, ipnet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, errors.Wrap(err, "invalid inet")
		}
		return ipnet, nil
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return nil, errors.Errorf("invalid inet: %v", s)
	}
	return ip, nil
}
