package pgcast

import (
	"fmt"

	"github.com/pkg/errors"
)

// UndefinedEncoderError is returned when parameter map derivation requires an
// encoder that is not registered for the needed type name and format.
type UndefinedEncoderError struct {
	Name   string
	Format int16
}

func (e *UndefinedEncoderError) Error() string {
	return fmt.Sprintf("no encoder registered for type %q in format %d", e.Name, e.Format)
}

func validateFormat(format int16) error {
	if format != TextFormatCode && format != BinaryFormatCode {
		return errors.Errorf("invalid format code %d", format)
	}
	return nil
}

func validateDirection(dir Direction) error {
	if dir != EncodeDirection && dir != DecodeDirection {
		return errors.Errorf("invalid direction %d", int8(dir))
	}
	return nil
}
