package dx7

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidLength   = errors.New("invalid length")
	ErrInvalidChecksum = errors.New("invalid checksum")
	ErrInvalidData     = errors.New("invalid data")
	ErrUnidentified    = errors.New("unidentified data")
)

// LengthError reports a buffer whose length does not match the entity's fixed size.
type LengthError struct {
	Actual   int
	Expected int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid length: got %d bytes, want %d", e.Actual, e.Expected)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// ChecksumError reports a trailing checksum byte that disagrees with the computed one.
type ChecksumError struct {
	Actual   byte
	Expected byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid checksum: got 0x%02X, want 0x%02X", e.Actual, e.Expected)
}

func (e *ChecksumError) Unwrap() error { return ErrInvalidChecksum }

// DataError reports a byte at Offset that failed validation.
type DataError struct {
	Offset int
	Err    error
}

func (e *DataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid data at offset %d", e.Offset)
	}
	return fmt.Sprintf("invalid data at offset %d: %v", e.Offset, e.Err)
}

// Is makes every DataError match ErrInvalidData while still unwrapping to the cause.
func (e *DataError) Is(target error) bool { return target == ErrInvalidData }

func (e *DataError) Unwrap() error { return e.Err }

// RangeError is returned when a value is constructed outside its bounds.
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: expected value in range %d...%d, got %d", e.Name, e.Min, e.Max, e.Value)
}

func checkLength(data []byte, expected int) error {
	if len(data) != expected {
		return &LengthError{Actual: len(data), Expected: expected}
	}
	return nil
}

func invalidAt(offset int, err error) error {
	return &DataError{Offset: offset, Err: err}
}

// shiftOffset moves the offset of a DataError by base, so that errors from a
// nested entity are reported relative to the enclosing buffer.
func shiftOffset(err error, base int) error {
	var de *DataError
	if errors.As(err, &de) {
		return &DataError{Offset: de.Offset + base, Err: de.Err}
	}
	return err
}
