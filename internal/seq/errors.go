package seq

import (
	"errors"
	"fmt"
)

// ErrOutOfRange matches every *RangeError under errors.Is.
var ErrOutOfRange = errors.New("index out of range")

// ErrorCode categorizes container errors.
type ErrorCode string

// ErrCodeOutOfRange is the code carried by RangeError.
const ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

// RangeError reports a position argument outside the window of an operation.
type RangeError struct {
	// Op is the operation that rejected the position (e.g. "get", "insert").
	Op string

	// Index is the rejected position.
	Index int

	// Length is the container length at the time of the call.
	Length int

	// Inclusive is set for insert windows, which accept Index == Length.
	Inclusive bool
}

// Code returns ErrCodeOutOfRange.
func (e *RangeError) Code() ErrorCode {
	return ErrCodeOutOfRange
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	closing := ")"
	if e.Inclusive {
		closing = "]"
	}
	return fmt.Sprintf("%s: %s: index %d out of range [0,%d%s", e.Code(), e.Op, e.Index, e.Length, closing)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// IsOutOfRange returns true if err is, or wraps, a *RangeError.
func IsOutOfRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// checkIndex validates a read/update/remove position: [0, length).
func checkIndex(op string, pos, length int) error {
	if pos < 0 || pos >= length {
		return &RangeError{Op: op, Index: pos, Length: length}
	}
	return nil
}

// checkInsert validates an insert position: [0, length].
func checkInsert(op string, pos, length int) error {
	if pos < 0 || pos > length {
		return &RangeError{Op: op, Index: pos, Length: length, Inclusive: true}
	}
	return nil
}
