// Package errs defines the error values shared by all nitf packages.
//
// Every failure surfaced by the library wraps one of four sentinel errors,
// so callers can classify failures with errors.Is:
//
//   - ErrParse: a fixed-width field's bytes did not decode to its declared type
//   - ErrValue: a decoded value violates a structural constraint
//   - ErrIO: the underlying byte stream failed
//   - ErrFatal: a structural contract was broken (e.g. writing without a file)
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates a field's raw bytes could not be decoded.
	ErrParse = errors.New("parse error")
	// ErrValue indicates a decoded value violates a format constraint.
	ErrValue = errors.New("value error")
	// ErrIO wraps a failure of the underlying byte stream.
	ErrIO = errors.New("i/o error")
	// ErrFatal indicates a broken structural contract.
	ErrFatal = errors.New("fatal error")
)

// Parse reports that the named field failed to decode.
func Parse(field string) error {
	return fmt.Errorf("%w: error parsing %s", ErrParse, field)
}

// Value reports that the named field holds a value the format cannot carry.
func Value(field string) error {
	return fmt.Errorf("%w: value of %s does not match", ErrValue, field)
}

// IO wraps a stream failure. The cause remains reachable through errors.Is
// and errors.As.
func IO(cause error) error {
	return fmt.Errorf("%w: %w", ErrIO, cause)
}

// Fatal reports a broken structural contract with a brief message.
func Fatal(msg string) error {
	return fmt.Errorf("%w: %s", ErrFatal, msg)
}
