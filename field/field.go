// Package field implements the fixed-width ASCII field codec used by every
// NITF subheader.
//
// A NITF header is a strict concatenation of fixed-width windows of printable
// ASCII. Field pairs a declared window width with a decoded value of a
// semantic type: unsigned integers are zero-padded on the left, strings and
// enumerations are space-padded on the right, and the declared width is a
// configuration constant that never changes across encode/decode.
package field

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/errs"
)

// Justify selects how an encoded value is padded out to its window width.
type Justify int

const (
	// Left pads the right-hand side with spaces (strings, enumerations).
	Left Justify = iota
	// Right pads the left-hand side with zeros (unsigned integers).
	Right
)

// Value is implemented by every type that can live inside a Field.
//
// Decode receives the window contents with trailing spaces stripped and
// returns the decoded value; the error content is discarded by Field.Read in
// favor of a field-named parse error, so implementations may return any
// non-nil error on malformed input. Encode returns the canonical spelling
// without padding.
type Value[T any] interface {
	Decode(s string) (T, error)
	Encode() string
	Justify() Justify
}

// Field is a named, fixed-width window of bytes paired with its decoded
// value. The zero value is unusable; construct with New so the width and
// diagnostic name are set.
type Field[T Value[T]] struct {
	// Name is the format mnemonic, used only for diagnostics and display.
	Name string
	// Width is the declared byte width of the on-disk window.
	Width int
	// Val is the decoded value.
	Val T
}

// New creates a field with the given diagnostic name and declared width.
// The value starts at the type's zero (default) value.
func New[T Value[T]](name string, width int) Field[T] {
	return Field[T]{Name: name, Width: width}
}

// Read consumes exactly Width bytes from r and decodes them.
//
// Trailing spaces are padding and are stripped before decoding; a field of
// all spaces therefore decodes as the empty string (zero for numeric types).
// A short read yields an i/o error, a failed decode a parse error carrying
// the field name.
func (f *Field[T]) Read(r io.Reader) error {
	raw := make([]byte, f.Width)
	if _, err := io.ReadFull(r, raw); err != nil {
		return errs.IO(err)
	}

	val, err := f.Val.Decode(strings.TrimRight(string(raw), " "))
	if err != nil {
		return errs.Parse(f.Name)
	}
	f.Val = val

	return nil
}

// Write encodes the stored value into exactly Width bytes and writes them,
// returning the byte count.
//
// Unsigned integers are rendered as decimal and zero-padded on the left;
// a numeric value too wide for its window is a value error. Strings and
// enumerations are space-padded on the right and truncated if over-long;
// an empty string encodes as Width spaces.
func (f *Field[T]) Write(w io.Writer) (int, error) {
	enc := f.Val.Encode()
	if len(enc) > f.Width {
		if f.Val.Justify() == Right {
			return 0, errs.Value(f.Name)
		}
		enc = enc[:f.Width]
	}

	buf := make([]byte, 0, f.Width)
	switch f.Val.Justify() {
	case Right:
		buf = append(buf, bytes.Repeat([]byte{'0'}, f.Width-len(enc))...)
		buf = append(buf, enc...)
	default:
		buf = append(buf, enc...)
		buf = append(buf, bytes.Repeat([]byte{' '}, f.Width-len(enc))...)
	}

	if _, err := w.Write(buf); err != nil {
		return 0, errs.IO(err)
	}

	return f.Width, nil
}

// Length returns the declared byte width of the field.
func (f *Field[T]) Length() int {
	return f.Width
}

// String renders the field as "NAME: value" for display.
func (f Field[T]) String() string {
	return fmt.Sprintf("%s: %s", f.Name, f.Val.Encode())
}
