package header

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tacscale/nitf/errs"
)

// ExtendedSubheader is a variable-length trailing bag of tagged-record
// extension bytes attached to a subheader. The byte count lives in a sibling
// length field; when that count is zero the region is absent from the wire
// entirely and Data is nil.
type ExtendedSubheader struct {
	// Name is the format mnemonic of the region, for diagnostics.
	Name string
	// Data holds the region's bytes verbatim. The library does not parse
	// tagged record extensions; callers interpret them.
	Data []byte
}

// NewExtendedSubheader creates an empty region with the given mnemonic.
func NewExtendedSubheader(name string) ExtendedSubheader {
	return ExtendedSubheader{Name: name}
}

// Read consumes exactly count bytes into an owned buffer.
func (e *ExtendedSubheader) Read(r io.Reader, count int) error {
	e.Data = make([]byte, count)
	if _, err := io.ReadFull(r, e.Data); err != nil {
		return errs.IO(err)
	}

	return nil
}

// Write emits the owned bytes verbatim.
func (e *ExtendedSubheader) Write(w io.Writer) (int, error) {
	n, err := w.Write(e.Data)
	if err != nil {
		return n, errs.IO(err)
	}

	return n, nil
}

// Size reports the owned byte count.
func (e *ExtendedSubheader) Size() int {
	return len(e.Data)
}

func (e *ExtendedSubheader) String() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Data)
}

// Equal reports whether two regions hold the same bytes.
func (e *ExtendedSubheader) Equal(o *ExtendedSubheader) bool {
	return bytes.Equal(e.Data, o.Data)
}
