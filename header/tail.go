package header

import (
	"io"

	"github.com/tacscale/nitf/errs"
	"github.com/tacscale/nitf/field"
)

// oflWidth is the size of the overflow-index field inside a guarded tail.
// The on-wire length value counts these three bytes plus the payload.
const oflWidth = 3

// readGuardedTail reads a length-guarded optional region: a length field,
// and iff it is nonzero, a 3-byte overflow index followed by length-3 bytes
// of payload. A nonzero length too small to cover the overflow index is
// rejected; it would imply an empty or negative payload.
func readGuardedTail(r io.Reader, length *field.Field[field.U32], ofl *field.Field[field.U16], ext *ExtendedSubheader) error {
	if err := length.Read(r); err != nil {
		return err
	}
	if length.Val == 0 {
		return nil
	}
	if length.Val <= oflWidth {
		return errs.Value(length.Name)
	}
	if err := ofl.Read(r); err != nil {
		return err
	}

	return ext.Read(r, int(length.Val)-oflWidth)
}

// writeGuardedTail writes the region, refreshing the length field from the
// payload first: zero when the payload is empty, 3+len(payload) otherwise.
func writeGuardedTail(w io.Writer, length *field.Field[field.U32], ofl *field.Field[field.U16], ext *ExtendedSubheader) (int, error) {
	if ext.Size() == 0 {
		length.Val = 0
		return length.Write(w)
	}

	length.Val = field.U32(oflWidth + ext.Size())

	return writeSeq(w, length, ofl, ext)
}

// guardedTailLength reports the encoded size of the region as it would be
// written.
func guardedTailLength(length *field.Field[field.U32], ofl *field.Field[field.U16], ext *ExtendedSubheader) int {
	if ext.Size() == 0 {
		return length.Length()
	}

	return length.Length() + ofl.Length() + ext.Size()
}
