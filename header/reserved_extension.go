package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/field"
)

// RE is the reserved extension subheader marker.
type RE uint8

// MarkerRE is the only legal reserved extension marker spelling.
const MarkerRE RE = iota

func (RE) Decode(s string) (RE, error) {
	if s != "RE" {
		return MarkerRE, errors.New("unknown reserved extension marker")
	}

	return MarkerRE, nil
}

func (RE) Encode() string { return "RE" }

func (RE) Justify() field.Justify { return field.Left }

// ReservedExtensionHeader is the reserved extension segment subheader.
type ReservedExtensionHeader struct {
	// RE is the subheader marker.
	RE field.Field[RE]
	// RESID is the unique RES type identifier.
	RESID field.Field[field.Str]
	// RESVER is the version of the data definition.
	RESVER field.Field[field.U8]
	// Security is the segment security block.
	Security Security
	// RESSHL is the user-defined subheader length.
	RESSHL field.Field[field.U16]
	// RESSHF holds the user-defined subheader fields.
	RESSHF ExtendedSubheader
}

// NewReservedExtensionHeader creates a reserved extension subheader with
// default field values.
func NewReservedExtensionHeader() *ReservedExtensionHeader {
	return &ReservedExtensionHeader{
		RE:       field.New[RE]("RE", 2),
		RESID:    field.New[field.Str]("RESID", 25),
		RESVER:   field.New[field.U8]("RESVER", 2),
		Security: NewSecurity(),
		RESSHL:   field.New[field.U16]("RESSHL", 4),
		RESSHF:   NewExtendedSubheader("RESSHF"),
	}
}

// Read decodes the subheader from the reader's current position.
func (h *ReservedExtensionHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.RE, &h.RESID, &h.RESVER); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if err := h.RESSHL.Read(r); err != nil {
		return err
	}
	if h.RESSHL.Val == 0 {
		h.RESSHF.Data = nil
		return nil
	}

	return h.RESSHF.Read(r, int(h.RESSHL.Val))
}

// Write encodes the subheader, refreshing RESSHL from the user-defined
// subheader payload.
func (h *ReservedExtensionHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.RE, &h.RESID, &h.RESVER)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	h.RESSHL.Val = field.U16(h.RESSHF.Size())
	n, err = h.RESSHL.Write(w)
	written += n
	if err != nil {
		return written, err
	}
	if h.RESSHF.Size() == 0 {
		return written, nil
	}

	n, err = h.RESSHF.Write(w)
	written += n

	return written, err
}

// Length returns the encoded size of the subheader as it would be written.
func (h *ReservedExtensionHeader) Length() int {
	length := h.RE.Length() + h.RESID.Length() + h.RESVER.Length()
	length += h.Security.Length()
	length += h.RESSHL.Length() + h.RESSHF.Size()

	return length
}

// Equal compares every field.
func (h *ReservedExtensionHeader) Equal(o *ReservedExtensionHeader) bool {
	if h.RE != o.RE || h.RESID != o.RESID || h.RESVER != o.RESVER ||
		h.Security != o.Security || h.RESSHL != o.RESSHL {
		return false
	}

	return h.RESSHF.Equal(&o.RESSHF)
}

func (h *ReservedExtensionHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, ", h.RE, h.RESID, h.RESVER)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	fmt.Fprintf(&b, "%v, %v", h.RESSHL, &h.RESSHF)

	return fmt.Sprintf("Reserved Extension Header: [%s]", b.String())
}
