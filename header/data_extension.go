package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/field"
)

// treOverflowID is the DESID value signalling that this segment carries
// overflowed tagged record extensions, which adds the DESOFLW/DESITEM pair
// to the wire. The 25-byte DESID window is trimmed before comparison.
const treOverflowID = "TRE_OVERFLOW"

// DE is the data extension subheader marker.
type DE uint8

// MarkerDE is the only legal data extension marker spelling.
const MarkerDE DE = iota

func (DE) Decode(s string) (DE, error) {
	if s != "DE" {
		return MarkerDE, errors.New("unknown data extension marker")
	}

	return MarkerDE, nil
}

func (DE) Encode() string { return "DE" }

func (DE) Justify() field.Justify { return field.Left }

// OverflowedHeaderType names the header or subheader region whose tagged
// record extensions overflowed into this segment.
type OverflowedHeaderType uint8

const (
	// OverflowIXSHD is image extended subheader overflow.
	OverflowIXSHD OverflowedHeaderType = iota
	// OverflowSXSHD is graphic extended subheader overflow.
	OverflowSXSHD
	// OverflowTXSHD is text extended subheader overflow.
	OverflowTXSHD
	// OverflowUDHD is file user-defined header overflow.
	OverflowUDHD
	// OverflowUDID is image user-defined data overflow.
	OverflowUDID
)

func (OverflowedHeaderType) Decode(s string) (OverflowedHeaderType, error) {
	switch s {
	case "IXSHD":
		return OverflowIXSHD, nil
	case "SXSHD":
		return OverflowSXSHD, nil
	case "TXSHD":
		return OverflowTXSHD, nil
	case "UDHD":
		return OverflowUDHD, nil
	case "UDID":
		return OverflowUDID, nil
	}

	return OverflowIXSHD, errors.New("unknown overflowed header type")
}

func (v OverflowedHeaderType) Encode() string {
	switch v {
	case OverflowSXSHD:
		return "SXSHD"
	case OverflowTXSHD:
		return "TXSHD"
	case OverflowUDHD:
		return "UDHD"
	case OverflowUDID:
		return "UDID"
	default:
		return "IXSHD"
	}
}

func (OverflowedHeaderType) Justify() field.Justify { return field.Left }

// DataExtensionHeader is the data extension segment subheader. When DESID
// (trimmed) equals "TRE_OVERFLOW" the DESOFLW and DESITEM fields are on the
// wire; for every other identifier they are absent. The user-defined
// subheader DESSHF carries exactly DESSHL bytes and no overflow index.
type DataExtensionHeader struct {
	// DE is the subheader marker.
	DE field.Field[DE]
	// DESID is the unique DES type identifier.
	DESID field.Field[field.Str]
	// DESVER is the version of the data definition.
	DESVER field.Field[field.U8]
	// Security is the segment security block.
	Security Security
	// DESOFLW names the overflowed header; on the wire only for
	// TRE_OVERFLOW segments.
	DESOFLW field.Field[OverflowedHeaderType]
	// DESITEM is the overflowed item index; on the wire only for
	// TRE_OVERFLOW segments.
	DESITEM field.Field[field.U16]
	// DESSHL is the user-defined subheader length.
	DESSHL field.Field[field.U16]
	// DESSHF holds the user-defined subheader fields.
	DESSHF ExtendedSubheader
}

// NewDataExtensionHeader creates a data extension subheader with default
// field values.
func NewDataExtensionHeader() *DataExtensionHeader {
	return &DataExtensionHeader{
		DE:       field.New[DE]("DE", 2),
		DESID:    field.New[field.Str]("DESID", 25),
		DESVER:   field.New[field.U8]("DESVER", 2),
		Security: NewSecurity(),
		DESOFLW:  field.New[OverflowedHeaderType]("DESOFLW", 6),
		DESITEM:  field.New[field.U16]("DESITEM", 3),
		DESSHL:   field.New[field.U16]("DESSHL", 4),
		DESSHF:   NewExtendedSubheader("DESSHF"),
	}
}

// IsTREOverflow reports whether the keyed DESOFLW/DESITEM tail is present.
func (h *DataExtensionHeader) IsTREOverflow() bool {
	return strings.TrimSpace(string(h.DESID.Val)) == treOverflowID
}

// Read decodes the subheader from the reader's current position.
func (h *DataExtensionHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.DE, &h.DESID, &h.DESVER); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if h.IsTREOverflow() {
		if err := readSeq(r, &h.DESOFLW, &h.DESITEM); err != nil {
			return err
		}
	}
	if err := h.DESSHL.Read(r); err != nil {
		return err
	}
	if h.DESSHL.Val == 0 {
		h.DESSHF.Data = nil
		return nil
	}

	return h.DESSHF.Read(r, int(h.DESSHL.Val))
}

// Write encodes the subheader, refreshing DESSHL from the user-defined
// subheader payload.
func (h *DataExtensionHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.DE, &h.DESID, &h.DESVER)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	if h.IsTREOverflow() {
		n, err = writeSeq(w, &h.DESOFLW, &h.DESITEM)
		written += n
		if err != nil {
			return written, err
		}
	}

	h.DESSHL.Val = field.U16(h.DESSHF.Size())
	n, err = h.DESSHL.Write(w)
	written += n
	if err != nil {
		return written, err
	}
	if h.DESSHF.Size() == 0 {
		return written, nil
	}

	n, err = h.DESSHF.Write(w)
	written += n

	return written, err
}

// Length returns the encoded size of the subheader as it would be written.
func (h *DataExtensionHeader) Length() int {
	length := h.DE.Length() + h.DESID.Length() + h.DESVER.Length()
	length += h.Security.Length()
	if h.IsTREOverflow() {
		length += h.DESOFLW.Length() + h.DESITEM.Length()
	}
	length += h.DESSHL.Length() + h.DESSHF.Size()

	return length
}

// Equal compares every field.
func (h *DataExtensionHeader) Equal(o *DataExtensionHeader) bool {
	if h.DE != o.DE || h.DESID != o.DESID || h.DESVER != o.DESVER ||
		h.Security != o.Security || h.DESSHL != o.DESSHL {
		return false
	}
	if h.IsTREOverflow() && (h.DESOFLW != o.DESOFLW || h.DESITEM != o.DESITEM) {
		return false
	}

	return h.DESSHF.Equal(&o.DESSHF)
}

func (h *DataExtensionHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, ", h.DE, h.DESID, h.DESVER)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	if h.IsTREOverflow() {
		fmt.Fprintf(&b, "%v, %v, ", h.DESOFLW, h.DESITEM)
	}
	fmt.Fprintf(&b, "%v, %v", h.DESSHL, &h.DESSHF)

	return fmt.Sprintf("Data Extension Header: [%s]", b.String())
}
