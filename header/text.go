package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/field"
)

// TE is the text subheader marker.
type TE uint8

// MarkerTE is the only legal text marker spelling.
const MarkerTE TE = iota

func (TE) Decode(s string) (TE, error) {
	if s != "TE" {
		return MarkerTE, errors.New("unknown text marker")
	}

	return MarkerTE, nil
}

func (TE) Encode() string { return "TE" }

func (TE) Justify() field.Justify { return field.Left }

// TextFormat selects the character set and formatting of the text
// segment's data payload.
type TextFormat uint8

const (
	// FormatMTF is USMTF formatting.
	FormatMTF TextFormat = iota
	// FormatBCS is BCS formatting.
	FormatBCS
	// FormatECS is ECS formatting.
	FormatECS
	// FormatU8S is UTF-8 subset formatting.
	FormatU8S
)

func (TextFormat) Decode(s string) (TextFormat, error) {
	switch s {
	case "MTF":
		return FormatMTF, nil
	case "STA":
		return FormatBCS, nil
	case "UT1":
		return FormatECS, nil
	case "U8S":
		return FormatU8S, nil
	}

	return FormatMTF, errors.New("unknown text format")
}

func (v TextFormat) Encode() string {
	switch v {
	case FormatBCS:
		return "STA"
	case FormatECS:
		return "UT1"
	case FormatU8S:
		return "U8S"
	default:
		return "MTF"
	}
}

func (TextFormat) Justify() field.Justify { return field.Left }

// TextHeader is the text segment subheader.
type TextHeader struct {
	// TE is the subheader marker.
	TE field.Field[TE]
	// TEXTID is the text identifier.
	TEXTID field.Field[field.Str]
	// TXTALVL is the attachment level.
	TXTALVL field.Field[field.U16]
	// TXTDT is the text date and time.
	TXTDT field.Field[field.Str]
	// TXTTITL is the text title.
	TXTTITL field.Field[field.Str]
	// Security is the text security block.
	Security Security
	// ENCRYP is the encryption flag.
	ENCRYP field.Field[field.Str]
	// TXTFMT is the text format.
	TXTFMT field.Field[TextFormat]
	// TXSHDL guards the text extended subheader region.
	TXSHDL field.Field[field.U32]
	// TXSOFL is the extended subheader overflow index.
	TXSOFL field.Field[field.U16]
	// TXSHD holds the text extended subheader data.
	TXSHD ExtendedSubheader
}

// NewTextHeader creates a text subheader with default field values.
func NewTextHeader() *TextHeader {
	return &TextHeader{
		TE:       field.New[TE]("TE", 2),
		TEXTID:   field.New[field.Str]("TEXTID", 7),
		TXTALVL:  field.New[field.U16]("TXTALVL", 3),
		TXTDT:    field.New[field.Str]("TXTDT", 14),
		TXTTITL:  field.New[field.Str]("TXTTITL", 80),
		Security: NewSecurity(),
		ENCRYP:   field.New[field.Str]("ENCRYP", 1),
		TXTFMT:   field.New[TextFormat]("TXTFMT", 3),
		TXSHDL:   field.New[field.U32]("TXSHDL", 5),
		TXSOFL:   field.New[field.U16]("TXSOFL", 3),
		TXSHD:    NewExtendedSubheader("TXSHD"),
	}
}

// Read decodes the subheader from the reader's current position.
func (h *TextHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.TE, &h.TEXTID, &h.TXTALVL, &h.TXTDT, &h.TXTTITL); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if err := readSeq(r, &h.ENCRYP, &h.TXTFMT); err != nil {
		return err
	}

	return readGuardedTail(r, &h.TXSHDL, &h.TXSOFL, &h.TXSHD)
}

// Write encodes the subheader.
func (h *TextHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.TE, &h.TEXTID, &h.TXTALVL, &h.TXTDT, &h.TXTTITL)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeSeq(w, &h.ENCRYP, &h.TXTFMT)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeGuardedTail(w, &h.TXSHDL, &h.TXSOFL, &h.TXSHD)
	written += n

	return written, err
}

// Length returns the encoded size of the subheader as it would be written.
func (h *TextHeader) Length() int {
	length := h.TE.Length() + h.TEXTID.Length() + h.TXTALVL.Length() +
		h.TXTDT.Length() + h.TXTTITL.Length()
	length += h.Security.Length()
	length += h.ENCRYP.Length() + h.TXTFMT.Length()
	length += guardedTailLength(&h.TXSHDL, &h.TXSOFL, &h.TXSHD)

	return length
}

// Equal compares every field.
func (h *TextHeader) Equal(o *TextHeader) bool {
	if h.TE != o.TE || h.TEXTID != o.TEXTID || h.TXTALVL != o.TXTALVL ||
		h.TXTDT != o.TXTDT || h.TXTTITL != o.TXTTITL ||
		h.Security != o.Security || h.ENCRYP != o.ENCRYP ||
		h.TXTFMT != o.TXTFMT || h.TXSHDL != o.TXSHDL {
		return false
	}
	if h.TXSHD.Size() != 0 && h.TXSOFL != o.TXSOFL {
		return false
	}

	return h.TXSHD.Equal(&o.TXSHD)
}

func (h *TextHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, ", h.TE, h.TEXTID, h.TXTALVL, h.TXTDT, h.TXTTITL)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v", h.ENCRYP, h.TXTFMT, h.TXSHDL, h.TXSOFL, &h.TXSHD)

	return fmt.Sprintf("Text Header: [%s]", b.String())
}
