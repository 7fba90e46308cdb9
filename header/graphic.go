package header

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tacscale/nitf/field"
)

// SY is the graphic subheader marker.
type SY uint8

// MarkerSY is the only legal graphic marker spelling.
const MarkerSY SY = iota

func (SY) Decode(s string) (SY, error) {
	if s != "SY" {
		return MarkerSY, errors.New("unknown graphic marker")
	}

	return MarkerSY, nil
}

func (SY) Encode() string { return "SY" }

func (SY) Justify() field.Justify { return field.Left }

// GraphicFormat is the graphic type; the standard currently admits only
// computer graphics metafiles.
type GraphicFormat uint8

// FormatCGM is the only legal graphic format.
const FormatCGM GraphicFormat = iota

func (GraphicFormat) Decode(s string) (GraphicFormat, error) {
	if s != "C" {
		return FormatCGM, errors.New("unknown graphic format")
	}

	return FormatCGM, nil
}

func (GraphicFormat) Encode() string { return "C" }

func (GraphicFormat) Justify() field.Justify { return field.Left }

// GraphicColor records whether the graphic uses colour or monochrome
// pieces.
type GraphicColor uint8

const (
	// ColorPieces is colour.
	ColorPieces GraphicColor = iota
	// ColorMono is monochrome.
	ColorMono
)

func (GraphicColor) Decode(s string) (GraphicColor, error) {
	switch s {
	case "C":
		return ColorPieces, nil
	case "M":
		return ColorMono, nil
	}

	return ColorPieces, errors.New("unknown graphic color")
}

func (v GraphicColor) Encode() string {
	if v == ColorMono {
		return "M"
	}

	return "C"
}

func (GraphicColor) Justify() field.Justify { return field.Left }

// BoundLocation is a graphic bound position relative to the coordinate
// system origin: two 5-digit signed integers (row then column)
// concatenated into a 10-byte window. Each component is formatted
// independently, zero-padded to five characters.
type BoundLocation struct {
	// Row is the row offset.
	Row int32
	// Col is the column offset.
	Col int32
}

func (BoundLocation) Decode(s string) (BoundLocation, error) {
	if len(s) != 10 {
		return BoundLocation{}, errors.New("bound location must be 10 bytes")
	}

	row, err := strconv.ParseInt(s[:5], 10, 32)
	if err != nil {
		return BoundLocation{}, err
	}
	col, err := strconv.ParseInt(s[5:], 10, 32)
	if err != nil {
		return BoundLocation{}, err
	}

	return BoundLocation{Row: int32(row), Col: int32(col)}, nil
}

func (v BoundLocation) Encode() string {
	return fmt.Sprintf("%05d%05d", v.Row, v.Col)
}

func (BoundLocation) Justify() field.Justify { return field.Left }

// GraphicHeader is the graphic segment subheader.
type GraphicHeader struct {
	// SY is the subheader marker.
	SY field.Field[SY]
	// SID is the graphic identifier.
	SID field.Field[field.Str]
	// SNAME is the graphic name.
	SNAME field.Field[field.Str]
	// Security is the graphic security block.
	Security Security
	// ENCRYP is the encryption flag.
	ENCRYP field.Field[field.Str]
	// SFMT is the graphic format.
	SFMT field.Field[GraphicFormat]
	// SSTRUCT is reserved for future use.
	SSTRUCT field.Field[field.U64]
	// SDLVL is the display level.
	SDLVL field.Field[field.U16]
	// SALVL is the attachment level.
	SALVL field.Field[field.U16]
	// SLOC is the graphic location.
	SLOC field.Field[BoundLocation]
	// SBND1 is the first graphic bound location.
	SBND1 field.Field[BoundLocation]
	// SCOLOR is the graphic colour.
	SCOLOR field.Field[GraphicColor]
	// SBND2 is the second graphic bound location.
	SBND2 field.Field[BoundLocation]
	// SRES2 is reserved for future use.
	SRES2 field.Field[field.U8]
	// SXSHDL guards the graphic extended subheader region.
	SXSHDL field.Field[field.U32]
	// SXSOFL is the extended subheader overflow index.
	SXSOFL field.Field[field.U16]
	// SXSHD holds the graphic extended subheader data.
	SXSHD ExtendedSubheader
}

// NewGraphicHeader creates a graphic subheader with default field values.
func NewGraphicHeader() *GraphicHeader {
	return &GraphicHeader{
		SY:       field.New[SY]("SY", 2),
		SID:      field.New[field.Str]("SID", 10),
		SNAME:    field.New[field.Str]("SNAME", 20),
		Security: NewSecurity(),
		ENCRYP:   field.New[field.Str]("ENCRYP", 1),
		SFMT:     field.New[GraphicFormat]("SFMT", 1),
		SSTRUCT:  field.New[field.U64]("SSTRUCT", 13),
		SDLVL:    field.New[field.U16]("SDLVL", 3),
		SALVL:    field.New[field.U16]("SALVL", 3),
		SLOC:     field.New[BoundLocation]("SLOC", 10),
		SBND1:    field.New[BoundLocation]("SBND1", 10),
		SCOLOR:   field.New[GraphicColor]("SCOLOR", 1),
		SBND2:    field.New[BoundLocation]("SBND2", 10),
		SRES2:    field.New[field.U8]("SRES2", 2),
		SXSHDL:   field.New[field.U32]("SXSHDL", 5),
		SXSOFL:   field.New[field.U16]("SXSOFL", 3),
		SXSHD:    NewExtendedSubheader("SXSHD"),
	}
}

// Read decodes the subheader from the reader's current position.
func (h *GraphicHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.SY, &h.SID, &h.SNAME); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if err := readSeq(r, &h.ENCRYP, &h.SFMT, &h.SSTRUCT, &h.SDLVL, &h.SALVL,
		&h.SLOC, &h.SBND1, &h.SCOLOR, &h.SBND2, &h.SRES2); err != nil {
		return err
	}

	return readGuardedTail(r, &h.SXSHDL, &h.SXSOFL, &h.SXSHD)
}

// Write encodes the subheader.
func (h *GraphicHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.SY, &h.SID, &h.SNAME)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeSeq(w, &h.ENCRYP, &h.SFMT, &h.SSTRUCT, &h.SDLVL, &h.SALVL,
		&h.SLOC, &h.SBND1, &h.SCOLOR, &h.SBND2, &h.SRES2)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeGuardedTail(w, &h.SXSHDL, &h.SXSOFL, &h.SXSHD)
	written += n

	return written, err
}

// Length returns the encoded size of the subheader as it would be written.
func (h *GraphicHeader) Length() int {
	length := h.SY.Length() + h.SID.Length() + h.SNAME.Length()
	length += h.Security.Length()
	length += h.ENCRYP.Length() + h.SFMT.Length() + h.SSTRUCT.Length() +
		h.SDLVL.Length() + h.SALVL.Length() + h.SLOC.Length() +
		h.SBND1.Length() + h.SCOLOR.Length() + h.SBND2.Length() +
		h.SRES2.Length()
	length += guardedTailLength(&h.SXSHDL, &h.SXSOFL, &h.SXSHD)

	return length
}

// Equal compares every field.
func (h *GraphicHeader) Equal(o *GraphicHeader) bool {
	if h.SY != o.SY || h.SID != o.SID || h.SNAME != o.SNAME ||
		h.Security != o.Security || h.ENCRYP != o.ENCRYP ||
		h.SFMT != o.SFMT || h.SSTRUCT != o.SSTRUCT ||
		h.SDLVL != o.SDLVL || h.SALVL != o.SALVL || h.SLOC != o.SLOC ||
		h.SBND1 != o.SBND1 || h.SCOLOR != o.SCOLOR || h.SBND2 != o.SBND2 ||
		h.SRES2 != o.SRES2 || h.SXSHDL != o.SXSHDL {
		return false
	}
	if h.SXSHD.Size() != 0 && h.SXSOFL != o.SXSOFL {
		return false
	}

	return h.SXSHD.Equal(&o.SXSHD)
}

func (h *GraphicHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, ", h.SY, h.SID, h.SNAME)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v",
		h.ENCRYP, h.SFMT, h.SSTRUCT, h.SDLVL, h.SALVL, h.SLOC, h.SBND1,
		h.SCOLOR, h.SBND2, h.SRES2, h.SXSHDL, h.SXSOFL, &h.SXSHD)

	return fmt.Sprintf("Graphic Header: [%s]", b.String())
}
