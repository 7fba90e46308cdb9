package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/errs"
	"github.com/tacscale/nitf/field"
)

// IM is the image subheader marker.
type IM uint8

// MarkerIM is the only legal image marker spelling.
const MarkerIM IM = iota

func (IM) Decode(s string) (IM, error) {
	if s != "IM" {
		return MarkerIM, errors.New("unknown image marker")
	}

	return MarkerIM, nil
}

func (IM) Encode() string { return "IM" }

func (IM) Justify() field.Justify { return field.Left }

// PixelValueType describes how pixel samples are encoded.
type PixelValueType uint8

const (
	// PixelComplex is complex float, 32 or 64 bits, real then imaginary.
	PixelComplex PixelValueType = iota
	// PixelFloat is IEEE float, 32 or 64 bits.
	PixelFloat
	// PixelBiLevel is a single bit per sample.
	PixelBiLevel
	// PixelSignedInt is 2's complement signed integer.
	PixelSignedInt
	// PixelInt is unsigned integer.
	PixelInt
)

func (PixelValueType) Decode(s string) (PixelValueType, error) {
	switch s {
	case "C":
		return PixelComplex, nil
	case "R":
		return PixelFloat, nil
	case "B":
		return PixelBiLevel, nil
	case "SI":
		return PixelSignedInt, nil
	case "INT":
		return PixelInt, nil
	}

	return PixelComplex, errors.New("unknown pixel value type")
}

func (v PixelValueType) Encode() string {
	switch v {
	case PixelFloat:
		return "R"
	case PixelBiLevel:
		return "B"
	case PixelSignedInt:
		return "SI"
	case PixelInt:
		return "INT"
	default:
		return "C"
	}
}

func (PixelValueType) Justify() field.Justify { return field.Left }

// ImageRepresentation describes the intended display interpretation.
type ImageRepresentation uint8

const (
	// RepMono is monochrome.
	RepMono ImageRepresentation = iota
	// RepRGB is true colour.
	RepRGB
	// RepRGBLUT is mapped colour through a lookup table.
	RepRGBLUT
	// RepMulti is multiband imagery.
	RepMulti
	// RepNoDisplay is not intended for display.
	RepNoDisplay
	// RepNVector is vectors with cartesian coordinates.
	RepNVector
	// RepPolar is vectors with polar coordinates.
	RepPolar
	// RepVPH is SAR video phase history.
	RepVPH
	// RepYCbCr601 is ITU-R BT.601 colour.
	RepYCbCr601
)

func (ImageRepresentation) Decode(s string) (ImageRepresentation, error) {
	switch s {
	case "MONO":
		return RepMono, nil
	case "RGB":
		return RepRGB, nil
	case "RGB/LUT":
		return RepRGBLUT, nil
	case "MULTI":
		return RepMulti, nil
	case "NODISPLY":
		return RepNoDisplay, nil
	case "NVECTOR":
		return RepNVector, nil
	case "POLAR":
		return RepPolar, nil
	case "VPH":
		return RepVPH, nil
	case "YCbCr601":
		return RepYCbCr601, nil
	}

	return RepMono, errors.New("unknown image representation")
}

func (v ImageRepresentation) Encode() string {
	switch v {
	case RepRGB:
		return "RGB"
	case RepRGBLUT:
		return "RGB/LUT"
	case RepMulti:
		return "MULTI"
	case RepNoDisplay:
		return "NODISPLY"
	case RepNVector:
		return "NVECTOR"
	case RepPolar:
		return "POLAR"
	case RepVPH:
		return "VPH"
	case RepYCbCr601:
		return "YCbCr601"
	default:
		return "MONO"
	}
}

func (ImageRepresentation) Justify() field.Justify { return field.Left }

// BandRepresentation describes one band's role within the image
// representation. A blank spelling is legal and is the default.
type BandRepresentation uint8

const (
	// BandDefault is the blank spelling.
	BandDefault BandRepresentation = iota
	// BandMono is monochrome.
	BandMono
	// BandRed is the red component.
	BandRed
	// BandGreen is the green component.
	BandGreen
	// BandBlue is the blue component.
	BandBlue
	// BandLUT is a lookup-table band.
	BandLUT
	// BandLuminance is the Y component.
	BandLuminance
	// BandChromaBlue is the Cb component.
	BandChromaBlue
	// BandChromaRed is the Cr component.
	BandChromaRed
)

func (BandRepresentation) Decode(s string) (BandRepresentation, error) {
	switch s {
	case "":
		return BandDefault, nil
	case "M":
		return BandMono, nil
	case "R":
		return BandRed, nil
	case "G":
		return BandGreen, nil
	case "B":
		return BandBlue, nil
	case "LU":
		return BandLUT, nil
	case "Y":
		return BandLuminance, nil
	case "Cb":
		return BandChromaBlue, nil
	case "Cr":
		return BandChromaRed, nil
	}

	return BandDefault, errors.New("unknown band representation")
}

func (v BandRepresentation) Encode() string {
	switch v {
	case BandMono:
		return "M"
	case BandRed:
		return "R"
	case BandGreen:
		return "G"
	case BandBlue:
		return "B"
	case BandLUT:
		return "LU"
	case BandLuminance:
		return "Y"
	case BandChromaBlue:
		return "Cb"
	case BandChromaRed:
		return "Cr"
	default:
		return ""
	}
}

func (BandRepresentation) Justify() field.Justify { return field.Left }

// ImageFilterCondition is reserved by the standard; "N" is the only
// spelling.
type ImageFilterCondition uint8

// FilterNone is the only legal filter condition.
const FilterNone ImageFilterCondition = iota

func (ImageFilterCondition) Decode(s string) (ImageFilterCondition, error) {
	if s != "N" {
		return FilterNone, errors.New("unknown image filter condition")
	}

	return FilterNone, nil
}

func (ImageFilterCondition) Encode() string { return "N" }

func (ImageFilterCondition) Justify() field.Justify { return field.Left }

// PixelJustification records which end of the byte pixel bits occupy.
type PixelJustification uint8

const (
	// JustifyRight is right justified.
	JustifyRight PixelJustification = iota
	// JustifyLeft is left justified.
	JustifyLeft
)

func (PixelJustification) Decode(s string) (PixelJustification, error) {
	switch s {
	case "R":
		return JustifyRight, nil
	case "L":
		return JustifyLeft, nil
	}

	return JustifyRight, errors.New("unknown pixel justification")
}

func (v PixelJustification) Encode() string {
	if v == JustifyLeft {
		return "L"
	}

	return "R"
}

func (PixelJustification) Justify() field.Justify { return field.Left }

// CoordinateRepresentation selects the IGEOLO coordinate system. A blank
// spelling means no coordinate system is given.
type CoordinateRepresentation uint8

const (
	// CoordNone is the blank spelling.
	CoordNone CoordinateRepresentation = iota
	// CoordUTMMGRS is UTM in Military Grid Reference System form.
	CoordUTMMGRS
	// CoordUTMNorth is UTM/UPS northern hemisphere.
	CoordUTMNorth
	// CoordUTMSouth is UTM/UPS southern hemisphere.
	CoordUTMSouth
	// CoordUPS is UPS.
	CoordUPS
	// CoordGeographic is geographic (degrees, minutes, seconds).
	CoordGeographic
	// CoordDecimalDegrees is decimal degrees.
	CoordDecimalDegrees
)

func (CoordinateRepresentation) Decode(s string) (CoordinateRepresentation, error) {
	switch s {
	case "":
		return CoordNone, nil
	case "U":
		return CoordUTMMGRS, nil
	case "N":
		return CoordUTMNorth, nil
	case "S":
		return CoordUTMSouth, nil
	case "P":
		return CoordUPS, nil
	case "G":
		return CoordGeographic, nil
	case "D":
		return CoordDecimalDegrees, nil
	}

	return CoordNone, errors.New("unknown coordinate representation")
}

func (v CoordinateRepresentation) Encode() string {
	switch v {
	case CoordUTMMGRS:
		return "U"
	case CoordUTMNorth:
		return "N"
	case CoordUTMSouth:
		return "S"
	case CoordUPS:
		return "P"
	case CoordGeographic:
		return "G"
	case CoordDecimalDegrees:
		return "D"
	default:
		return ""
	}
}

func (CoordinateRepresentation) Justify() field.Justify { return field.Left }

// Compression is the image compression code. Codes with a defined rate
// carry a 4-byte COMRAT field immediately after IC on the wire.
type Compression uint8

const (
	// CompNone is uncompressed.
	CompNone Compression = iota
	// CompNoneMasked is uncompressed with a block mask.
	CompNoneMasked
	// CompBiLevel is bi-level (C1).
	CompBiLevel
	// CompJPEG is JPEG (C3).
	CompJPEG
	// CompVQ is vector quantization (C4).
	CompVQ
	// CompLosslessJPEG is lossless JPEG (C5).
	CompLosslessJPEG
	// CompReservedC6 is reserved (C6).
	CompReservedC6
	// CompReservedC7 is reserved for complex SAR (C7).
	CompReservedC7
	// CompJPEG2000 is ISO JPEG 2000 (C8).
	CompJPEG2000
	// CompDownsampledJPEG is downsampled JPEG (I1).
	CompDownsampledJPEG
	// CompBiLevelMasked is C1 with a mask (M1).
	CompBiLevelMasked
	// CompJPEGMasked is C3 with a mask (M3).
	CompJPEGMasked
	// CompVQMasked is C4 with a mask (M4).
	CompVQMasked
	// CompLosslessJPEGMasked is C5 with a mask (M5).
	CompLosslessJPEGMasked
	// CompReservedM6 is reserved (M6).
	CompReservedM6
	// CompReservedM7 is reserved for complex SAR (M7).
	CompReservedM7
	// CompJPEG2000Masked is C8 with a mask (M8).
	CompJPEG2000Masked
)

var compressionCodes = map[string]Compression{
	"NC": CompNone,
	"NM": CompNoneMasked,
	"C1": CompBiLevel,
	"C3": CompJPEG,
	"C4": CompVQ,
	"C5": CompLosslessJPEG,
	"C6": CompReservedC6,
	"C7": CompReservedC7,
	"C8": CompJPEG2000,
	"I1": CompDownsampledJPEG,
	"M1": CompBiLevelMasked,
	"M3": CompJPEGMasked,
	"M4": CompVQMasked,
	"M5": CompLosslessJPEGMasked,
	"M6": CompReservedM6,
	"M7": CompReservedM7,
	"M8": CompJPEG2000Masked,
}

func (Compression) Decode(s string) (Compression, error) {
	c, ok := compressionCodes[s]
	if !ok {
		return CompNone, errors.New("unknown compression code")
	}

	return c, nil
}

func (v Compression) Encode() string {
	for code, c := range compressionCodes {
		if c == v {
			return code
		}
	}

	return "NC"
}

func (Compression) Justify() field.Justify { return field.Left }

// HasRate reports whether this code carries a COMRAT field on the wire.
// NC, NM and the reserved codes C6/C7/M6/M7 omit it.
func (v Compression) HasRate() bool {
	switch v {
	case CompBiLevel, CompJPEG, CompVQ, CompLosslessJPEG, CompJPEG2000,
		CompDownsampledJPEG, CompBiLevelMasked, CompJPEGMasked,
		CompVQMasked, CompLosslessJPEGMasked, CompJPEG2000Masked:
		return true
	}

	return false
}

// ImageMode is the band interleave mode.
type ImageMode uint8

const (
	// ModeBlockInterleave is band interleaved by block.
	ModeBlockInterleave ImageMode = iota
	// ModePixelInterleave is band interleaved by pixel.
	ModePixelInterleave
	// ModeRowInterleave is band interleaved by row.
	ModeRowInterleave
	// ModeSequential is band sequential.
	ModeSequential
)

func (ImageMode) Decode(s string) (ImageMode, error) {
	switch s {
	case "B":
		return ModeBlockInterleave, nil
	case "P":
		return ModePixelInterleave, nil
	case "R":
		return ModeRowInterleave, nil
	case "S":
		return ModeSequential, nil
	}

	return ModeBlockInterleave, errors.New("unknown image mode")
}

func (v ImageMode) Encode() string {
	switch v {
	case ModePixelInterleave:
		return "P"
	case ModeRowInterleave:
		return "R"
	case ModeSequential:
		return "S"
	default:
		return "B"
	}
}

func (ImageMode) Justify() field.Justify { return field.Left }

// Band is one image band record: its representation and filter fields plus
// the optional lookup tables. LUT entries are stored as one flat byte
// sequence of NLUTS x NELUT entries.
type Band struct {
	// IREPBAND is the band representation.
	IREPBAND field.Field[BandRepresentation]
	// ISUBCAT is the user-specified band subcategory.
	ISUBCAT field.Field[field.Str]
	// IFC is the band image filter condition, reserved by the standard.
	IFC field.Field[ImageFilterCondition]
	// IMFLT is the standard image filter code, reserved by the standard.
	IMFLT field.Field[field.Str]
	// NLUTS counts the band's lookup tables; zero means LUTD and NELUT are
	// absent from the wire.
	NLUTS field.Field[field.U8]
	// NELUT counts entries per lookup table; refreshed from LUTD on write.
	NELUT field.Field[field.U32]
	// LUTD holds the lookup table entries, one byte each, table-major.
	LUTD []byte
}

// NewBand creates a band with default fields and no lookup tables.
func NewBand() Band {
	return Band{
		IREPBAND: field.New[BandRepresentation]("IREPBAND", 2),
		ISUBCAT:  field.New[field.Str]("ISUBCAT", 6),
		IFC:      field.New[ImageFilterCondition]("IFC", 1),
		IMFLT:    field.New[field.Str]("IMFLT", 3),
		NLUTS:    field.New[field.U8]("NLUTS", 1),
		NELUT:    field.New[field.U32]("NELUT", 5),
	}
}

// Read decodes the band, including the LUT payload when NLUTS is nonzero.
func (b *Band) Read(r io.Reader) error {
	if err := readSeq(r, &b.IREPBAND, &b.ISUBCAT, &b.IFC, &b.IMFLT, &b.NLUTS); err != nil {
		return err
	}
	if b.NLUTS.Val == 0 {
		b.LUTD = nil
		return nil
	}
	if err := b.NELUT.Read(r); err != nil {
		return err
	}

	b.LUTD = make([]byte, int(b.NLUTS.Val)*int(b.NELUT.Val))
	if _, err := io.ReadFull(r, b.LUTD); err != nil {
		return errs.IO(err)
	}

	return nil
}

// Write encodes the band, refreshing NELUT from the flat LUT payload.
func (b *Band) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &b.IREPBAND, &b.ISUBCAT, &b.IFC, &b.IMFLT, &b.NLUTS)
	if err != nil {
		return written, err
	}
	if b.NLUTS.Val == 0 {
		return written, nil
	}

	b.NELUT.Val = field.U32(len(b.LUTD) / int(b.NLUTS.Val))
	n, err := b.NELUT.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	n, err = w.Write(b.LUTD)
	written += n
	if err != nil {
		return written, errs.IO(err)
	}

	return written, nil
}

// Length returns the encoded size of the band.
func (b *Band) Length() int {
	length := b.IREPBAND.Length() + b.ISUBCAT.Length() + b.IFC.Length() +
		b.IMFLT.Length() + b.NLUTS.Length()
	if b.NLUTS.Val != 0 {
		length += b.NELUT.Length() + len(b.LUTD)
	}

	return length
}

// Equal compares two bands field by field, including LUT bytes.
func (b *Band) Equal(o *Band) bool {
	if b.IREPBAND != o.IREPBAND || b.ISUBCAT != o.ISUBCAT ||
		b.IFC != o.IFC || b.IMFLT != o.IMFLT ||
		b.NLUTS != o.NLUTS || b.NELUT != o.NELUT {
		return false
	}
	if len(b.LUTD) != len(o.LUTD) {
		return false
	}
	for i := range b.LUTD {
		if b.LUTD[i] != o.LUTD[i] {
			return false
		}
	}

	return true
}

func (b *Band) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v, %v, %v, %v, %v", b.IREPBAND, b.ISUBCAT, b.IFC, b.IMFLT, b.NLUTS)
	if b.NLUTS.Val != 0 {
		fmt.Fprintf(&sb, ", %v, LUTD: % x", b.NELUT, b.LUTD)
	}

	return sb.String()
}

// ImageHeader is the image segment subheader.
type ImageHeader struct {
	// IM is the subheader marker.
	IM field.Field[IM]
	// IID1 is the first image identifier.
	IID1 field.Field[field.Str]
	// IDATIM is the image date and time.
	IDATIM field.Field[field.Str]
	// TGTID is the target identifier.
	TGTID field.Field[field.Str]
	// IID2 is the second image identifier.
	IID2 field.Field[field.Str]
	// Security is the image security block.
	Security Security
	// ENCRYP is the encryption flag.
	ENCRYP field.Field[field.Str]
	// ISORCE is the image source.
	ISORCE field.Field[field.Str]
	// NROWS counts significant rows.
	NROWS field.Field[field.U32]
	// NCOLS counts significant columns.
	NCOLS field.Field[field.U32]
	// PVTYPE is the pixel value type.
	PVTYPE field.Field[PixelValueType]
	// IREP is the image representation.
	IREP field.Field[ImageRepresentation]
	// ICAT is the image category.
	ICAT field.Field[field.Str]
	// ABPP is the actual bits per pixel per band.
	ABPP field.Field[field.U8]
	// PJUST is the pixel justification.
	PJUST field.Field[PixelJustification]
	// ICORDS is the coordinate representation.
	ICORDS field.Field[CoordinateRepresentation]
	// IGEOLO is the geographic location; the 60-byte window's internal
	// subdivision into four coordinates is not interpreted here.
	IGEOLO field.Field[field.Str]
	// NICOM counts the image comments; refreshed from ICOMS on write.
	NICOM field.Field[field.U8]
	// ICOMS holds the 80-byte image comments.
	ICOMS []field.Field[field.Str]
	// IC is the compression code.
	IC field.Field[Compression]
	// COMRAT is the compression rate code, on the wire only for codes with
	// a defined rate.
	COMRAT field.Field[field.Str]
	// NBANDS is the band count; zero means the real count is in XBANDS.
	NBANDS field.Field[field.U8]
	// XBANDS is the extended band count for images with more than 9 bands.
	XBANDS field.Field[field.U32]
	// Bands holds the band records.
	Bands []Band
	// ISYNC is the image sync code.
	ISYNC field.Field[field.U8]
	// IMODE is the band interleave mode.
	IMODE field.Field[ImageMode]
	// NBPR counts blocks per row.
	NBPR field.Field[field.U16]
	// NBPC counts blocks per column.
	NBPC field.Field[field.U16]
	// NPPBH counts pixels per block horizontally.
	NPPBH field.Field[field.U16]
	// NPPBV counts pixels per block vertically.
	NPPBV field.Field[field.U16]
	// NBPP is the storage bits per pixel.
	NBPP field.Field[field.U8]
	// IDLVL is the display level.
	IDLVL field.Field[field.U16]
	// IALVL is the attachment level.
	IALVL field.Field[field.U16]
	// ILOC is the image location.
	ILOC field.Field[field.Str]
	// IMAG is the image magnification.
	IMAG field.Field[field.Str]
	// UDIDL guards the user-defined image data region.
	UDIDL field.Field[field.U32]
	// UDOFL is the user-defined data overflow index.
	UDOFL field.Field[field.U16]
	// UDID holds the user-defined image data.
	UDID ExtendedSubheader
	// IXSHDL guards the image extended subheader region.
	IXSHDL field.Field[field.U32]
	// IXSOFL is the extended subheader overflow index.
	IXSOFL field.Field[field.U16]
	// IXSHD holds the image extended subheader data.
	IXSHD ExtendedSubheader
}

// NewImageHeader creates an image subheader with default field values and
// no bands or comments.
func NewImageHeader() *ImageHeader {
	return &ImageHeader{
		IM:       field.New[IM]("IM", 2),
		IID1:     field.New[field.Str]("IID1", 10),
		IDATIM:   field.New[field.Str]("IDATIM", 14),
		TGTID:    field.New[field.Str]("TGTID", 17),
		IID2:     field.New[field.Str]("IID2", 80),
		Security: NewSecurity(),
		ENCRYP:   field.New[field.Str]("ENCRYP", 1),
		ISORCE:   field.New[field.Str]("ISORCE", 42),
		NROWS:    field.New[field.U32]("NROWS", 8),
		NCOLS:    field.New[field.U32]("NCOLS", 8),
		PVTYPE:   field.New[PixelValueType]("PVTYPE", 3),
		IREP:     field.New[ImageRepresentation]("IREP", 8),
		ICAT:     field.New[field.Str]("ICAT", 8),
		ABPP:     field.New[field.U8]("ABPP", 2),
		PJUST:    field.New[PixelJustification]("PJUST", 1),
		ICORDS:   field.New[CoordinateRepresentation]("ICORDS", 1),
		IGEOLO:   field.New[field.Str]("IGEOLO", 60),
		NICOM:    field.New[field.U8]("NICOM", 1),
		IC:       field.New[Compression]("IC", 2),
		COMRAT:   field.New[field.Str]("COMRAT", 4),
		NBANDS:   field.New[field.U8]("NBANDS", 1),
		XBANDS:   field.New[field.U32]("XBANDS", 5),
		ISYNC:    field.New[field.U8]("ISYNC", 1),
		IMODE:    field.New[ImageMode]("IMODE", 1),
		NBPR:     field.New[field.U16]("NBPR", 4),
		NBPC:     field.New[field.U16]("NBPC", 4),
		NPPBH:    field.New[field.U16]("NPPBH", 4),
		NPPBV:    field.New[field.U16]("NPPBV", 4),
		NBPP:     field.New[field.U8]("NBPP", 2),
		IDLVL:    field.New[field.U16]("IDLVL", 3),
		IALVL:    field.New[field.U16]("IALVL", 3),
		ILOC:     field.New[field.Str]("ILOC", 10),
		IMAG:     field.New[field.Str]("IMAG", 4),
		UDIDL:    field.New[field.U32]("UDIDL", 5),
		UDOFL:    field.New[field.U16]("UDOFL", 3),
		UDID:     NewExtendedSubheader("UDID"),
		IXSHDL:   field.New[field.U32]("IXSHDL", 5),
		IXSOFL:   field.New[field.U16]("IXSOFL", 3),
		IXSHD:    NewExtendedSubheader("IXSHD"),
	}
}

// Read decodes the subheader from the reader's current position.
func (h *ImageHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.IM, &h.IID1, &h.IDATIM, &h.TGTID, &h.IID2); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if err := readSeq(r, &h.ENCRYP, &h.ISORCE, &h.NROWS, &h.NCOLS, &h.PVTYPE,
		&h.IREP, &h.ICAT, &h.ABPP, &h.PJUST, &h.ICORDS, &h.IGEOLO); err != nil {
		return err
	}

	if err := h.NICOM.Read(r); err != nil {
		return err
	}
	h.ICOMS = make([]field.Field[field.Str], h.NICOM.Val)
	for i := range h.ICOMS {
		h.ICOMS[i] = field.New[field.Str]("ICOM", 80)
		if err := h.ICOMS[i].Read(r); err != nil {
			return err
		}
	}

	if err := h.IC.Read(r); err != nil {
		return err
	}
	if h.IC.Val.HasRate() {
		if err := h.COMRAT.Read(r); err != nil {
			return err
		}
	}

	if err := h.NBANDS.Read(r); err != nil {
		return err
	}
	bandCount := int(h.NBANDS.Val)
	if bandCount == 0 {
		if err := h.XBANDS.Read(r); err != nil {
			return err
		}
		bandCount = int(h.XBANDS.Val)
	}
	h.Bands = make([]Band, bandCount)
	for i := range h.Bands {
		h.Bands[i] = NewBand()
		if err := h.Bands[i].Read(r); err != nil {
			return err
		}
	}

	if err := readSeq(r, &h.ISYNC, &h.IMODE, &h.NBPR, &h.NBPC, &h.NPPBH,
		&h.NPPBV, &h.NBPP, &h.IDLVL, &h.IALVL, &h.ILOC, &h.IMAG); err != nil {
		return err
	}

	if err := readGuardedTail(r, &h.UDIDL, &h.UDOFL, &h.UDID); err != nil {
		return err
	}

	return readGuardedTail(r, &h.IXSHDL, &h.IXSOFL, &h.IXSHD)
}

// syncBandCounts refreshes NBANDS/XBANDS from the band slice: NBANDS holds
// the count when it fits a single digit, otherwise NBANDS is zero and the
// count moves to XBANDS.
func (h *ImageHeader) syncBandCounts() {
	count := len(h.Bands)
	if count > 9 {
		h.NBANDS.Val = 0
		h.XBANDS.Val = field.U32(count)
	} else {
		h.NBANDS.Val = field.U8(count)
	}
}

// Write encodes the subheader, refreshing NICOM and the band counts from
// their backing slices first.
func (h *ImageHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.IM, &h.IID1, &h.IDATIM, &h.TGTID, &h.IID2)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeSeq(w, &h.ENCRYP, &h.ISORCE, &h.NROWS, &h.NCOLS, &h.PVTYPE,
		&h.IREP, &h.ICAT, &h.ABPP, &h.PJUST, &h.ICORDS, &h.IGEOLO)
	written += n
	if err != nil {
		return written, err
	}

	h.NICOM.Val = field.U8(len(h.ICOMS))
	n, err = h.NICOM.Write(w)
	written += n
	if err != nil {
		return written, err
	}
	for i := range h.ICOMS {
		n, err = h.ICOMS[i].Write(w)
		written += n
		if err != nil {
			return written, err
		}
	}

	n, err = h.IC.Write(w)
	written += n
	if err != nil {
		return written, err
	}
	if h.IC.Val.HasRate() {
		n, err = h.COMRAT.Write(w)
		written += n
		if err != nil {
			return written, err
		}
	}

	h.syncBandCounts()
	n, err = h.NBANDS.Write(w)
	written += n
	if err != nil {
		return written, err
	}
	if h.NBANDS.Val == 0 {
		n, err = h.XBANDS.Write(w)
		written += n
		if err != nil {
			return written, err
		}
	}
	for i := range h.Bands {
		n, err = h.Bands[i].Write(w)
		written += n
		if err != nil {
			return written, err
		}
	}

	n, err = writeSeq(w, &h.ISYNC, &h.IMODE, &h.NBPR, &h.NBPC, &h.NPPBH,
		&h.NPPBV, &h.NBPP, &h.IDLVL, &h.IALVL, &h.ILOC, &h.IMAG)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeGuardedTail(w, &h.UDIDL, &h.UDOFL, &h.UDID)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeGuardedTail(w, &h.IXSHDL, &h.IXSOFL, &h.IXSHD)
	written += n

	return written, err
}

// Length returns the encoded size of the subheader as it would be written.
func (h *ImageHeader) Length() int {
	length := h.IM.Length() + h.IID1.Length() + h.IDATIM.Length() +
		h.TGTID.Length() + h.IID2.Length()
	length += h.Security.Length()
	length += h.ENCRYP.Length() + h.ISORCE.Length() + h.NROWS.Length() +
		h.NCOLS.Length() + h.PVTYPE.Length() + h.IREP.Length() +
		h.ICAT.Length() + h.ABPP.Length() + h.PJUST.Length() +
		h.ICORDS.Length() + h.IGEOLO.Length()
	length += h.NICOM.Length() + len(h.ICOMS)*80
	length += h.IC.Length()
	if h.IC.Val.HasRate() {
		length += h.COMRAT.Length()
	}
	length += h.NBANDS.Length()
	if len(h.Bands) > 9 || len(h.Bands) == 0 {
		length += h.XBANDS.Length()
	}
	for i := range h.Bands {
		length += h.Bands[i].Length()
	}
	length += h.ISYNC.Length() + h.IMODE.Length() + h.NBPR.Length() +
		h.NBPC.Length() + h.NPPBH.Length() + h.NPPBV.Length() +
		h.NBPP.Length() + h.IDLVL.Length() + h.IALVL.Length() +
		h.ILOC.Length() + h.IMAG.Length()
	length += guardedTailLength(&h.UDIDL, &h.UDOFL, &h.UDID)
	length += guardedTailLength(&h.IXSHDL, &h.IXSOFL, &h.IXSHD)

	return length
}

// Equal compares every field, comment, and band.
func (h *ImageHeader) Equal(o *ImageHeader) bool {
	if h.IM != o.IM || h.IID1 != o.IID1 || h.IDATIM != o.IDATIM ||
		h.TGTID != o.TGTID || h.IID2 != o.IID2 || h.Security != o.Security ||
		h.ENCRYP != o.ENCRYP || h.ISORCE != o.ISORCE ||
		h.NROWS != o.NROWS || h.NCOLS != o.NCOLS || h.PVTYPE != o.PVTYPE ||
		h.IREP != o.IREP || h.ICAT != o.ICAT || h.ABPP != o.ABPP ||
		h.PJUST != o.PJUST || h.ICORDS != o.ICORDS || h.IGEOLO != o.IGEOLO {
		return false
	}
	if h.NICOM != o.NICOM || len(h.ICOMS) != len(o.ICOMS) {
		return false
	}
	for i := range h.ICOMS {
		if h.ICOMS[i] != o.ICOMS[i] {
			return false
		}
	}
	if h.IC != o.IC {
		return false
	}
	if h.IC.Val.HasRate() && h.COMRAT != o.COMRAT {
		return false
	}
	if h.NBANDS != o.NBANDS || len(h.Bands) != len(o.Bands) {
		return false
	}
	for i := range h.Bands {
		if !h.Bands[i].Equal(&o.Bands[i]) {
			return false
		}
	}
	if h.ISYNC != o.ISYNC || h.IMODE != o.IMODE || h.NBPR != o.NBPR ||
		h.NBPC != o.NBPC || h.NPPBH != o.NPPBH || h.NPPBV != o.NPPBV ||
		h.NBPP != o.NBPP || h.IDLVL != o.IDLVL || h.IALVL != o.IALVL ||
		h.ILOC != o.ILOC || h.IMAG != o.IMAG {
		return false
	}
	if h.UDIDL != o.UDIDL || h.IXSHDL != o.IXSHDL {
		return false
	}
	if h.UDID.Size() != 0 && h.UDOFL != o.UDOFL {
		return false
	}
	if h.IXSHD.Size() != 0 && h.IXSOFL != o.IXSOFL {
		return false
	}

	return h.UDID.Equal(&o.UDID) && h.IXSHD.Equal(&o.IXSHD)
}

func (h *ImageHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, ", h.IM, h.IID1, h.IDATIM, h.TGTID, h.IID2)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, ",
		h.ENCRYP, h.ISORCE, h.NROWS, h.NCOLS, h.PVTYPE, h.IREP, h.ICAT,
		h.ABPP, h.PJUST, h.ICORDS, h.IGEOLO)
	fmt.Fprintf(&b, "%v, ", h.NICOM)
	for i := range h.ICOMS {
		fmt.Fprintf(&b, "ICOM %d: %s, ", i, h.ICOMS[i].Val)
	}
	fmt.Fprintf(&b, "%v, ", h.IC)
	if h.IC.Val.HasRate() {
		fmt.Fprintf(&b, "%v, ", h.COMRAT)
	}
	fmt.Fprintf(&b, "%v, ", h.NBANDS)
	for i := range h.Bands {
		fmt.Fprintf(&b, "BAND %d: [%v], ", i, &h.Bands[i])
	}
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, ",
		h.ISYNC, h.IMODE, h.NBPR, h.NBPC, h.NPPBH, h.NPPBV, h.NBPP,
		h.IDLVL, h.IALVL, h.ILOC, h.IMAG)
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v", h.UDIDL, h.UDOFL, &h.UDID, h.IXSHDL, h.IXSOFL, &h.IXSHD)

	return fmt.Sprintf("Image Header: [%s]", b.String())
}
