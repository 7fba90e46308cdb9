package header

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tacscale/nitf/field"
)

// FileProfile is the file profile marker. NITF 2.1 admits the single
// spelling "NITF".
type FileProfile uint8

// NITF is the only legal file profile.
const NITF FileProfile = iota

func (FileProfile) Decode(s string) (FileProfile, error) {
	if s != "NITF" {
		return NITF, errors.New("unknown file profile")
	}

	return NITF, nil
}

func (FileProfile) Encode() string { return "NITF" }

func (FileProfile) Justify() field.Justify { return field.Left }

// FileVersion is the file version marker. This library reads and writes
// version 02.10 exclusively.
type FileVersion uint8

// V0210 is the only supported file version.
const V0210 FileVersion = iota

func (FileVersion) Decode(s string) (FileVersion, error) {
	if s != "02.10" {
		return V0210, errors.New("unknown file version")
	}

	return V0210, nil
}

func (FileVersion) Encode() string { return "02.10" }

func (FileVersion) Justify() field.Justify { return field.Left }

// SizeEntry is one element of a file-header segment table: the encoded
// size of a segment's subheader paired with the size of its data item.
// Field widths differ by segment kind.
type SizeEntry struct {
	// SubheaderSize is the encoded byte length of the segment's subheader.
	SubheaderSize field.Field[field.U32]
	// ItemSize is the byte length of the segment's data region.
	ItemSize field.Field[field.U64]
}

// NewSizeEntry creates a zeroed entry with the widths mandated for kind.
func NewSizeEntry(kind SegmentKind) SizeEntry {
	sh, item := kind.tableWidths()
	return SizeEntry{
		SubheaderSize: field.New[field.U32]("SUBHEADER_SIZE", sh),
		ItemSize:      field.New[field.U64]("ITEM_SIZE", item),
	}
}

// Read decodes the two size fields.
func (e *SizeEntry) Read(r io.Reader) error {
	return readSeq(r, &e.SubheaderSize, &e.ItemSize)
}

// Write encodes the two size fields.
func (e *SizeEntry) Write(w io.Writer) (int, error) {
	return writeSeq(w, &e.SubheaderSize, &e.ItemSize)
}

// Length returns the encoded size of the entry.
func (e *SizeEntry) Length() int {
	return e.SubheaderSize.Length() + e.ItemSize.Length()
}

func (e *SizeEntry) String() string {
	return fmt.Sprintf("[%d, %d]", e.SubheaderSize.Val, e.ItemSize.Val)
}

// FileHeader is the top-level NITF file header: a fixed prefix, the
// security block, and five count-prefixed tables of size entries, one per
// segment kind, followed by the optional user-defined and extended header
// regions.
type FileHeader struct {
	// FHDR is the file profile name.
	FHDR field.Field[FileProfile]
	// FVER is the file version.
	FVER field.Field[FileVersion]
	// CLEVEL is the complexity level.
	CLEVEL field.Field[field.U8]
	// STYPE is the standard type.
	STYPE field.Field[field.Str]
	// OSTAID is the originating station id.
	OSTAID field.Field[field.Str]
	// FDT is the file date and time.
	FDT field.Field[field.Str]
	// FTITLE is the file title.
	FTITLE field.Field[field.Str]
	// Security is the file security block.
	Security Security
	// FSCOP is the file copy number.
	FSCOP field.Field[field.U32]
	// FSCPYS is the file number of copies.
	FSCPYS field.Field[field.U32]
	// ENCRYP is the encryption flag.
	ENCRYP field.Field[field.Str]
	// FBKGC holds the three 1-byte background colour components (R, G, B),
	// kept as separate fields so each component renders individually.
	FBKGC [3]field.Field[field.Str]
	// ONAME is the originator's name.
	ONAME field.Field[field.Str]
	// OPHONE is the originator's phone number.
	OPHONE field.Field[field.Str]
	// FL is the file length; refreshed by WriteHeader.
	FL field.Field[field.U64]
	// HL is the encoded length of this header; refreshed by WriteHeader.
	HL field.Field[field.U32]

	// NUMI counts the image segments.
	NUMI field.Field[field.U16]
	// ImageInfo is the image segment size table.
	ImageInfo []SizeEntry
	// NUMS counts the graphic segments.
	NUMS field.Field[field.U16]
	// GraphicInfo is the graphic segment size table.
	GraphicInfo []SizeEntry
	// NUMX is reserved for future use and always zero.
	NUMX field.Field[field.U16]
	// NUMT counts the text segments.
	NUMT field.Field[field.U16]
	// TextInfo is the text segment size table.
	TextInfo []SizeEntry
	// NUMDES counts the data extension segments.
	NUMDES field.Field[field.U16]
	// DataExtensionInfo is the data extension segment size table.
	DataExtensionInfo []SizeEntry
	// NUMRES counts the reserved extension segments.
	NUMRES field.Field[field.U16]
	// ReservedExtensionInfo is the reserved extension segment size table.
	ReservedExtensionInfo []SizeEntry

	// UDHDL guards the user-defined header region.
	UDHDL field.Field[field.U32]
	// UDHOFL is the user-defined header overflow index.
	UDHOFL field.Field[field.U16]
	// UDHD holds the user-defined header data.
	UDHD ExtendedSubheader
	// XHDL guards the extended header region.
	XHDL field.Field[field.U32]
	// XHDLOFL is the extended header overflow index.
	XHDLOFL field.Field[field.U16]
	// XHD holds the extended header data.
	XHD ExtendedSubheader
}

// NewFileHeader creates a file header with default field values and no
// segment table entries.
func NewFileHeader() *FileHeader {
	return &FileHeader{
		FHDR:    field.New[FileProfile]("FHDR", 4),
		FVER:    field.New[FileVersion]("FVER", 5),
		CLEVEL:  field.New[field.U8]("CLEVEL", 2),
		STYPE:   field.New[field.Str]("STYPE", 4),
		OSTAID:  field.New[field.Str]("OSTAID", 10),
		FDT:     field.New[field.Str]("FDT", 14),
		FTITLE:  field.New[field.Str]("FTITLE", 80),
		Security: NewSecurity(),
		FSCOP:   field.New[field.U32]("FSCOP", 5),
		FSCPYS:  field.New[field.U32]("FSCPYS", 5),
		ENCRYP:  field.New[field.Str]("ENCRYP", 1),
		FBKGC: [3]field.Field[field.Str]{
			field.New[field.Str]("FBKGC", 1),
			field.New[field.Str]("FBKGC", 1),
			field.New[field.Str]("FBKGC", 1),
		},
		ONAME:   field.New[field.Str]("ONAME", 24),
		OPHONE:  field.New[field.Str]("OPHONE", 18),
		FL:      field.New[field.U64]("FL", 12),
		HL:      field.New[field.U32]("HL", 6),
		NUMI:    field.New[field.U16]("NUMI", 3),
		NUMS:    field.New[field.U16]("NUMS", 3),
		NUMX:    field.New[field.U16]("NUMX", 3),
		NUMT:    field.New[field.U16]("NUMT", 3),
		NUMDES:  field.New[field.U16]("NUMDES", 3),
		NUMRES:  field.New[field.U16]("NUMRES", 3),
		UDHDL:   field.New[field.U32]("UDHDL", 5),
		UDHOFL:  field.New[field.U16]("UDHOFL", 3),
		UDHD:    NewExtendedSubheader("UDHD"),
		XHDL:    field.New[field.U32]("XHDL", 5),
		XHDLOFL: field.New[field.U16]("XHDLOFL", 3),
		XHD:     NewExtendedSubheader("XHD"),
	}
}

// readTable reads a count field followed by that many size entries.
func readTable(r io.Reader, count *field.Field[field.U16], kind SegmentKind) ([]SizeEntry, error) {
	if err := count.Read(r); err != nil {
		return nil, err
	}

	entries := make([]SizeEntry, count.Val)
	for i := range entries {
		entries[i] = NewSizeEntry(kind)
		if err := entries[i].Read(r); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// writeTable refreshes the count from the table and writes both.
func writeTable(w io.Writer, count *field.Field[field.U16], entries []SizeEntry) (int, error) {
	count.Val = field.U16(len(entries))

	written, err := count.Write(w)
	if err != nil {
		return written, err
	}
	for i := range entries {
		n, err := entries[i].Write(w)
		written += n
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

func tableLength(count *field.Field[field.U16], entries []SizeEntry) int {
	length := count.Length()
	for i := range entries {
		length += entries[i].Length()
	}

	return length
}

// Read decodes the header from the reader's current position.
func (h *FileHeader) Read(r io.Reader) error {
	if err := readSeq(r, &h.FHDR, &h.FVER, &h.CLEVEL, &h.STYPE, &h.OSTAID, &h.FDT, &h.FTITLE); err != nil {
		return err
	}
	if err := h.Security.Read(r); err != nil {
		return err
	}
	if err := readSeq(r, &h.FSCOP, &h.FSCPYS, &h.ENCRYP, &h.FBKGC[0], &h.FBKGC[1], &h.FBKGC[2], &h.ONAME, &h.OPHONE, &h.FL, &h.HL); err != nil {
		return err
	}

	var err error
	if h.ImageInfo, err = readTable(r, &h.NUMI, Image); err != nil {
		return err
	}
	if h.GraphicInfo, err = readTable(r, &h.NUMS, Graphic); err != nil {
		return err
	}
	if err = h.NUMX.Read(r); err != nil {
		return err
	}
	if h.TextInfo, err = readTable(r, &h.NUMT, Text); err != nil {
		return err
	}
	if h.DataExtensionInfo, err = readTable(r, &h.NUMDES, DataExtension); err != nil {
		return err
	}
	if h.ReservedExtensionInfo, err = readTable(r, &h.NUMRES, ReservedExtension); err != nil {
		return err
	}

	if err = readGuardedTail(r, &h.UDHDL, &h.UDHOFL, &h.UDHD); err != nil {
		return err
	}

	return readGuardedTail(r, &h.XHDL, &h.XHDLOFL, &h.XHD)
}

// Write encodes the header, refreshing every table count from its backing
// slice and every guarded tail length from its payload first.
func (h *FileHeader) Write(w io.Writer) (int, error) {
	written, err := writeSeq(w, &h.FHDR, &h.FVER, &h.CLEVEL, &h.STYPE, &h.OSTAID, &h.FDT, &h.FTITLE)
	if err != nil {
		return written, err
	}

	n, err := h.Security.Write(w)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeSeq(w, &h.FSCOP, &h.FSCPYS, &h.ENCRYP, &h.FBKGC[0], &h.FBKGC[1], &h.FBKGC[2], &h.ONAME, &h.OPHONE, &h.FL, &h.HL)
	written += n
	if err != nil {
		return written, err
	}

	for _, table := range []struct {
		count   *field.Field[field.U16]
		entries []SizeEntry
	}{
		{&h.NUMI, h.ImageInfo},
		{&h.NUMS, h.GraphicInfo},
		{&h.NUMX, nil},
		{&h.NUMT, h.TextInfo},
		{&h.NUMDES, h.DataExtensionInfo},
		{&h.NUMRES, h.ReservedExtensionInfo},
	} {
		n, err = writeTable(w, table.count, table.entries)
		written += n
		if err != nil {
			return written, err
		}
	}

	n, err = writeGuardedTail(w, &h.UDHDL, &h.UDHOFL, &h.UDHD)
	written += n
	if err != nil {
		return written, err
	}

	n, err = writeGuardedTail(w, &h.XHDL, &h.XHDLOFL, &h.XHD)
	written += n

	return written, err
}

// WriteHeader refreshes HL from the header's current encoded length and FL
// from the supplied total file length, then writes the header.
func (h *FileHeader) WriteHeader(w io.Writer, fileLength uint64) (int, error) {
	h.HL.Val = field.U32(h.Length())
	h.FL.Val = field.U64(fileLength)

	return h.Write(w)
}

// Length returns the encoded size of the header as it would be written.
func (h *FileHeader) Length() int {
	length := h.FHDR.Length() + h.FVER.Length() + h.CLEVEL.Length() +
		h.STYPE.Length() + h.OSTAID.Length() + h.FDT.Length() + h.FTITLE.Length()
	length += h.Security.Length()
	length += h.FSCOP.Length() + h.FSCPYS.Length() + h.ENCRYP.Length()
	for i := range h.FBKGC {
		length += h.FBKGC[i].Length()
	}
	length += h.ONAME.Length() + h.OPHONE.Length() + h.FL.Length() + h.HL.Length()
	length += tableLength(&h.NUMI, h.ImageInfo)
	length += tableLength(&h.NUMS, h.GraphicInfo)
	length += h.NUMX.Length()
	length += tableLength(&h.NUMT, h.TextInfo)
	length += tableLength(&h.NUMDES, h.DataExtensionInfo)
	length += tableLength(&h.NUMRES, h.ReservedExtensionInfo)
	length += guardedTailLength(&h.UDHDL, &h.UDHOFL, &h.UDHD)
	length += guardedTailLength(&h.XHDL, &h.XHDLOFL, &h.XHD)

	return length
}

// AddSubheader appends a size entry to the table for kind and bumps its
// count field. No other header state is touched.
func (h *FileHeader) AddSubheader(kind SegmentKind, subheaderSize uint32, itemSize uint64) {
	entry := NewSizeEntry(kind)
	entry.SubheaderSize.Val = field.U32(subheaderSize)
	entry.ItemSize.Val = field.U64(itemSize)

	switch kind {
	case Image:
		h.NUMI.Val++
		h.ImageInfo = append(h.ImageInfo, entry)
	case Graphic:
		h.NUMS.Val++
		h.GraphicInfo = append(h.GraphicInfo, entry)
	case Text:
		h.NUMT.Val++
		h.TextInfo = append(h.TextInfo, entry)
	case DataExtension:
		h.NUMDES.Val++
		h.DataExtensionInfo = append(h.DataExtensionInfo, entry)
	case ReservedExtension:
		h.NUMRES.Val++
		h.ReservedExtensionInfo = append(h.ReservedExtensionInfo, entry)
	}
}

// Equal compares every field and table entry. Segment tables must match in
// both length and content.
func (h *FileHeader) Equal(o *FileHeader) bool {
	if h.FHDR != o.FHDR || h.FVER != o.FVER || h.CLEVEL != o.CLEVEL ||
		h.STYPE != o.STYPE || h.OSTAID != o.OSTAID || h.FDT != o.FDT ||
		h.FTITLE != o.FTITLE || h.Security != o.Security ||
		h.FSCOP != o.FSCOP || h.FSCPYS != o.FSCPYS || h.ENCRYP != o.ENCRYP ||
		h.FBKGC != o.FBKGC || h.ONAME != o.ONAME || h.OPHONE != o.OPHONE ||
		h.FL != o.FL || h.HL != o.HL {
		return false
	}
	if h.NUMI != o.NUMI || h.NUMS != o.NUMS || h.NUMX != o.NUMX ||
		h.NUMT != o.NUMT || h.NUMDES != o.NUMDES || h.NUMRES != o.NUMRES {
		return false
	}
	for _, pair := range [][2][]SizeEntry{
		{h.ImageInfo, o.ImageInfo},
		{h.GraphicInfo, o.GraphicInfo},
		{h.TextInfo, o.TextInfo},
		{h.DataExtensionInfo, o.DataExtensionInfo},
		{h.ReservedExtensionInfo, o.ReservedExtensionInfo},
	} {
		if len(pair[0]) != len(pair[1]) {
			return false
		}
		for i := range pair[0] {
			if pair[0][i] != pair[1][i] {
				return false
			}
		}
	}
	if h.UDHDL != o.UDHDL || h.XHDL != o.XHDL {
		return false
	}
	if h.UDHD.Size() != 0 && h.UDHOFL != o.UDHOFL {
		return false
	}
	if h.XHD.Size() != 0 && h.XHDLOFL != o.XHDLOFL {
		return false
	}

	return h.UDHD.Equal(&o.UDHD) && h.XHD.Equal(&o.XHD)
}

func (h *FileHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v, %v, ", h.FHDR, h.FVER, h.CLEVEL, h.STYPE, h.OSTAID, h.FDT, h.FTITLE)
	fmt.Fprintf(&b, "SECURITY: [%v], ", &h.Security)
	fmt.Fprintf(&b, "%v, %v, %v, ", h.FSCOP, h.FSCPYS, h.ENCRYP)
	fmt.Fprintf(&b, "FBKGC: [R: %s, G: %s, B: %s], ", h.FBKGC[0].Val, h.FBKGC[1].Val, h.FBKGC[2].Val)
	fmt.Fprintf(&b, "%v, %v, %v, %v, ", h.ONAME, h.OPHONE, h.FL, h.HL)
	fmt.Fprintf(&b, "%v, ", h.NUMI)
	for i := range h.ImageInfo {
		fmt.Fprintf(&b, "IMAGE_INFO %d: %v, ", i, &h.ImageInfo[i])
	}
	fmt.Fprintf(&b, "%v, ", h.NUMS)
	for i := range h.GraphicInfo {
		fmt.Fprintf(&b, "GRAPHIC_INFO %d: %v, ", i, &h.GraphicInfo[i])
	}
	fmt.Fprintf(&b, "%v, %v, ", h.NUMX, h.NUMT)
	for i := range h.TextInfo {
		fmt.Fprintf(&b, "TEXT_INFO %d: %v, ", i, &h.TextInfo[i])
	}
	fmt.Fprintf(&b, "%v, ", h.NUMDES)
	for i := range h.DataExtensionInfo {
		fmt.Fprintf(&b, "DATA_EXTENSION_INFO %d: %v, ", i, &h.DataExtensionInfo[i])
	}
	fmt.Fprintf(&b, "%v, ", h.NUMRES)
	for i := range h.ReservedExtensionInfo {
		fmt.Fprintf(&b, "RESERVED_EXTENSION_INFO %d: %v, ", i, &h.ReservedExtensionInfo[i])
	}
	fmt.Fprintf(&b, "%v, %v, %v, %v, %v, %v", h.UDHDL, h.UDHOFL, &h.UDHD, h.XHDL, h.XHDLOFL, &h.XHD)

	return fmt.Sprintf("File Header: [%s]", b.String())
}
