// Package header defines the subheader records of the NITF 2.1 file grammar:
// the file header, the five segment subheader variants, the security block
// shared by all of them, and the enumerated field values each record carries.
//
// Every record is a straight-line driver over a declared sequence of
// fixed-width fields (see the field package), interleaved with the three
// kinds of conditional tail the format allows: count-prefixed arrays,
// length-guarded optional regions, and identifier-keyed regions.
package header

import (
	"io"
)

// fieldReader is satisfied by fields, the security block, and sub-records.
type fieldReader interface {
	Read(io.Reader) error
}

// fieldWriter mirrors fieldReader for the encode direction.
type fieldWriter interface {
	Write(io.Writer) (int, error)
}

// readSeq drives a run of fields in declared order, stopping at the first
// failure.
func readSeq(r io.Reader, fields ...fieldReader) error {
	for _, f := range fields {
		if err := f.Read(r); err != nil {
			return err
		}
	}

	return nil
}

// writeSeq writes a run of fields in declared order, returning the total
// byte count.
func writeSeq(w io.Writer, fields ...fieldWriter) (int, error) {
	var written int
	for _, f := range fields {
		n, err := f.Write(w)
		if err != nil {
			return written, err
		}
		written += n
	}

	return written, nil
}

// SegmentKind identifies one of the five segment sequences a NITF file
// carries, in canonical file order.
type SegmentKind int

const (
	// Image segments appear first after the file header.
	Image SegmentKind = iota
	// Graphic segments follow the image segments.
	Graphic
	// Text segments follow the graphic segments.
	Text
	// DataExtension segments follow the text segments.
	DataExtension
	// ReservedExtension segments appear last.
	ReservedExtension
)

// tableWidths returns the field widths of a (subheader-size, item-size)
// entry in the file header's table for this kind. The widths are part of
// the format grammar.
func (k SegmentKind) tableWidths() (subheader, item int) {
	switch k {
	case Image:
		return 6, 10
	case Graphic:
		return 4, 6
	case Text:
		return 4, 5
	case DataExtension:
		return 4, 9
	default:
		return 4, 7
	}
}

func (k SegmentKind) String() string {
	switch k {
	case Image:
		return "image"
	case Graphic:
		return "graphic"
	case Text:
		return "text"
	case DataExtension:
		return "data extension"
	default:
		return "reserved extension"
	}
}
