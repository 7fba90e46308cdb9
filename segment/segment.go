// Package segment pairs a subheader record with a byte-range view of its
// data payload and the offset bookkeeping that places both within the file.
//
// A segment's data region is never copied eagerly: on read it is exposed as
// a length-bounded window into the backing file (memory-mapped when the
// file was opened by path), and on write the payload is the caller's
// responsibility, written into the pre-allocated range after the headers.
package segment

import (
	"fmt"
	"io"

	"github.com/tacscale/nitf/errs"
)

// Record is the interface every subheader variant implements. The type
// parameter lets Equal take the concrete header type, so segment equality
// stays pointwise without reflection.
type Record[H any] interface {
	Read(io.Reader) error
	Write(io.Writer) (int, error)
	Length() int
	Equal(H) bool
	fmt.Stringer
}

// Segment owns a subheader and locates its data region within the file.
// All offsets and sizes are in bytes from the start of the file.
type Segment[H Record[H]] struct {
	// Header is the segment's subheader.
	Header H
	// HeaderOffset is where the subheader starts.
	HeaderOffset uint64
	// HeaderSize is the encoded length of the subheader.
	HeaderSize uint64
	// DataOffset is where the data region starts; always
	// HeaderOffset + HeaderSize.
	DataOffset uint64
	// DataSize is the byte length of the data region. It must match the
	// item-size entry recorded for this segment in the file header.
	DataSize uint64

	window *io.SectionReader
}

// New creates a segment around a default subheader with an empty data
// region.
func New[H Record[H]](hdr H) *Segment[H] {
	return &Segment[H]{Header: hdr}
}

// Read constructs a segment from the reader's current position.
//
// The subheader is read to completion, the four offsets are fixed from the
// stream positions, a window over [DataOffset, DataOffset+dataSize) is
// created through m when a mapper is available, and the reader is left at
// the end of the data region so the next segment can be read.
func Read[H Record[H]](r io.ReadSeeker, hdr H, dataSize uint64, m Mapper) (*Segment[H], error) {
	headerOffset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errs.IO(err)
	}

	if err := hdr.Read(r); err != nil {
		return nil, err
	}

	dataOffset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errs.IO(err)
	}

	seg := &Segment[H]{
		Header:       hdr,
		HeaderOffset: uint64(headerOffset),
		HeaderSize:   uint64(dataOffset - headerOffset),
		DataOffset:   uint64(dataOffset),
		DataSize:     dataSize,
	}

	if m != nil {
		seg.window, err = m.Window(dataOffset, int64(dataSize))
		if err != nil {
			return nil, err
		}
	}

	if _, err := r.Seek(dataOffset+int64(dataSize), io.SeekStart); err != nil {
		return nil, errs.IO(err)
	}

	return seg, nil
}

// Data returns the segment's data window, or nil when the segment was
// constructed without one (default-constructed, or read without a mapper).
// The window stays valid only while the backing file remains open and
// unchanged.
func (s *Segment[H]) Data() *io.SectionReader {
	return s.window
}

// ReadData seeks r to the data region and reads it in full.
func (s *Segment[H]) ReadData(r io.ReadSeeker) ([]byte, error) {
	if _, err := r.Seek(int64(s.DataOffset), io.SeekStart); err != nil {
		return nil, errs.IO(err)
	}

	data := make([]byte, s.DataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errs.IO(err)
	}

	return data, nil
}

// DataBytes reads the whole data window into memory. It fails when the
// segment holds no window.
func (s *Segment[H]) DataBytes() ([]byte, error) {
	if s.window == nil {
		return nil, errs.Fatal("segment holds no data window")
	}

	data := make([]byte, s.window.Size())
	if _, err := s.window.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, errs.IO(err)
	}

	return data, nil
}

// WriteHeader seeks w to the segment's header offset and writes the
// subheader. Data payloads are written separately through WriteData.
func (s *Segment[H]) WriteHeader(w io.WriteSeeker) (int, error) {
	if _, err := w.Seek(int64(s.HeaderOffset), io.SeekStart); err != nil {
		return 0, errs.IO(err)
	}

	return s.Header.Write(w)
}

// WriteData validates that data fills the region exactly, seeks w to the
// data offset, and writes it.
func (s *Segment[H]) WriteData(w io.WriteSeeker, data []byte) (int, error) {
	if uint64(len(data)) != s.DataSize {
		return 0, errs.Value("data size")
	}
	if _, err := w.Seek(int64(s.DataOffset), io.SeekStart); err != nil {
		return 0, errs.IO(err)
	}

	n, err := w.Write(data)
	if err != nil {
		return n, errs.IO(err)
	}

	return n, nil
}

// Length is the segment's total footprint: the subheader's current encoded
// length plus the data region.
func (s *Segment[H]) Length() uint64 {
	return uint64(s.Header.Length()) + s.DataSize
}

// Equal compares the subheaders pointwise plus the four offset and size
// fields. The data window is excluded: two identical files may reference
// different mappings.
func (s *Segment[H]) Equal(o *Segment[H]) bool {
	return s.Header.Equal(o.Header) &&
		s.HeaderOffset == o.HeaderOffset &&
		s.HeaderSize == o.HeaderSize &&
		s.DataOffset == o.DataOffset &&
		s.DataSize == o.DataSize
}

func (s *Segment[H]) String() string {
	return s.Header.String()
}
