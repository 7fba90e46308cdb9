// Package nitf reads, manipulates, and writes National Imagery Transmission
// Format version 2.1 files.
//
// A NITF file is a strict concatenation of a file header and five ordered
// segment sequences (image, graphic, text, data extension, reserved
// extension), each segment a fixed-layout ASCII subheader followed by an
// opaque data region. Reading a file parses every subheader and exposes
// each data region as a window into the backing file without copying it;
// writing recomputes every offset and the file length before serialization,
// then leaves the data regions for the caller to fill. The file header's
// size-table entries are the ones recorded when each segment was added;
// writing does not recompute them.
//
// # Reading
//
//	n, err := nitf.ReadNitf("example.nitf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer n.Close()
//
//	fmt.Println(n.Header.FTITLE.Val)
//	data, _ := n.ImageSegments[0].DataBytes()
//
// # Writing
//
//	n := nitf.New()
//	seg := nitf.NewImageSegment()
//	seg.DataSize = uint64(len(pixels))
//	n.AddImage(seg)
//
//	f, _ := os.Create("out.nitf")
//	n.WriteHeaders(f)
//	seg.WriteData(f, pixels)
//
// The segment data windows returned after a read stay valid only while the
// Nitf's backing file remains open and unchanged; Close releases it.
// A single Nitf must not be used from multiple goroutines concurrently.
package nitf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tacscale/nitf/errs"
	"github.com/tacscale/nitf/header"
	"github.com/tacscale/nitf/internal/options"
	"github.com/tacscale/nitf/segment"
)

var logger = zap.NewNop()

// SetLogger installs a logger for the package's debug output. The library
// logs header reads, writes, and offset updates at debug level and never
// logs above it. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

// Segment type instantiations, one per segment kind.
type (
	// ImageSegment pairs an image subheader with its data region.
	ImageSegment = segment.Segment[*header.ImageHeader]
	// GraphicSegment pairs a graphic subheader with its data region.
	GraphicSegment = segment.Segment[*header.GraphicHeader]
	// TextSegment pairs a text subheader with its data region.
	TextSegment = segment.Segment[*header.TextHeader]
	// DataExtensionSegment pairs a data extension subheader with its data
	// region.
	DataExtensionSegment = segment.Segment[*header.DataExtensionHeader]
	// ReservedExtensionSegment pairs a reserved extension subheader with
	// its data region.
	ReservedExtensionSegment = segment.Segment[*header.ReservedExtensionHeader]
)

// NewImageSegment creates a default image segment with an empty data
// region.
func NewImageSegment() *ImageSegment {
	return segment.New(header.NewImageHeader())
}

// NewGraphicSegment creates a default graphic segment with an empty data
// region.
func NewGraphicSegment() *GraphicSegment {
	return segment.New(header.NewGraphicHeader())
}

// NewTextSegment creates a default text segment with an empty data region.
func NewTextSegment() *TextSegment {
	return segment.New(header.NewTextHeader())
}

// NewDataExtensionSegment creates a default data extension segment with an
// empty data region.
func NewDataExtensionSegment() *DataExtensionSegment {
	return segment.New(header.NewDataExtensionHeader())
}

// NewReservedExtensionSegment creates a default reserved extension segment
// with an empty data region.
func NewReservedExtensionSegment() *ReservedExtensionSegment {
	return segment.New(header.NewReservedExtensionHeader())
}

// Nitf is the top-level aggregate: one file header and the five segment
// sequences in canonical file order.
type Nitf struct {
	// Header is the file header.
	Header *header.FileHeader
	// ImageSegments holds the image segments in file order.
	ImageSegments []*ImageSegment
	// GraphicSegments holds the graphic segments in file order.
	GraphicSegments []*GraphicSegment
	// TextSegments holds the text segments in file order.
	TextSegments []*TextSegment
	// DataExtensionSegments holds the data extension segments in file order.
	DataExtensionSegments []*DataExtensionSegment
	// ReservedExtensionSegments holds the reserved extension segments in
	// file order.
	ReservedExtensionSegments []*ReservedExtensionSegment

	closers []io.Closer
}

// New creates an empty Nitf with a default file header and no segments.
func New() *Nitf {
	return &Nitf{Header: header.NewFileHeader()}
}

// readConfig is assembled from ReadOptions before parsing starts.
type readConfig struct {
	mapper  segment.Mapper
	windows bool
}

// ReadOption configures ReadNitfFrom.
type ReadOption = options.Option[*readConfig]

// WithMapper selects an explicit window source for segment data regions.
func WithMapper(m segment.Mapper) ReadOption {
	return options.New(func(c *readConfig) error {
		if m == nil {
			return errs.Fatal("mapper must not be nil")
		}
		c.mapper = m

		return nil
	})
}

// WithoutWindows skips data window creation entirely; segments carry
// offsets and sizes only. Use this to scan metadata from streams that
// cannot serve random access reads.
func WithoutWindows() ReadOption {
	return options.NoError(func(c *readConfig) {
		c.windows = false
	})
}

// ReadNitf reads the NITF file at path. Segment data regions are served
// from a read-only memory mapping of the file; call Close on the result to
// release it.
func ReadNitf(path string) (*Nitf, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO(err)
	}

	m, err := segment.OpenMmap(path)
	if err != nil {
		f.Close()
		return nil, err
	}

	n, err := ReadNitfFrom(f, WithMapper(m))
	if err != nil {
		f.Close()
		m.Close()
		return nil, err
	}
	n.closers = append(n.closers, f, m)

	return n, nil
}

// ReadNitfFrom parses a NITF from a seekable stream. The stream is
// exclusively owned for the duration of the call; the library seeks it to
// arbitrary positions and leaves it at the end of the last segment.
//
// Without options, data windows are served lazily from the stream itself
// when it implements io.ReaderAt, and omitted otherwise.
func ReadNitfFrom(r io.ReadSeeker, opts ...ReadOption) (*Nitf, error) {
	cfg := &readConfig{windows: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.windows && cfg.mapper == nil {
		if ra, ok := r.(io.ReaderAt); ok {
			cfg.mapper = segment.NewReaderAtMapper(ra)
		}
	}

	var mapper segment.Mapper
	if cfg.windows {
		mapper = cfg.mapper
	}

	n := New()
	logger.Debug("reading NITF file header")
	if err := n.Header.Read(r); err != nil {
		return nil, err
	}

	for i := range n.Header.ImageInfo {
		seg, err := segment.Read(r, header.NewImageHeader(),
			uint64(n.Header.ImageInfo[i].ItemSize.Val), mapper)
		if err != nil {
			return nil, err
		}
		n.ImageSegments = append(n.ImageSegments, seg)
	}

	for i := range n.Header.GraphicInfo {
		seg, err := segment.Read(r, header.NewGraphicHeader(),
			uint64(n.Header.GraphicInfo[i].ItemSize.Val), mapper)
		if err != nil {
			return nil, err
		}
		n.GraphicSegments = append(n.GraphicSegments, seg)
	}

	for i := range n.Header.TextInfo {
		seg, err := segment.Read(r, header.NewTextHeader(),
			uint64(n.Header.TextInfo[i].ItemSize.Val), mapper)
		if err != nil {
			return nil, err
		}
		n.TextSegments = append(n.TextSegments, seg)
	}

	for i := range n.Header.DataExtensionInfo {
		seg, err := segment.Read(r, header.NewDataExtensionHeader(),
			uint64(n.Header.DataExtensionInfo[i].ItemSize.Val), mapper)
		if err != nil {
			return nil, err
		}
		n.DataExtensionSegments = append(n.DataExtensionSegments, seg)
	}

	for i := range n.Header.ReservedExtensionInfo {
		seg, err := segment.Read(r, header.NewReservedExtensionHeader(),
			uint64(n.Header.ReservedExtensionInfo[i].ItemSize.Val), mapper)
		if err != nil {
			return nil, err
		}
		n.ReservedExtensionSegments = append(n.ReservedExtensionSegments, seg)
	}

	logger.Debug("read NITF",
		zap.Int("imageSegments", len(n.ImageSegments)),
		zap.Int("graphicSegments", len(n.GraphicSegments)),
		zap.Int("textSegments", len(n.TextSegments)),
		zap.Int("dataExtensionSegments", len(n.DataExtensionSegments)),
		zap.Int("reservedExtensionSegments", len(n.ReservedExtensionSegments)))

	return n, nil
}

// Length returns the total byte length of the file as it would be written:
// the file header plus every segment's subheader and data region.
func (n *Nitf) Length() uint64 {
	length := uint64(n.Header.Length())
	for _, seg := range n.ImageSegments {
		length += seg.Length()
	}
	for _, seg := range n.GraphicSegments {
		length += seg.Length()
	}
	for _, seg := range n.TextSegments {
		length += seg.Length()
	}
	for _, seg := range n.DataExtensionSegments {
		length += seg.Length()
	}
	for _, seg := range n.ReservedExtensionSegments {
		length += seg.Length()
	}

	return length
}

// updateOffsets walks the segments in canonical order and fixes every
// header and data offset from the running position, starting after the
// file header. Must run after any structural change; the Add methods call
// it.
func (n *Nitf) updateOffsets() {
	offset := uint64(n.Header.Length())
	place := func(kind string, i int, headerOffset, headerSize, dataOffset *uint64, hdrLen int, dataSize uint64) {
		*headerOffset = offset
		*headerSize = uint64(hdrLen)
		offset += *headerSize
		*dataOffset = offset
		offset += dataSize
		logger.Debug("placed segment", zap.String("kind", kind), zap.Int("index", i),
			zap.Uint64("headerOffset", *headerOffset), zap.Uint64("dataOffset", *dataOffset))
	}

	for i, seg := range n.ImageSegments {
		place("image", i, &seg.HeaderOffset, &seg.HeaderSize, &seg.DataOffset, seg.Header.Length(), seg.DataSize)
	}
	for i, seg := range n.GraphicSegments {
		place("graphic", i, &seg.HeaderOffset, &seg.HeaderSize, &seg.DataOffset, seg.Header.Length(), seg.DataSize)
	}
	for i, seg := range n.TextSegments {
		place("text", i, &seg.HeaderOffset, &seg.HeaderSize, &seg.DataOffset, seg.Header.Length(), seg.DataSize)
	}
	for i, seg := range n.DataExtensionSegments {
		place("data extension", i, &seg.HeaderOffset, &seg.HeaderSize, &seg.DataOffset, seg.Header.Length(), seg.DataSize)
	}
	for i, seg := range n.ReservedExtensionSegments {
		place("reserved extension", i, &seg.HeaderOffset, &seg.HeaderSize, &seg.DataOffset, seg.Header.Length(), seg.DataSize)
	}
}

// AddImage appends seg to the image sequence, records its sizes in the
// file header's image table, and refreshes every offset. The Nitf takes
// ownership: mutating the subheader afterward in ways that change its
// encoded length invalidates the recorded sizes.
func (n *Nitf) AddImage(seg *ImageSegment) {
	n.Header.AddSubheader(header.Image, uint32(seg.Header.Length()), seg.DataSize)
	n.ImageSegments = append(n.ImageSegments, seg)
	n.updateOffsets()
	logger.Debug("added image segment")
}

// AddGraphic appends seg to the graphic sequence; see AddImage.
func (n *Nitf) AddGraphic(seg *GraphicSegment) {
	n.Header.AddSubheader(header.Graphic, uint32(seg.Header.Length()), seg.DataSize)
	n.GraphicSegments = append(n.GraphicSegments, seg)
	n.updateOffsets()
	logger.Debug("added graphic segment")
}

// AddText appends seg to the text sequence; see AddImage.
func (n *Nitf) AddText(seg *TextSegment) {
	n.Header.AddSubheader(header.Text, uint32(seg.Header.Length()), seg.DataSize)
	n.TextSegments = append(n.TextSegments, seg)
	n.updateOffsets()
	logger.Debug("added text segment")
}

// AddDataExtension appends seg to the data extension sequence; see
// AddImage.
func (n *Nitf) AddDataExtension(seg *DataExtensionSegment) {
	n.Header.AddSubheader(header.DataExtension, uint32(seg.Header.Length()), seg.DataSize)
	n.DataExtensionSegments = append(n.DataExtensionSegments, seg)
	n.updateOffsets()
	logger.Debug("added data extension segment")
}

// AddReservedExtension appends seg to the reserved extension sequence; see
// AddImage.
func (n *Nitf) AddReservedExtension(seg *ReservedExtensionSegment) {
	n.Header.AddSubheader(header.ReservedExtension, uint32(seg.Header.Length()), seg.DataSize)
	n.ReservedExtensionSegments = append(n.ReservedExtensionSegments, seg)
	n.updateOffsets()
	logger.Debug("added reserved extension segment")
}

// truncater is satisfied by *os.File; write targets that support it are
// extended to the full computed file length before the headers go out, so
// data regions can be written into their pre-allocated ranges afterward.
type truncater interface {
	Truncate(int64) error
}

// WriteHeaders refreshes every offset, sets the file header's HL and FL
// fields, and writes the file header followed by every subheader in
// canonical order. Data regions are not written; use WriteData on each
// segment. Returns the total header bytes written.
func (n *Nitf) WriteHeaders(w io.WriteSeeker) (int, error) {
	n.updateOffsets()
	length := n.Length()

	if t, ok := w.(truncater); ok {
		if err := t.Truncate(int64(length)); err != nil {
			return 0, errs.IO(err)
		}
	}

	logger.Debug("writing NITF file header", zap.Uint64("fileLength", length))
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return 0, errs.IO(err)
	}
	written, err := n.Header.WriteHeader(w, length)
	if err != nil {
		return written, err
	}

	for _, seg := range n.ImageSegments {
		m, err := seg.WriteHeader(w)
		written += m
		if err != nil {
			return written, err
		}
	}
	for _, seg := range n.GraphicSegments {
		m, err := seg.WriteHeader(w)
		written += m
		if err != nil {
			return written, err
		}
	}
	for _, seg := range n.TextSegments {
		m, err := seg.WriteHeader(w)
		written += m
		if err != nil {
			return written, err
		}
	}
	for _, seg := range n.DataExtensionSegments {
		m, err := seg.WriteHeader(w)
		written += m
		if err != nil {
			return written, err
		}
	}
	for _, seg := range n.ReservedExtensionSegments {
		m, err := seg.WriteHeader(w)
		written += m
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// Equal compares the file header and every segment pointwise. Data windows
// are excluded from the comparison.
func (n *Nitf) Equal(o *Nitf) bool {
	if !n.Header.Equal(o.Header) {
		return false
	}
	if len(n.ImageSegments) != len(o.ImageSegments) ||
		len(n.GraphicSegments) != len(o.GraphicSegments) ||
		len(n.TextSegments) != len(o.TextSegments) ||
		len(n.DataExtensionSegments) != len(o.DataExtensionSegments) ||
		len(n.ReservedExtensionSegments) != len(o.ReservedExtensionSegments) {
		return false
	}
	for i := range n.ImageSegments {
		if !n.ImageSegments[i].Equal(o.ImageSegments[i]) {
			return false
		}
	}
	for i := range n.GraphicSegments {
		if !n.GraphicSegments[i].Equal(o.GraphicSegments[i]) {
			return false
		}
	}
	for i := range n.TextSegments {
		if !n.TextSegments[i].Equal(o.TextSegments[i]) {
			return false
		}
	}
	for i := range n.DataExtensionSegments {
		if !n.DataExtensionSegments[i].Equal(o.DataExtensionSegments[i]) {
			return false
		}
	}
	for i := range n.ReservedExtensionSegments {
		if !n.ReservedExtensionSegments[i].Equal(o.ReservedExtensionSegments[i]) {
			return false
		}
	}

	return true
}

// Close releases the backing file and memory mapping held by a Nitf
// returned from ReadNitf. Every segment data window becomes invalid.
// Segments themselves stay usable for their metadata.
func (n *Nitf) Close() error {
	var firstErr error
	for _, c := range n.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = errs.IO(err)
		}
	}
	n.closers = nil

	return firstErr
}

func (n *Nitf) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v", n.Header)
	for _, seg := range n.ImageSegments {
		fmt.Fprintf(&b, "%v", seg)
	}
	for _, seg := range n.GraphicSegments {
		fmt.Fprintf(&b, "%v", seg)
	}
	for _, seg := range n.TextSegments {
		fmt.Fprintf(&b, "%v", seg)
	}
	for _, seg := range n.DataExtensionSegments {
		fmt.Fprintf(&b, "%v", seg)
	}
	for _, seg := range n.ReservedExtensionSegments {
		fmt.Fprintf(&b, "%v", seg)
	}

	return b.String()
}
