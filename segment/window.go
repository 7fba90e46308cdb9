package segment

import (
	"io"

	"golang.org/x/exp/mmap"

	"github.com/tacscale/nitf/errs"
)

// Mapper hands out read-only windows over byte ranges of the backing file.
// Segment construction asks the mapper for one window per data region; a
// nil Mapper skips window creation and leaves segments metadata-only.
type Mapper interface {
	// Window returns a reader over [off, off+n) of the backing file.
	Window(off, n int64) (*io.SectionReader, error)
}

// MmapMapper serves windows from a memory-mapped file, so reading a data
// region never stages the whole payload through a user-space copy of the
// file. The mapping must outlive every window served from it.
type MmapMapper struct {
	r *mmap.ReaderAt
}

// OpenMmap memory-maps the file at path read-only.
func OpenMmap(path string) (*MmapMapper, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, errs.IO(err)
	}

	return &MmapMapper{r: r}, nil
}

// Window returns a reader over [off, off+n) of the mapping.
func (m *MmapMapper) Window(off, n int64) (*io.SectionReader, error) {
	if off+n > int64(m.r.Len()) {
		return nil, errs.Value("data window exceeds file size")
	}

	return io.NewSectionReader(m.r, off, n), nil
}

// Close releases the mapping. Every window served from this mapper becomes
// invalid.
func (m *MmapMapper) Close() error {
	return m.r.Close()
}

// ReaderAtMapper serves windows from any io.ReaderAt, the documented
// fallback when the source is a plain seekable stream rather than a file
// on disk. Windows read lazily on demand.
type ReaderAtMapper struct {
	r io.ReaderAt
}

// NewReaderAtMapper wraps an io.ReaderAt as a window source.
func NewReaderAtMapper(r io.ReaderAt) *ReaderAtMapper {
	return &ReaderAtMapper{r: r}
}

// Window returns a reader over [off, off+n) of the underlying source.
func (m *ReaderAtMapper) Window(off, n int64) (*io.SectionReader, error) {
	return io.NewSectionReader(m.r, off, n), nil
}
