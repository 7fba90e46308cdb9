package header

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacscale/nitf/errs"
)

// emptyFileHeaderLength is the encoded size of a file header with no
// segments and no optional tails.
const emptyFileHeaderLength = 388

func TestFileHeaderDefaultLength(t *testing.T) {
	h := NewFileHeader()
	require.Equal(t, emptyFileHeaderLength, h.Length())

	var buf bytes.Buffer
	n, err := h.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, emptyFileHeaderLength, n)
	require.Equal(t, h.Length(), buf.Len())
}

func TestFileHeaderRoundTrip(t *testing.T) {
	h := NewFileHeader()
	h.OSTAID.Val = "STATION01"
	h.FDT.Val = "20240101120000"
	h.FTITLE.Val = "round trip"
	h.CLEVEL.Val = 3

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)

	parsed := NewFileHeader()
	require.NoError(t, parsed.Read(&buf))
	require.True(t, h.Equal(parsed))
}

func TestFileHeaderBadProfile(t *testing.T) {
	h := NewFileHeader()

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)

	raw := buf.Bytes()
	copy(raw, "XITF")

	parsed := NewFileHeader()
	err = parsed.Read(bytes.NewReader(raw))
	require.ErrorIs(t, err, errs.ErrParse)
	require.Contains(t, err.Error(), "FHDR")
}

func TestFileHeaderTableWidths(t *testing.T) {
	// The five tables carry kind-specific entry widths, part of the
	// format grammar.
	for _, tc := range []struct {
		kind  SegmentKind
		total int
	}{
		{Image, 16},
		{Graphic, 10},
		{Text, 9},
		{DataExtension, 13},
		{ReservedExtension, 11},
	} {
		entry := NewSizeEntry(tc.kind)
		require.Equal(t, tc.total, entry.Length(), "kind %v", tc.kind)
	}
}

func TestFileHeaderAddSubheader(t *testing.T) {
	h := NewFileHeader()
	h.AddSubheader(Image, 499, 8)
	h.AddSubheader(Text, 282, 100)

	require.Equal(t, uint16(1), uint16(h.NUMI.Val))
	require.Equal(t, uint16(1), uint16(h.NUMT.Val))
	require.Len(t, h.ImageInfo, 1)
	require.Len(t, h.TextInfo, 1)
	require.EqualValues(t, 499, h.ImageInfo[0].SubheaderSize.Val)
	require.EqualValues(t, 8, h.ImageInfo[0].ItemSize.Val)

	// Each entry adds its width to the header length.
	require.Equal(t, emptyFileHeaderLength+16+9, h.Length())
}

func TestFileHeaderTableRoundTrip(t *testing.T) {
	h := NewFileHeader()
	h.AddSubheader(Image, 499, 1024)
	h.AddSubheader(Graphic, 258, 16)
	h.AddSubheader(DataExtension, 200, 3000)

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)

	parsed := NewFileHeader()
	require.NoError(t, parsed.Read(&buf))
	require.True(t, h.Equal(parsed))
	require.Len(t, parsed.ImageInfo, 1)
	require.EqualValues(t, 1024, parsed.ImageInfo[0].ItemSize.Val)
}

func TestFileHeaderGuardedTails(t *testing.T) {
	t.Run("Absent", func(t *testing.T) {
		h := NewFileHeader()

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)

		// The last ten bytes on the wire are UDHDL and XHDL, both zero.
		raw := buf.Bytes()
		require.Equal(t, "0000000000", string(raw[len(raw)-10:]))
	})

	t.Run("Present", func(t *testing.T) {
		h := NewFileHeader()
		h.XHD.Data = []byte("HELLO")

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)
		require.EqualValues(t, 8, h.XHDL.Val, "length counts the 3-byte overflow index")
		require.Equal(t, emptyFileHeaderLength+3+5, buf.Len())

		parsed := NewFileHeader()
		require.NoError(t, parsed.Read(&buf))
		require.Equal(t, []byte("HELLO"), parsed.XHD.Data)
		require.True(t, h.Equal(parsed))
	})

	t.Run("Length of three is malformed", func(t *testing.T) {
		h := NewFileHeader()

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)

		// Corrupt UDHDL (the 10th byte from the end backwards: UDHDL is
		// bytes [len-10, len-5)) to claim a tail of exactly 3 bytes.
		raw := buf.Bytes()
		copy(raw[len(raw)-10:], "00003")

		parsed := NewFileHeader()
		err = parsed.Read(bytes.NewReader(raw))
		require.ErrorIs(t, err, errs.ErrValue)
		require.Contains(t, err.Error(), "UDHDL")
	})
}

func TestFileHeaderWriteHeaderRefreshesSizes(t *testing.T) {
	h := NewFileHeader()

	var buf bytes.Buffer
	_, err := h.WriteHeader(&buf, 12345)
	require.NoError(t, err)
	require.EqualValues(t, h.Length(), h.HL.Val)
	require.EqualValues(t, 12345, h.FL.Val)
}
