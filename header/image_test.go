package header

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacscale/nitf/field"
)

func TestImageHeaderDefaultRoundTrip(t *testing.T) {
	h := NewImageHeader()
	h.Bands = append(h.Bands, NewBand())

	var buf bytes.Buffer
	n, err := h.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, h.Length(), n)

	parsed := NewImageHeader()
	require.NoError(t, parsed.Read(&buf))
	require.True(t, h.Equal(parsed))
	require.Len(t, parsed.Bands, 1)
}

func TestImageHeaderComratGuard(t *testing.T) {
	t.Run("NC omits comrat", func(t *testing.T) {
		h := NewImageHeader()
		h.Bands = append(h.Bands, NewBand())
		h.IC.Val = CompNone
		h.COMRAT.Val = "N/A" // must not reach the wire

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)

		// The four bytes after IC are NBANDS and the first three band
		// bytes, not COMRAT.
		raw := buf.Bytes()
		icEnd := h.IM.Length() + h.IID1.Length() + h.IDATIM.Length() +
			h.TGTID.Length() + h.IID2.Length() + h.Security.Length() +
			h.ENCRYP.Length() + h.ISORCE.Length() + h.NROWS.Length() +
			h.NCOLS.Length() + h.PVTYPE.Length() + h.IREP.Length() +
			h.ICAT.Length() + h.ABPP.Length() + h.PJUST.Length() +
			h.ICORDS.Length() + h.IGEOLO.Length() + h.NICOM.Length() +
			h.IC.Length()
		require.Equal(t, byte('1'), raw[icEnd], "NBANDS follows IC directly")
	})

	t.Run("C3 carries comrat", func(t *testing.T) {
		h := NewImageHeader()
		h.Bands = append(h.Bands, NewBand())
		h.IC.Val = CompJPEG
		h.COMRAT.Val = "00.5"

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)

		parsed := NewImageHeader()
		require.NoError(t, parsed.Read(&buf))
		require.Equal(t, field.Str("00.5"), parsed.COMRAT.Val)
		require.True(t, h.Equal(parsed))
	})

	t.Run("Rate codes", func(t *testing.T) {
		withRate := []Compression{CompBiLevel, CompJPEG, CompVQ,
			CompLosslessJPEG, CompJPEG2000, CompDownsampledJPEG,
			CompBiLevelMasked, CompJPEGMasked, CompVQMasked,
			CompLosslessJPEGMasked, CompJPEG2000Masked}
		for _, c := range withRate {
			require.True(t, c.HasRate(), c.Encode())
		}
		withoutRate := []Compression{CompNone, CompNoneMasked,
			CompReservedC6, CompReservedC7, CompReservedM6, CompReservedM7}
		for _, c := range withoutRate {
			require.False(t, c.HasRate(), c.Encode())
		}
	})
}

func TestImageHeaderComments(t *testing.T) {
	h := NewImageHeader()
	h.Bands = append(h.Bands, NewBand())
	com := field.New[field.Str]("ICOM", 80)
	com.Val = "first comment"
	h.ICOMS = append(h.ICOMS, com)
	com.Val = "second comment"
	h.ICOMS = append(h.ICOMS, com)

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 2, h.NICOM.Val, "count synced from slice")

	parsed := NewImageHeader()
	require.NoError(t, parsed.Read(&buf))
	require.Len(t, parsed.ICOMS, 2)
	require.Equal(t, field.Str("second comment"), parsed.ICOMS[1].Val)
	require.True(t, h.Equal(parsed))
}

func TestBandLUTSizing(t *testing.T) {
	t.Run("Two LUTs of four entries", func(t *testing.T) {
		b := NewBand()
		b.NLUTS.Val = 2
		b.LUTD = []byte{1, 2, 3, 4, 5, 6, 7, 8}

		var buf bytes.Buffer
		n, err := b.Write(&buf)
		require.NoError(t, err)
		require.EqualValues(t, 4, b.NELUT.Val, "entries per LUT synced from payload")

		// irepband + isubcat + ifc + imflt + nluts + nelut + 8 LUT bytes
		require.Equal(t, 2+6+1+3+1+5+8, n)
		require.Equal(t, b.Length(), n)

		parsed := NewBand()
		require.NoError(t, parsed.Read(&buf))
		require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, parsed.LUTD)
		require.True(t, b.Equal(&parsed))
	})

	t.Run("Zero LUTs omit NELUT", func(t *testing.T) {
		b := NewBand()

		var buf bytes.Buffer
		n, err := b.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, 2+6+1+3+1, n)
		require.Equal(t, b.Length(), n)
	})
}

func TestImageHeaderExtendedBandCount(t *testing.T) {
	h := NewImageHeader()
	for range 12 {
		h.Bands = append(h.Bands, NewBand())
	}

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 0, h.NBANDS.Val, "band counts over 9 move to XBANDS")
	require.EqualValues(t, 12, h.XBANDS.Val)

	parsed := NewImageHeader()
	require.NoError(t, parsed.Read(&buf))
	require.Len(t, parsed.Bands, 12)
	require.True(t, h.Equal(parsed))
}

func TestImageEnumRejectsUnknownSpellings(t *testing.T) {
	_, err := PixelValueType(0).Decode("XX")
	require.Error(t, err)
	_, err = ImageRepresentation(0).Decode("BOGUS")
	require.Error(t, err)
	_, err = Compression(0).Decode("Z9")
	require.Error(t, err)
	_, err = ImageMode(0).Decode("Q")
	require.Error(t, err)

	// Canonical spellings parse, including the slashed RGB/LUT form.
	rep, err := ImageRepresentation(0).Decode("RGB/LUT")
	require.NoError(t, err)
	require.Equal(t, RepRGBLUT, rep)
	rep, err = ImageRepresentation(0).Decode("NVECTOR")
	require.NoError(t, err)
	require.Equal(t, RepNVector, rep)
}
