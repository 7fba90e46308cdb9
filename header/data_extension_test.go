package header

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataExtensionDefaultRoundTrip(t *testing.T) {
	h := NewDataExtensionHeader()
	h.DESID.Val = "XML_DATA_CONTENT"
	h.DESVER.Val = 1

	var buf bytes.Buffer
	n, err := h.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, h.Length(), n)

	parsed := NewDataExtensionHeader()
	require.NoError(t, parsed.Read(&buf))
	require.True(t, h.Equal(parsed))
	require.False(t, parsed.IsTREOverflow())
}

func TestDataExtensionKeyedTail(t *testing.T) {
	t.Run("TRE_OVERFLOW carries DESOFLW and DESITEM", func(t *testing.T) {
		h := NewDataExtensionHeader()
		h.DESID.Val = "TRE_OVERFLOW"
		h.DESOFLW.Val = OverflowUDHD
		h.DESITEM.Val = 2

		var buf bytes.Buffer
		n, err := h.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, h.Length(), n)
		// marker + desid + desver + security + desoflw + desitem + desshl
		require.Equal(t, 2+25+2+167+6+3+4, n)

		parsed := NewDataExtensionHeader()
		require.NoError(t, parsed.Read(&buf))
		require.True(t, parsed.IsTREOverflow())
		require.Equal(t, OverflowUDHD, parsed.DESOFLW.Val)
		require.EqualValues(t, 2, parsed.DESITEM.Val)
		require.True(t, h.Equal(parsed))
	})

	t.Run("Identifier is trimmed before comparison", func(t *testing.T) {
		// The 25-byte DESID window space-pads the identifier; padding must
		// not defeat the comparison.
		h := NewDataExtensionHeader()
		h.DESID.Val = "TRE_OVERFLOW"

		var buf bytes.Buffer
		_, err := h.Write(&buf)
		require.NoError(t, err)

		parsed := NewDataExtensionHeader()
		require.NoError(t, parsed.Read(&buf))
		require.True(t, parsed.IsTREOverflow())
	})

	t.Run("Other identifiers omit the pair", func(t *testing.T) {
		h := NewDataExtensionHeader()
		h.DESID.Val = "SICD_XML"

		var buf bytes.Buffer
		n, err := h.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, 2+25+2+167+4, n)
	})
}

func TestDataExtensionUserSubheader(t *testing.T) {
	h := NewDataExtensionHeader()
	h.DESID.Val = "SICD_XML"
	h.DESSHF.Data = []byte("user defined fields here")

	var buf bytes.Buffer
	_, err := h.Write(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 24, h.DESSHL.Val, "DESSHL carries no overflow index, only the payload")

	parsed := NewDataExtensionHeader()
	require.NoError(t, parsed.Read(&buf))
	require.Equal(t, []byte("user defined fields here"), parsed.DESSHF.Data)
	require.True(t, h.Equal(parsed))
}

func TestReservedExtensionRoundTrip(t *testing.T) {
	h := NewReservedExtensionHeader()
	h.RESID.Val = "RESERVED01"
	h.RESVER.Val = 1
	h.RESSHF.Data = []byte{0x01, 0x02}

	var buf bytes.Buffer
	n, err := h.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, h.Length(), n)
	require.EqualValues(t, 2, h.RESSHL.Val)

	parsed := NewReservedExtensionHeader()
	require.NoError(t, parsed.Read(&buf))
	require.True(t, h.Equal(parsed))
}
