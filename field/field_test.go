package field

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacscale/nitf/errs"
)

func TestUintReadWrite(t *testing.T) {
	t.Run("Zero pads left", func(t *testing.T) {
		f := New[U32]("NROWS", 8)
		f.Val = 512

		var buf bytes.Buffer
		n, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, "00000512", buf.String())
	})

	t.Run("Round trip", func(t *testing.T) {
		f := New[U16]("NBPR", 4)
		require.NoError(t, f.Read(strings.NewReader("0042")))
		require.Equal(t, U16(42), f.Val)

		var buf bytes.Buffer
		_, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, "0042", buf.String())
	})

	t.Run("Blank decodes to zero", func(t *testing.T) {
		f := New[U32]("FSCOP", 5)
		require.NoError(t, f.Read(strings.NewReader("     ")))
		require.Equal(t, U32(0), f.Val)

		// The blank spelling is not reproduced; zero is normalized.
		var buf bytes.Buffer
		_, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, "00000", buf.String())
	})

	t.Run("Trailing spaces tolerated", func(t *testing.T) {
		f := New[U8]("CLEVEL", 2)
		require.NoError(t, f.Read(strings.NewReader("3 ")))
		require.Equal(t, U8(3), f.Val)
	})

	t.Run("Malformed digits", func(t *testing.T) {
		f := New[U8]("CLEVEL", 2)
		err := f.Read(strings.NewReader("ab"))
		require.ErrorIs(t, err, errs.ErrParse)
		require.Contains(t, err.Error(), "CLEVEL")
	})

	t.Run("Overwide value rejected", func(t *testing.T) {
		f := New[U16]("IDLVL", 3)
		f.Val = 12345

		_, err := f.Write(&bytes.Buffer{})
		require.ErrorIs(t, err, errs.ErrValue)
	})
}

func TestStrReadWrite(t *testing.T) {
	t.Run("Pads right", func(t *testing.T) {
		f := New[Str]("OSTAID", 10)
		f.Val = "STATION"

		var buf bytes.Buffer
		n, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, 10, n)
		require.Equal(t, "STATION   ", buf.String())
	})

	t.Run("Empty encodes as spaces", func(t *testing.T) {
		f := New[Str]("FTITLE", 6)

		var buf bytes.Buffer
		_, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, "      ", buf.String())
	})

	t.Run("Truncates overlong", func(t *testing.T) {
		f := New[Str]("IMAG", 4)
		f.Val = "1.0ABC"

		var buf bytes.Buffer
		_, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, "1.0A", buf.String())
	})

	t.Run("Leading spaces preserved", func(t *testing.T) {
		f := New[Str]("ONAME", 8)
		require.NoError(t, f.Read(strings.NewReader("  AB    ")))
		require.Equal(t, Str("  AB"), f.Val)

		var buf bytes.Buffer
		_, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, "  AB    ", buf.String())
	})
}

func TestLengthPreservation(t *testing.T) {
	// Invariant: decoding N bytes and re-encoding yields exactly N bytes.
	widths := []int{1, 2, 4, 8, 12}
	for _, w := range widths {
		f := New[U64]("FL", w)
		require.NoError(t, f.Read(strings.NewReader(strings.Repeat("7", w))))

		var buf bytes.Buffer
		n, err := f.Write(&buf)
		require.NoError(t, err)
		require.Equal(t, w, n)
		require.Equal(t, w, buf.Len())
		require.Equal(t, w, f.Length())
	}
}

func TestShortReadIsIOError(t *testing.T) {
	f := New[Str]("FDT", 14)
	err := f.Read(strings.NewReader("20240101"))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestFieldString(t *testing.T) {
	f := New[U8]("NUMI", 3)
	f.Val = 2
	require.Equal(t, "NUMI: 2", f.String())
}
