package header

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecurityLength(t *testing.T) {
	s := NewSecurity()
	require.Equal(t, 167, s.Length())

	var buf bytes.Buffer
	n, err := s.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, 167, n)
	require.Equal(t, 167, buf.Len())
}

func TestSecurityDefaultIsBlank(t *testing.T) {
	s := NewSecurity()

	var buf bytes.Buffer
	_, err := s.Write(&buf)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat(" ", 167), buf.String())
}

func TestSecurityRoundTrip(t *testing.T) {
	s := NewSecurity()
	s.CLAS.Val = "U"
	s.CLSY.Val = "US"
	s.CAUT.Val = "SOME AUTHORITY"
	s.CTLN.Val = "0123456"

	var buf bytes.Buffer
	_, err := s.Write(&buf)
	require.NoError(t, err)

	parsed := NewSecurity()
	require.NoError(t, parsed.Read(&buf))
	require.Equal(t, s, parsed)
}

func TestSecurityShortStream(t *testing.T) {
	s := NewSecurity()
	err := s.Read(strings.NewReader(strings.Repeat(" ", 100)))
	require.Error(t, err)
}
