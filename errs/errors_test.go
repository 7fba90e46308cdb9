package errs

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelClassification(t *testing.T) {
	require.ErrorIs(t, Parse("FHDR"), ErrParse)
	require.ErrorIs(t, Value("DESSHL"), ErrValue)
	require.ErrorIs(t, Fatal("no file bound"), ErrFatal)
}

func TestIOKeepsCause(t *testing.T) {
	err := IO(io.ErrUnexpectedEOF)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMessagesCarryFieldName(t *testing.T) {
	require.Contains(t, Parse("IGEOLO").Error(), "IGEOLO")
	require.Contains(t, Value("NBANDS").Error(), "NBANDS")
}

func TestKindsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(Parse("X"), ErrValue))
	require.False(t, errors.Is(Value("X"), ErrParse))
}
