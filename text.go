package nitf

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/tacscale/nitf/errs"
	"github.com/tacscale/nitf/header"
)

// DecodeTextData converts a text segment's raw payload to a Go string
// according to the subheader's TXTFMT field.
//
// BCS and USMTF payloads are printable ASCII and pass through unchanged.
// ECS payloads are ISO 8859-1 and are transcoded to UTF-8. U8S payloads
// are already UTF-8 and are validated only.
func DecodeTextData(hdr *header.TextHeader, data []byte) (string, error) {
	switch hdr.TXTFMT.Val {
	case header.FormatECS:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", errs.Parse(hdr.TXTFMT.Name)
		}
		return string(decoded), nil
	case header.FormatU8S:
		if !utf8.Valid(data) {
			return "", errs.Parse(hdr.TXTFMT.Name)
		}
		return string(data), nil
	default:
		return string(data), nil
	}
}

// ReadTextData reads a text segment's payload from r and decodes it per
// the segment's TXTFMT.
func ReadTextData(seg *TextSegment, r io.ReadSeeker) (string, error) {
	data, err := seg.ReadData(r)
	if err != nil {
		return "", err
	}

	return DecodeTextData(seg.Header, data)
}
