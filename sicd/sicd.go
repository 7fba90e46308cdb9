// Package sicd deserializes Sensor Independent Complex Data metadata.
//
// A SICD product is a NITF 2.1 file whose first data extension segment
// carries a UTF-8 XML document describing a complex-valued SAR image. This
// package consumes those bytes — exactly as the nitf package surfaces them
// from a segment's data window — and yields a typed metadata tree. The
// schema version is selected from the namespace declared on the document
// root; versions 0.4.0, 0.5.0, and 1.3.0 are supported and share one tree,
// as their data models are cross-compatible.
package sicd

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/tacscale/nitf"
	"github.com/tacscale/nitf/errs"
)

// Version identifies the SICD schema a document was written against.
type Version int

const (
	// V0_4_0 is SICD 0.4.0.
	V0_4_0 Version = iota
	// V0_5_0 is SICD 0.5.0.
	V0_5_0
	// V1_3_0 is SICD 1.3.0, backwards compatible with 1.0 through 1.2.1.
	V1_3_0
)

func (v Version) String() string {
	switch v {
	case V0_4_0:
		return "0.4.0"
	case V0_5_0:
		return "0.5.0"
	default:
		return "1.3.0"
	}
}

// sicdNamespace is the urn prefix every SICD document root declares.
const sicdNamespace = "urn:SICD:"

// detectVersion extracts the schema version from the root element's
// namespace, e.g. xmlns="urn:SICD:1.3.0".
func detectVersion(data []byte) (Version, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return V1_3_0, errs.Parse("SICD root element")
			}
			return V1_3_0, errs.Parse("SICD document")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		ns := start.Name.Space
		if ns == "" {
			for _, a := range start.Attr {
				if a.Name.Local == "xmlns" {
					ns = a.Value
				}
			}
		}
		if !strings.HasPrefix(ns, sicdNamespace) {
			return V1_3_0, errs.Parse("SICD namespace")
		}

		switch vs := strings.TrimPrefix(ns, sicdNamespace); {
		case strings.HasPrefix(vs, "0.4"):
			return V0_4_0, nil
		case strings.HasPrefix(vs, "0.5"):
			return V0_5_0, nil
		case strings.HasPrefix(vs, "1."):
			return V1_3_0, nil
		default:
			return V1_3_0, errs.Value("SICD version")
		}
	}
}

// Parse decodes a SICD XML document. The bytes are typically a NITF data
// extension segment's data window, verbatim.
func Parse(data []byte) (*Metadata, error) {
	version, err := detectVersion(data)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{Version: version}
	if err := xml.Unmarshal(data, meta); err != nil {
		return nil, errs.Parse("SICD document")
	}

	return meta, nil
}

// FromNitf reads the SICD metadata carried by n: the first data extension
// segment's data window is parsed as the XML document. The Nitf must have
// been read with data windows available.
func FromNitf(n *nitf.Nitf) (*Metadata, error) {
	if len(n.DataExtensionSegments) == 0 {
		return nil, errs.Fatal("no data extension segment to parse")
	}

	data, err := n.DataExtensionSegments[0].DataBytes()
	if err != nil {
		return nil, err
	}

	return Parse(data)
}
