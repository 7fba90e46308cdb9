package header

import (
	"fmt"
	"io"

	"github.com/tacscale/nitf/field"
)

// securityLength is the fixed encoded size of the security block.
const securityLength = 167

// Security is the 167-byte classification block reused verbatim inside
// every subheader. All sixteen fields are free text; the library does not
// validate classification semantics.
type Security struct {
	// CLAS is the security classification.
	CLAS field.Field[field.Str]
	// CLSY is the classification security system.
	CLSY field.Field[field.Str]
	// CODE holds the codewords.
	CODE field.Field[field.Str]
	// CTLH is the control and handling marking.
	CTLH field.Field[field.Str]
	// REL holds the releasing instructions.
	REL field.Field[field.Str]
	// DCTP is the declassification type.
	DCTP field.Field[field.Str]
	// DCDT is the declassification date.
	DCDT field.Field[field.Str]
	// DCXM is the declassification exemption.
	DCXM field.Field[field.Str]
	// DG is the downgrade marking.
	DG field.Field[field.Str]
	// DGDT is the downgrade date.
	DGDT field.Field[field.Str]
	// CLTX is the classification text.
	CLTX field.Field[field.Str]
	// CATP is the classification authority type.
	CATP field.Field[field.Str]
	// CAUT is the classification authority.
	CAUT field.Field[field.Str]
	// CRSN is the classification reason.
	CRSN field.Field[field.Str]
	// SRDT is the security source date.
	SRDT field.Field[field.Str]
	// CTLN is the security control number.
	CTLN field.Field[field.Str]
}

// NewSecurity creates a security block with every field blank.
func NewSecurity() Security {
	return Security{
		CLAS: field.New[field.Str]("CLAS", 1),
		CLSY: field.New[field.Str]("CLSY", 2),
		CODE: field.New[field.Str]("CODE", 11),
		CTLH: field.New[field.Str]("CTLH", 2),
		REL:  field.New[field.Str]("REL", 20),
		DCTP: field.New[field.Str]("DCTP", 2),
		DCDT: field.New[field.Str]("DCDT", 8),
		DCXM: field.New[field.Str]("DCXM", 4),
		DG:   field.New[field.Str]("DG", 1),
		DGDT: field.New[field.Str]("DGDT", 8),
		CLTX: field.New[field.Str]("CLTX", 43),
		CATP: field.New[field.Str]("CATP", 1),
		CAUT: field.New[field.Str]("CAUT", 40),
		CRSN: field.New[field.Str]("CRSN", 1),
		SRDT: field.New[field.Str]("SRDT", 8),
		CTLN: field.New[field.Str]("CTLN", 15),
	}
}

// Read decodes all sixteen fields in declared order.
func (s *Security) Read(r io.Reader) error {
	return readSeq(r,
		&s.CLAS, &s.CLSY, &s.CODE, &s.CTLH, &s.REL, &s.DCTP, &s.DCDT,
		&s.DCXM, &s.DG, &s.DGDT, &s.CLTX, &s.CATP, &s.CAUT, &s.CRSN,
		&s.SRDT, &s.CTLN)
}

// Write encodes all sixteen fields in declared order.
func (s *Security) Write(w io.Writer) (int, error) {
	return writeSeq(w,
		&s.CLAS, &s.CLSY, &s.CODE, &s.CTLH, &s.REL, &s.DCTP, &s.DCDT,
		&s.DCXM, &s.DG, &s.DGDT, &s.CLTX, &s.CATP, &s.CAUT, &s.CRSN,
		&s.SRDT, &s.CTLN)
}

// Length returns the fixed 167-byte size of the block.
func (s *Security) Length() int {
	return securityLength
}

func (s *Security) String() string {
	return fmt.Sprintf("%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v",
		s.CLAS, s.CLSY, s.CODE, s.CTLH, s.REL, s.DCTP, s.DCDT, s.DCXM,
		s.DG, s.DGDT, s.CLTX, s.CATP, s.CAUT, s.CRSN, s.SRDT, s.CTLN)
}
