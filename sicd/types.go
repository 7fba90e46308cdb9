package sicd

import (
	"encoding/xml"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// XYZ is an earth-centered-fixed cartesian triple.
type XYZ struct {
	X float64 `xml:"X"`
	Y float64 `xml:"Y"`
	Z float64 `xml:"Z"`
}

// LLH is a geodetic position with height above the ellipsoid.
type LLH struct {
	Lat float64 `xml:"Lat"`
	Lon float64 `xml:"Lon"`
	HAE float64 `xml:"HAE"`
}

// LatLon is a geodetic position without height.
type LatLon struct {
	Lat float64 `xml:"Lat"`
	Lon float64 `xml:"Lon"`
}

// IdxLatLon is an indexed vertex in a lat/lon list.
type IdxLatLon struct {
	Index int     `xml:"index,attr"`
	Lat   float64 `xml:"Lat"`
	Lon   float64 `xml:"Lon"`
}

// RowCol is a pixel grid position.
type RowCol struct {
	Row int64 `xml:"Row"`
	Col int64 `xml:"Col"`
}

// IdxRowCol is an indexed vertex in a row/col list.
type IdxRowCol struct {
	Index int   `xml:"index,attr"`
	Row   int64 `xml:"Row"`
	Col   int64 `xml:"Col"`
}

// Cmplx is a complex value spelled out as real and imaginary parts.
type Cmplx struct {
	Real float64 `xml:"Real"`
	Imag float64 `xml:"Imag"`
}

// Parameter is a free-form named value.
type Parameter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// decodeIndexedFloat decodes an element of the form <Name index="i">v</Name>,
// the shape shared by weight samples and amplitude entries.
func decodeIndexedFloat(d *xml.Decoder, start xml.StartElement, index *int, value *float64) error {
	for _, a := range start.Attr {
		if a.Name.Local == "index" {
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return err
			}
			*index = n
		}
	}

	var body string
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return err
	}
	*value = v

	return nil
}

// Coef1D is one sparse term of a univariate polynomial.
type Coef1D struct {
	Exponent1 int
	Value     float64
}

// UnmarshalXML decodes <Coef exponent1="e">v</Coef>; the coefficient value
// is the element's character data, which encoding/xml will not place into
// a float directly.
func (c *Coef1D) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "exponent1" {
			e, err := strconv.Atoi(a.Value)
			if err != nil {
				return err
			}
			c.Exponent1 = e
		}
	}

	var body string
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return err
	}
	c.Value = v

	return nil
}

// Poly1D is a sparse univariate polynomial: coefficients keyed by exponent,
// with the declared maximum order.
type Poly1D struct {
	Order1 int      `xml:"order1,attr"`
	Coefs  []Coef1D `xml:"Coef"`
}

// DenseVec materializes the polynomial as a dense coefficient vector of
// length Order1+1, exponent-indexed, missing terms zero-filled.
func (p *Poly1D) DenseVec() *mat.VecDense {
	v := mat.NewVecDense(p.Order1+1, nil)
	for _, c := range p.Coefs {
		if c.Exponent1 <= p.Order1 {
			v.SetVec(c.Exponent1, c.Value)
		}
	}

	return v
}

// Eval evaluates the polynomial at x by Horner's rule over the dense
// coefficients.
func (p *Poly1D) Eval(x float64) float64 {
	coefs := p.DenseVec()
	sum := 0.0
	for i := coefs.Len() - 1; i >= 0; i-- {
		sum = sum*x + coefs.AtVec(i)
	}

	return sum
}

// Coef2D is one sparse term of a bivariate polynomial.
type Coef2D struct {
	Exponent1 int
	Exponent2 int
	Value     float64
}

// UnmarshalXML decodes <Coef exponent1="e1" exponent2="e2">v</Coef>.
func (c *Coef2D) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		e, err := strconv.Atoi(a.Value)
		switch a.Name.Local {
		case "exponent1":
			if err != nil {
				return err
			}
			c.Exponent1 = e
		case "exponent2":
			if err != nil {
				return err
			}
			c.Exponent2 = e
		}
	}

	var body string
	if err := d.DecodeElement(&body, &start); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return err
	}
	c.Value = v

	return nil
}

// Poly2D is a sparse bivariate polynomial with declared maximum orders in
// each variable.
type Poly2D struct {
	Order1 int      `xml:"order1,attr"`
	Order2 int      `xml:"order2,attr"`
	Coefs  []Coef2D `xml:"Coef"`
}

// Dense materializes the polynomial as a dense (Order1+1) x (Order2+1)
// coefficient matrix, exponent-indexed, missing terms zero-filled.
func (p *Poly2D) Dense() *mat.Dense {
	m := mat.NewDense(p.Order1+1, p.Order2+1, nil)
	for _, c := range p.Coefs {
		if c.Exponent1 <= p.Order1 && c.Exponent2 <= p.Order2 {
			m.Set(c.Exponent1, c.Exponent2, c.Value)
		}
	}

	return m
}

// Eval evaluates the polynomial at (x, y), treating each row of the dense
// coefficient matrix as a univariate polynomial in y and combining the row
// results by Horner's rule in x.
func (p *Poly2D) Eval(x, y float64) float64 {
	coefs := p.Dense()
	rows, cols := coefs.Dims()

	sum := 0.0
	for i := rows - 1; i >= 0; i-- {
		rowSum := 0.0
		for j := cols - 1; j >= 0; j-- {
			rowSum = rowSum*y + coefs.At(i, j)
		}
		sum = sum*x + rowSum
	}

	return sum
}

// XYZPoly is a position polynomial: one univariate polynomial per
// cartesian component.
type XYZPoly struct {
	X Poly1D `xml:"X"`
	Y Poly1D `xml:"Y"`
	Z Poly1D `xml:"Z"`
}

// EvalAt evaluates all three component polynomials at t.
func (p *XYZPoly) EvalAt(t float64) XYZ {
	return XYZ{X: p.X.Eval(t), Y: p.Y.Eval(t), Z: p.Z.Eval(t)}
}

// IdxXYZPoly is an indexed position polynomial in a repeated list.
type IdxXYZPoly struct {
	Index int    `xml:"index,attr"`
	X     Poly1D `xml:"X"`
	Y     Poly1D `xml:"Y"`
	Z     Poly1D `xml:"Z"`
}
