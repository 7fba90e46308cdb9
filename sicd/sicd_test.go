package sicd

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacscale/nitf/errs"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<SICD xmlns="urn:SICD:1.3.0">
  <CollectionInfo>
    <CollectorName>SENSOR_A</CollectorName>
    <CoreName>EXAMPLE_CORE</CoreName>
    <CollectType>MONOSTATIC</CollectType>
    <RadarMode><ModeType>SPOTLIGHT</ModeType></RadarMode>
    <Classification>UNCLASSIFIED</Classification>
    <Parameter name="origin">synthetic</Parameter>
  </CollectionInfo>
  <ImageData>
    <PixelType>RE32F_IM32F</PixelType>
    <NumRows>2048</NumRows>
    <NumCols>1024</NumCols>
    <FirstRow>0</FirstRow>
    <FirstCol>0</FirstCol>
    <FullImage><NumRows>2048</NumRows><NumCols>1024</NumCols></FullImage>
    <SCPPixel><Row>1024</Row><Col>512</Col></SCPPixel>
    <ValidData size="2">
      <Vertex index="1"><Row>0</Row><Col>0</Col></Vertex>
      <Vertex index="2"><Row>2047</Row><Col>1023</Col></Vertex>
    </ValidData>
  </ImageData>
  <GeoData>
    <EarthModel>WGS_84</EarthModel>
    <SCP>
      <ECF><X>1000.5</X><Y>-2000.25</Y><Z>3000</Z></ECF>
      <LLH><Lat>34.1</Lat><Lon>-118.2</Lon><HAE>120.5</HAE></LLH>
    </SCP>
    <ImageCorners>
      <ICP index="1:FRFC"><Lat>34.0</Lat><Lon>-118.3</Lon></ICP>
      <ICP index="2:FRLC"><Lat>34.0</Lat><Lon>-118.1</Lon></ICP>
      <ICP index="3:LRLC"><Lat>34.2</Lat><Lon>-118.1</Lon></ICP>
      <ICP index="4:LRFC"><Lat>34.2</Lat><Lon>-118.3</Lon></ICP>
    </ImageCorners>
  </GeoData>
  <Grid>
    <ImagePlane>SLANT</ImagePlane>
    <Type>RGAZIM</Type>
    <TimeCOAPoly order1="1" order2="1">
      <Coef exponent1="0" exponent2="0">1.5</Coef>
      <Coef exponent1="1" exponent2="1">0.25</Coef>
    </TimeCOAPoly>
    <Row>
      <UVectECF><X>1</X><Y>0</Y><Z>0</Z></UVectECF>
      <SS>0.5</SS><ImpRespWid>0.9</ImpRespWid><Sgn>-1</Sgn>
      <ImpRespBW>1.1</ImpRespBW><KCtr>2.2</KCtr>
      <DeltaK1>-0.5</DeltaK1><DeltaK2>0.5</DeltaK2>
    </Row>
    <Col>
      <UVectECF><X>0</X><Y>1</Y><Z>0</Z></UVectECF>
      <SS>0.5</SS><ImpRespWid>0.9</ImpRespWid><Sgn>-1</Sgn>
      <ImpRespBW>1.1</ImpRespBW><KCtr>0</KCtr>
      <DeltaK1>-0.5</DeltaK1><DeltaK2>0.5</DeltaK2>
      <WgtFunct size="2">
        <Wgt index="1">0.4</Wgt>
        <Wgt index="2">0.6</Wgt>
      </WgtFunct>
    </Col>
  </Grid>
  <Timeline>
    <CollectStart>2024-01-01T00:00:00Z</CollectStart>
    <CollectDuration>3.5</CollectDuration>
    <IPP size="1">
      <Set index="1">
        <TStart>0</TStart><TEnd>3.5</TEnd>
        <IPPStart>0</IPPStart><IPPEnd>7000</IPPEnd>
        <IPPPoly order1="1">
          <Coef exponent1="0">0</Coef>
          <Coef exponent1="1">2000</Coef>
        </IPPPoly>
      </Set>
    </IPP>
  </Timeline>
  <Position>
    <ARPPoly>
      <X order1="2"><Coef exponent1="0">100</Coef><Coef exponent1="2">-4.9</Coef></X>
      <Y order1="0"><Coef exponent1="0">5</Coef></Y>
      <Z order1="1"><Coef exponent1="1">7</Coef></Z>
    </ARPPoly>
  </Position>
  <RadarCollection>
    <TxFrequency><Min>9000000000</Min><Max>9500000000</Max></TxFrequency>
    <TxPolarization>V</TxPolarization>
    <RcvChannels size="1">
      <ChanParameters index="1"><TxRcvPolarization>V:V</TxRcvPolarization></ChanParameters>
    </RcvChannels>
  </RadarCollection>
  <ImageFormation>
    <RcvChanProc><NumChanProc>1</NumChanProc><ChanIndex>1</ChanIndex></RcvChanProc>
    <TxRcvPolarizationProc>V:V</TxRcvPolarizationProc>
    <TStartProc>0</TStartProc>
    <TEndProc>3.5</TEndProc>
    <TxFrequencyProc><MinProc>9000000000</MinProc><MaxProc>9500000000</MaxProc></TxFrequencyProc>
    <ImageFormAlgo>PFA</ImageFormAlgo>
    <STBeamComp>NO</STBeamComp>
    <ImageBeamComp>NO</ImageBeamComp>
    <AzAutofocus>NO</AzAutofocus>
    <RgAutofocus>NO</RgAutofocus>
  </ImageFormation>
  <SCPCOA>
    <SCPTime>1.75</SCPTime>
    <ARPPos><X>1</X><Y>2</Y><Z>3</Z></ARPPos>
    <ARPVel><X>0</X><Y>0</Y><Z>0</Z></ARPVel>
    <ARPAcc><X>0</X><Y>0</Y><Z>0</Z></ARPAcc>
    <SideOfTrack>L</SideOfTrack>
    <SlantRange>10000</SlantRange>
    <GroundRange>9000</GroundRange>
    <DopplerConeAng>90</DopplerConeAng>
    <GrazeAng>30</GrazeAng>
    <IncidenceAng>60</IncidenceAng>
    <TwistAng>0</TwistAng>
    <SlopeAng>30</SlopeAng>
    <AzimAng>120</AzimAng>
    <LayoverAng>125</LayoverAng>
  </SCPCOA>
  <PFA>
    <FPN><X>0</X><Y>0</Y><Z>1</Z></FPN>
    <IPN><X>0</X><Y>0</Y><Z>1</Z></IPN>
    <PolarAngRefTime>1.75</PolarAngRefTime>
    <PolarAngPoly order1="1"><Coef exponent1="1">0.1</Coef></PolarAngPoly>
    <SpatialFreqSFPoly order1="0"><Coef exponent1="0">1</Coef></SpatialFreqSFPoly>
    <Krg1>0</Krg1><Krg2>1</Krg2><Kaz1>0</Kaz1><Kaz2>1</Kaz2>
  </PFA>
</SICD>`

func TestParseSampleDocument(t *testing.T) {
	meta, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	require.Equal(t, V1_3_0, meta.Version)
	require.Equal(t, "SENSOR_A", meta.CollectionInfo.CollectorName)
	require.Equal(t, "SPOTLIGHT", meta.CollectionInfo.RadarMode.ModeType)
	require.Len(t, meta.CollectionInfo.Parameters, 1)
	require.Equal(t, "origin", meta.CollectionInfo.Parameters[0].Name)
	require.Equal(t, "synthetic", meta.CollectionInfo.Parameters[0].Value)

	require.EqualValues(t, 2048, meta.ImageData.NumRows)
	require.Len(t, meta.ImageData.ValidData.Vertices, 2)
	require.EqualValues(t, 1023, meta.ImageData.ValidData.Vertices[1].Col)

	require.Len(t, meta.GeoData.ImageCorners.ICPs, 4)
	require.Equal(t, "1:FRFC", meta.GeoData.ImageCorners.ICPs[0].Index)
	require.InDelta(t, 34.1, meta.GeoData.SCP.LLH.Lat, 1e-12)

	require.Len(t, meta.Grid.Col.WgtFunct.Weights, 2)
	require.InDelta(t, 0.6, meta.Grid.Col.WgtFunct.Weights[1].Value, 1e-12)

	require.Equal(t, "PFA", meta.ImageFormation.ImageFormAlgo)
	require.NotNil(t, meta.PFA)
	require.Nil(t, meta.RMA)
	require.Nil(t, meta.RgAzComp)
	require.Equal(t, "L", meta.SCPCOA.SideOfTrack)
}

func TestVersionDetection(t *testing.T) {
	for _, tc := range []struct {
		ns      string
		version Version
	}{
		{"urn:SICD:0.4.0", V0_4_0},
		{"urn:SICD:0.4.1", V0_4_0},
		{"urn:SICD:0.5.0", V0_5_0},
		{"urn:SICD:1.0.0", V1_3_0},
		{"urn:SICD:1.2.1", V1_3_0},
		{"urn:SICD:1.3.0", V1_3_0},
	} {
		doc := `<SICD xmlns="` + tc.ns + `"></SICD>`
		v, err := detectVersion([]byte(doc))
		require.NoError(t, err, tc.ns)
		require.Equal(t, tc.version, v, tc.ns)
	}
}

func TestVersionDetectionFailures(t *testing.T) {
	_, err := detectVersion([]byte(`<SICD xmlns="urn:OTHER:1.0"></SICD>`))
	require.ErrorIs(t, err, errs.ErrParse)

	_, err = detectVersion([]byte(`<SICD xmlns="urn:SICD:9.9.9"></SICD>`))
	require.ErrorIs(t, err, errs.ErrValue)

	_, err = detectVersion([]byte(`not xml at all`))
	require.Error(t, err)
}

func TestPoly1DDenseAndEval(t *testing.T) {
	// 2 - 4.9 x^2, declared order 2, sparse terms.
	p := Poly1D{
		Order1: 2,
		Coefs: []Coef1D{
			{Exponent1: 0, Value: 2},
			{Exponent1: 2, Value: -4.9},
		},
	}

	dense := p.DenseVec()
	require.Equal(t, 3, dense.Len())
	require.InDelta(t, 2, dense.AtVec(0), 1e-12)
	require.InDelta(t, 0, dense.AtVec(1), 1e-12, "missing terms zero-fill")
	require.InDelta(t, -4.9, dense.AtVec(2), 1e-12)

	require.InDelta(t, 2, p.Eval(0), 1e-12)
	require.InDelta(t, 2-4.9*9, p.Eval(3), 1e-12)
}

func TestPoly2DDenseAndEval(t *testing.T) {
	// 1.5 + 0.25 x y
	p := Poly2D{
		Order1: 1,
		Order2: 1,
		Coefs: []Coef2D{
			{Exponent1: 0, Exponent2: 0, Value: 1.5},
			{Exponent1: 1, Exponent2: 1, Value: 0.25},
		},
	}

	dense := p.Dense()
	r, c := dense.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.InDelta(t, 1.5, dense.At(0, 0), 1e-12)
	require.InDelta(t, 0.25, dense.At(1, 1), 1e-12)
	require.InDelta(t, 0, dense.At(0, 1), 1e-12)

	require.InDelta(t, 1.5, p.Eval(0, 0), 1e-12)
	require.InDelta(t, 1.5+0.25*2*3, p.Eval(2, 3), 1e-12)
}

func TestXYZPolyEval(t *testing.T) {
	p := XYZPoly{
		X: Poly1D{Order1: 2, Coefs: []Coef1D{{Exponent1: 0, Value: 100}, {Exponent1: 2, Value: -4.9}}},
		Y: Poly1D{Order1: 0, Coefs: []Coef1D{{Exponent1: 0, Value: 5}}},
		Z: Poly1D{Order1: 1, Coefs: []Coef1D{{Exponent1: 1, Value: 7}}},
	}

	at := p.EvalAt(2)
	require.InDelta(t, 100-4.9*4, at.X, 1e-12)
	require.InDelta(t, 5, at.Y, 1e-12)
	require.InDelta(t, 14, at.Z, 1e-12)
}

func TestParsedPolynomialsAreOperable(t *testing.T) {
	meta, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	// TimeCOAPoly: 1.5 + 0.25 x y
	require.InDelta(t, 1.5+0.25*6, meta.Grid.TimeCOAPoly.Eval(2, 3), 1e-12)

	// ARP position polynomial evaluated at t=2.
	at := meta.Position.ARPPoly.EvalAt(2)
	require.InDelta(t, 100-4.9*4, at.X, 1e-12)
	require.InDelta(t, 5, at.Y, 1e-12)
	require.InDelta(t, 14, at.Z, 1e-12)
}
