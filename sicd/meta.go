package sicd

import "encoding/xml"

// Metadata is the SICD metadata tree carried as XML inside a NITF data
// extension segment. The three supported schema versions (0.4.0, 0.5.0,
// 1.3.0) are cross-compatible at this level; Version records which one the
// document declared.
type Metadata struct {
	XMLName xml.Name

	// Version is detected from the document root's namespace, not decoded
	// from an element.
	Version Version `xml:"-"`

	CollectionInfo  CollectionInfo   `xml:"CollectionInfo"`
	ImageCreation   *ImageCreation   `xml:"ImageCreation"`
	ImageData       ImageData        `xml:"ImageData"`
	GeoData         GeoData          `xml:"GeoData"`
	Grid            Grid             `xml:"Grid"`
	Timeline        Timeline         `xml:"Timeline"`
	Position        Position         `xml:"Position"`
	RadarCollection RadarCollection  `xml:"RadarCollection"`
	ImageFormation  ImageFormation   `xml:"ImageFormation"`
	SCPCOA          SCPCOA           `xml:"SCPCOA"`
	Radiometric     *Radiometric     `xml:"Radiometric"`
	Antenna         *Antenna         `xml:"Antenna"`
	ErrorStatistics *ErrorStatistics `xml:"ErrorStatistics"`
	MatchInfo       *MatchInfo       `xml:"MatchInfo"`

	// Image formation algorithm sections; at most one is present,
	// selected by ImageFormation.ImageFormAlgo.
	RgAzComp *RgAzComp `xml:"RgAzComp"`
	PFA      *PFA      `xml:"PFA"`
	RMA      *RMA      `xml:"RMA"`
}

// CollectionInfo identifies the collector and collection.
type CollectionInfo struct {
	CollectorName   string      `xml:"CollectorName"`
	IlluminatorName string      `xml:"IlluminatorName"`
	CoreName        string      `xml:"CoreName"`
	CollectType     string      `xml:"CollectType"`
	RadarMode       RadarMode   `xml:"RadarMode"`
	Classification  string      `xml:"Classification"`
	CountryCodes    []string    `xml:"CountryCode"`
	Parameters      []Parameter `xml:"Parameter"`
}

// RadarMode is the collection mode.
type RadarMode struct {
	ModeType string `xml:"ModeType"`
	ModeID   string `xml:"ModeID"`
}

// ImageCreation records the processing provenance.
type ImageCreation struct {
	Application string `xml:"Application"`
	DateTime    string `xml:"DateTime"`
	Site        string `xml:"Site"`
	Profile     string `xml:"Profile"`
}

// ImageData describes the pixel array carried by the image segments.
type ImageData struct {
	PixelType string     `xml:"PixelType"`
	AmpTable  *AmpTable  `xml:"AmpTable"`
	NumRows   int64      `xml:"NumRows"`
	NumCols   int64      `xml:"NumCols"`
	FirstRow  int64      `xml:"FirstRow"`
	FirstCol  int64      `xml:"FirstCol"`
	FullImage FullImage  `xml:"FullImage"`
	SCPPixel  RowCol     `xml:"SCPPixel"`
	ValidData *ValidData `xml:"ValidData"`
}

// AmpTable is the amplitude lookup for AMP8I_PHS8I pixels.
type AmpTable struct {
	Size       int         `xml:"size,attr"`
	Amplitudes []Amplitude `xml:"Amplitude"`
}

// Amplitude is one indexed amplitude entry.
type Amplitude struct {
	Index int
	Value float64
}

// UnmarshalXML decodes <Amplitude index="i">v</Amplitude>.
func (a *Amplitude) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeIndexedFloat(d, start, &a.Index, &a.Value)
}

// FullImage is the full collected image extent.
type FullImage struct {
	NumRows int64 `xml:"NumRows"`
	NumCols int64 `xml:"NumCols"`
}

// ValidData is the indexed vertex list bounding the valid pixels.
type ValidData struct {
	Size     int         `xml:"size,attr"`
	Vertices []IdxRowCol `xml:"Vertex"`
}

// GeoData locates the image on the earth.
type GeoData struct {
	EarthModel   string       `xml:"EarthModel"`
	SCP          SCP          `xml:"SCP"`
	ImageCorners ImageCorners `xml:"ImageCorners"`
	ValidData    *ValidDataLL `xml:"ValidData"`
	GeoInfos     []GeoInfo    `xml:"GeoInfo"`
}

// SCP is the scene center point in both coordinate systems.
type SCP struct {
	ECF XYZ `xml:"ECF"`
	LLH LLH `xml:"LLH"`
}

// ImageCorners holds the four indexed corner points.
type ImageCorners struct {
	ICPs []ICP `xml:"ICP"`
}

// ICP is one indexed image corner point; the index spells the corner role
// (e.g. "1:FRFC").
type ICP struct {
	Index string  `xml:"index,attr"`
	Lat   float64 `xml:"Lat"`
	Lon   float64 `xml:"Lon"`
}

// ValidDataLL is the geodetic valid-data polygon.
type ValidDataLL struct {
	Size     int         `xml:"size,attr"`
	Vertices []IdxLatLon `xml:"Vertex"`
}

// GeoInfo is a named geographic annotation.
type GeoInfo struct {
	Name    string    `xml:"name,attr"`
	Descs   []string  `xml:"Desc"`
	Point   *LatLon   `xml:"Point"`
	Line    *GeoLine  `xml:"Line"`
	Polygon *GeoPoly  `xml:"Polygon"`
	Nested  []GeoInfo `xml:"GeoInfo"`
}

// GeoLine is an indexed endpoint list.
type GeoLine struct {
	Size      int         `xml:"size,attr"`
	Endpoints []IdxLatLon `xml:"Endpoint"`
}

// GeoPoly is an indexed vertex list.
type GeoPoly struct {
	Size     int         `xml:"size,attr"`
	Vertices []IdxLatLon `xml:"Vertex"`
}

// Grid describes the image sample grid.
type Grid struct {
	ImagePlane  string          `xml:"ImagePlane"`
	Type        string          `xml:"Type"`
	TimeCOAPoly Poly2D          `xml:"TimeCOAPoly"`
	Row         DirectionParams `xml:"Row"`
	Col         DirectionParams `xml:"Col"`
}

// DirectionParams describes one grid direction.
type DirectionParams struct {
	UVectECF      XYZ       `xml:"UVectECF"`
	SS            float64   `xml:"SS"`
	ImpRespWid    float64   `xml:"ImpRespWid"`
	Sgn           int       `xml:"Sgn"`
	ImpRespBW     float64   `xml:"ImpRespBW"`
	KCtr          float64   `xml:"KCtr"`
	DeltaK1       float64   `xml:"DeltaK1"`
	DeltaK2       float64   `xml:"DeltaK2"`
	DeltaKCOAPoly *Poly2D   `xml:"DeltaKCOAPoly"`
	WgtType       *WgtType  `xml:"WgtType"`
	WgtFunct      *WgtFunct `xml:"WgtFunct"`
}

// WgtType names the aperture weighting applied along a grid direction.
type WgtType struct {
	WindowName string      `xml:"WindowName"`
	Parameters []Parameter `xml:"Parameter"`
}

// WgtFunct is the sampled weighting function.
type WgtFunct struct {
	Size    int   `xml:"size,attr"`
	Weights []Wgt `xml:"Wgt"`
}

// Wgt is one indexed weight sample.
type Wgt struct {
	Index int
	Value float64
}

// UnmarshalXML decodes <Wgt index="i">v</Wgt>.
func (w *Wgt) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeIndexedFloat(d, start, &w.Index, &w.Value)
}

// Timeline places the collection in time.
type Timeline struct {
	CollectStart    string     `xml:"CollectStart"`
	CollectDuration float64    `xml:"CollectDuration"`
	IPP             *IPPParams `xml:"IPP"`
}

// IPPParams holds the inter-pulse period sets.
type IPPParams struct {
	Size int      `xml:"size,attr"`
	Sets []IPPSet `xml:"Set"`
}

// IPPSet maps a time span to a pulse index span.
type IPPSet struct {
	Index    int     `xml:"index,attr"`
	TStart   float64 `xml:"TStart"`
	TEnd     float64 `xml:"TEnd"`
	IPPStart int64   `xml:"IPPStart"`
	IPPEnd   int64   `xml:"IPPEnd"`
	IPPPoly  Poly1D  `xml:"IPPPoly"`
}

// Position holds the platform position polynomials.
type Position struct {
	ARPPoly   XYZPoly  `xml:"ARPPoly"`
	GRPPoly   *XYZPoly `xml:"GRPPoly"`
	TxAPCPoly *XYZPoly `xml:"TxAPCPoly"`
	RcvAPC    *RcvAPC  `xml:"RcvAPC"`
}

// RcvAPC holds the indexed receive aperture phase center polynomials.
type RcvAPC struct {
	Size     int          `xml:"size,attr"`
	RcvPolys []IdxXYZPoly `xml:"RcvAPCPoly"`
}

// RadarCollection describes the transmitted waveform and receive channels.
type RadarCollection struct {
	TxFrequency    TxFrequency `xml:"TxFrequency"`
	RefFreqIndex   *int64      `xml:"RefFreqIndex"`
	Waveform       *Waveform   `xml:"Waveform"`
	TxPolarization string      `xml:"TxPolarization"`
	TxSequence     *TxSequence `xml:"TxSequence"`
	RcvChannels    RcvChannels `xml:"RcvChannels"`
	Area           *Area       `xml:"Area"`
	Parameters     []Parameter `xml:"Parameter"`
}

// TxFrequency is the transmitted frequency span.
type TxFrequency struct {
	Min float64 `xml:"Min"`
	Max float64 `xml:"Max"`
}

// Waveform holds the indexed waveform parameter sets.
type Waveform struct {
	Size         int            `xml:"size,attr"`
	WFParameters []WFParameters `xml:"WFParameters"`
}

// WFParameters is one waveform description.
type WFParameters struct {
	Index           int      `xml:"index,attr"`
	TxPulseLength   *float64 `xml:"TxPulseLength"`
	TxRFBandwidth   *float64 `xml:"TxRFBandwidth"`
	TxFreqStart     *float64 `xml:"TxFreqStart"`
	TxFMRate        *float64 `xml:"TxFMRate"`
	RcvDemodType    string   `xml:"RcvDemodType"`
	RcvWindowLength *float64 `xml:"RcvWindowLength"`
	ADCSampleRate   *float64 `xml:"ADCSampleRate"`
	RcvIFBandwidth  *float64 `xml:"RcvIFBandwidth"`
	RcvFreqStart    *float64 `xml:"RcvFreqStart"`
	RcvFMRate       *float64 `xml:"RcvFMRate"`
}

// TxSequence holds the indexed transmit steps.
type TxSequence struct {
	Size    int      `xml:"size,attr"`
	TxSteps []TxStep `xml:"TxStep"`
}

// TxStep is one transmit step.
type TxStep struct {
	Index          int    `xml:"index,attr"`
	WFIndex        *int   `xml:"WFIndex"`
	TxPolarization string `xml:"TxPolarization"`
}

// RcvChannels holds the indexed receive channel parameters.
type RcvChannels struct {
	Size           int              `xml:"size,attr"`
	ChanParameters []ChanParameters `xml:"ChanParameters"`
}

// ChanParameters is one receive channel description.
type ChanParameters struct {
	Index            int    `xml:"index,attr"`
	TxRcvPolarization string `xml:"TxRcvPolarization"`
	RcvAPCIndex      *int64 `xml:"RcvAPCIndex"`
}

// Area is the imaged ground area.
type Area struct {
	Corner Corner `xml:"Corner"`
	Plane  *Plane `xml:"Plane"`
}

// Corner holds the indexed area corner points.
type Corner struct {
	ACPs []ACP `xml:"ACP"`
}

// ACP is one indexed area corner point.
type ACP struct {
	Index int     `xml:"index,attr"`
	Lat   float64 `xml:"Lat"`
	Lon   float64 `xml:"Lon"`
	HAE   float64 `xml:"HAE"`
}

// Plane is the area's reference plane.
type Plane struct {
	RefPt RefPt `xml:"RefPt"`
	XDir  XDir  `xml:"XDir"`
	YDir  YDir  `xml:"YDir"`
}

// RefPt is the plane's reference point.
type RefPt struct {
	Name   string  `xml:"name,attr"`
	ECF    XYZ     `xml:"ECF"`
	Line   float64 `xml:"Line"`
	Sample float64 `xml:"Sample"`
}

// XDir spans the plane's first direction.
type XDir struct {
	UVectECF    XYZ     `xml:"UVectECF"`
	LineSpacing float64 `xml:"LineSpacing"`
	NumLines    int64   `xml:"NumLines"`
	FirstLine   int64   `xml:"FirstLine"`
}

// YDir spans the plane's second direction.
type YDir struct {
	UVectECF      XYZ     `xml:"UVectECF"`
	SampleSpacing float64 `xml:"SampleSpacing"`
	NumSamples    int64   `xml:"NumSamples"`
	FirstSample   int64   `xml:"FirstSample"`
}

// ImageFormation describes the processing that formed the image.
type ImageFormation struct {
	RcvChanProc           RcvChanProc  `xml:"RcvChanProc"`
	TxRcvPolarizationProc string       `xml:"TxRcvPolarizationProc"`
	TStartProc            float64      `xml:"TStartProc"`
	TEndProc              float64      `xml:"TEndProc"`
	TxFrequencyProc       *TxFreqProc  `xml:"TxFrequencyProc"`
	SegmentIdentifier     string       `xml:"SegmentIdentifier"`
	ImageFormAlgo         string       `xml:"ImageFormAlgo"`
	STBeamComp            string       `xml:"STBeamComp"`
	ImageBeamComp         string       `xml:"ImageBeamComp"`
	AzAutofocus           string       `xml:"AzAutofocus"`
	RgAutofocus           string       `xml:"RgAutofocus"`
	Processings           []Processing `xml:"Processing"`
	PolarizationCal       *PolCal      `xml:"PolarizationCalibration"`
}

// RcvChanProc names the receive channels processed together.
type RcvChanProc struct {
	NumChanProc    int64    `xml:"NumChanProc"`
	PRFScaleFactor *float64 `xml:"PRFScaleFactor"`
	ChanIndices    []int    `xml:"ChanIndex"`
}

// TxFreqProc is the processed frequency span.
type TxFreqProc struct {
	MinProc float64 `xml:"MinProc"`
	MaxProc float64 `xml:"MaxProc"`
}

// Processing records one processing step.
type Processing struct {
	Type       string      `xml:"Type"`
	Applied    bool        `xml:"Applied"`
	Parameters []Parameter `xml:"Parameter"`
}

// PolCal is the polarization calibration applied.
type PolCal struct {
	DistortCorrectionApplied bool       `xml:"DistortCorrectionApplied"`
	Distortion               Distortion `xml:"Distortion"`
}

// Distortion is the polarization distortion matrix.
type Distortion struct {
	CalibrationDate string   `xml:"CalibrationDate"`
	A               float64  `xml:"A"`
	F1              Cmplx    `xml:"F1"`
	Q1              Cmplx    `xml:"Q1"`
	Q2              Cmplx    `xml:"Q2"`
	F2              Cmplx    `xml:"F2"`
	Q3              Cmplx    `xml:"Q3"`
	Q4              Cmplx    `xml:"Q4"`
	GainErrorA      *float64 `xml:"GainErrorA"`
	GainErrorF1     *float64 `xml:"GainErrorF1"`
	GainErrorF2     *float64 `xml:"GainErrorF2"`
	PhaseErrorF1    *float64 `xml:"PhaseErrorF1"`
	PhaseErrorF2    *float64 `xml:"PhaseErrorF2"`
}

// SCPCOA is the scene-center-point center-of-aperture geometry.
type SCPCOA struct {
	SCPTime        float64 `xml:"SCPTime"`
	ARPPos         XYZ     `xml:"ARPPos"`
	ARPVel         XYZ     `xml:"ARPVel"`
	ARPAcc         XYZ     `xml:"ARPAcc"`
	SideOfTrack    string  `xml:"SideOfTrack"`
	SlantRange     float64 `xml:"SlantRange"`
	GroundRange    float64 `xml:"GroundRange"`
	DopplerConeAng float64 `xml:"DopplerConeAng"`
	GrazeAng       float64 `xml:"GrazeAng"`
	IncidenceAng   float64 `xml:"IncidenceAng"`
	TwistAng       float64 `xml:"TwistAng"`
	SlopeAng       float64 `xml:"SlopeAng"`
	AzimAng        float64 `xml:"AzimAng"`
	LayoverAng     float64 `xml:"LayoverAng"`
}

// Radiometric holds the radiometric calibration polynomials.
type Radiometric struct {
	NoiseLevel      *NoiseLevel `xml:"NoiseLevel"`
	RCSSFPoly       *Poly2D     `xml:"RCSSFPoly"`
	SigmaZeroSFPoly *Poly2D     `xml:"SigmaZeroSFPoly"`
	BetaZeroSFPoly  *Poly2D     `xml:"BetaZeroSFPoly"`
	GammaZeroSFPoly *Poly2D     `xml:"GammaZeroSFPoly"`
}

// NoiseLevel is the reference noise polynomial.
type NoiseLevel struct {
	NoiseLevelType string `xml:"NoiseLevelType"`
	NoisePoly      Poly2D `xml:"NoisePoly"`
}

// Antenna holds the antenna parameter sets.
type Antenna struct {
	Tx     *AntParams `xml:"Tx"`
	Rcv    *AntParams `xml:"Rcv"`
	TwoWay *AntParams `xml:"TwoWay"`
}

// AntParams is one antenna description.
type AntParams struct {
	XAxisPoly      XYZPoly        `xml:"XAxisPoly"`
	YAxisPoly      XYZPoly        `xml:"YAxisPoly"`
	FreqZero       float64        `xml:"FreqZero"`
	EBFreqShift    *bool          `xml:"EBFreqShift"`
	MLFreqDilation *bool          `xml:"MLFreqDilation"`
	GainBSPoly     *Poly1D        `xml:"GainBSPoly"`
	Array          *GainPhasePoly `xml:"Array"`
	Elem           *GainPhasePoly `xml:"Elem"`
}

// GainPhasePoly pairs gain and phase surface polynomials.
type GainPhasePoly struct {
	GainPoly  Poly2D `xml:"GainPoly"`
	PhasePoly Poly2D `xml:"PhasePoly"`
}

// ErrorStatistics holds the error composite and components.
type ErrorStatistics struct {
	CompositeSCP *CompositeSCP `xml:"CompositeSCP"`
	Components   *Components   `xml:"Components"`
	Parameters   []Parameter   `xml:"AdditionalParms>Parameter"`
}

// CompositeSCP is the composite error at the scene center point.
type CompositeSCP struct {
	Rg   float64 `xml:"Rg"`
	Az   float64 `xml:"Az"`
	RgAz float64 `xml:"RgAz"`
}

// Components breaks the error budget down by source.
type Components struct {
	PosVelErr  PosVelErr   `xml:"PosVelErr"`
	RadarSensor RadarSensor `xml:"RadarSensor"`
}

// PosVelErr is the position and velocity error description.
type PosVelErr struct {
	Frame string  `xml:"Frame"`
	P1    float64 `xml:"P1"`
	P2    float64 `xml:"P2"`
	P3    float64 `xml:"P3"`
	V1    float64 `xml:"V1"`
	V2    float64 `xml:"V2"`
	V3    float64 `xml:"V3"`
}

// RadarSensor is the sensor error description.
type RadarSensor struct {
	RangeBias       *float64 `xml:"RangeBias"`
	ClockFreqSF     *float64 `xml:"ClockFreqSF"`
	TransmitFreqSF  *float64 `xml:"TransmitFreqSF"`
	RangeBiasDecorr *Decorr  `xml:"RangeBiasDecorr"`
}

// Decorr is a decorrelation description.
type Decorr struct {
	CorrCoefZero float64 `xml:"CorrCoefZero"`
	DecorrRate   float64 `xml:"DecorrRate"`
}

// MatchInfo relates this collection to others.
type MatchInfo struct {
	NumMatchTypes int         `xml:"NumMatchTypes"`
	MatchTypes    []MatchType `xml:"MatchType"`
}

// MatchType is one match relationship.
type MatchType struct {
	Index               int               `xml:"index,attr"`
	TypeID              string            `xml:"TypeID"`
	CurrentIndex        *int              `xml:"CurrentIndex"`
	NumMatchCollections int               `xml:"NumMatchCollections"`
	MatchCollections    []MatchCollection `xml:"MatchCollection"`
}

// MatchCollection is one matched collection reference.
type MatchCollection struct {
	Index      int         `xml:"index,attr"`
	CoreName   string      `xml:"CoreName"`
	MatchIndex *int        `xml:"MatchIndex"`
	Parameters []Parameter `xml:"Parameter"`
}

// RgAzComp is the range-azimuth compression algorithm section.
type RgAzComp struct {
	AzSF    float64 `xml:"AzSF"`
	KazPoly Poly1D  `xml:"KazPoly"`
}

// PFA is the polar format algorithm section.
type PFA struct {
	FPN               XYZ       `xml:"FPN"`
	IPN               XYZ       `xml:"IPN"`
	PolarAngRefTime   float64   `xml:"PolarAngRefTime"`
	PolarAngPoly      Poly1D    `xml:"PolarAngPoly"`
	SpatialFreqSFPoly Poly1D    `xml:"SpatialFreqSFPoly"`
	Krg1              float64   `xml:"Krg1"`
	Krg2              float64   `xml:"Krg2"`
	Kaz1              float64   `xml:"Kaz1"`
	Kaz2              float64   `xml:"Kaz2"`
	STDeskew          *STDeskew `xml:"STDeskew"`
}

// STDeskew records the slow-time deskew applied during PFA.
type STDeskew struct {
	Applied       bool   `xml:"Applied"`
	STDSPhasePoly Poly2D `xml:"STDSPhasePoly"`
}

// RMA is the range migration algorithm section.
type RMA struct {
	RMAlgoType string  `xml:"RMAlgoType"`
	ImageType  string  `xml:"ImageType"`
	RMAT       *RMAlgo `xml:"RMAT"`
	RMCR       *RMAlgo `xml:"RMCR"`
	INCA       *INCA   `xml:"INCA"`
}

// RMAlgo is the RMAT/RMCR variant payload.
type RMAlgo struct {
	PosRef        XYZ     `xml:"PosRef"`
	VelRef        XYZ     `xml:"VelRef"`
	DopConeAngRef float64 `xml:"DopConeAngRef"`
}

// INCA is the imaging-near-closest-approach variant payload.
type INCA struct {
	TimeCAPoly      Poly1D  `xml:"TimeCAPoly"`
	R0              float64 `xml:"R0"`
	FreqZero        float64 `xml:"FreqZero"`
	DRateSFPoly     Poly2D  `xml:"DRateSFPoly"`
	DopCentroidPoly *Poly2D `xml:"DopCentroidPoly"`
	DopCentroidCOA  *bool   `xml:"DopCentroidCOA"`
}
