package sicd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tacscale/nitf"
	"github.com/tacscale/nitf/errs"
	"github.com/tacscale/nitf/sicd"
)

const miniDoc = `<SICD xmlns="urn:SICD:0.5.0">
  <CollectionInfo>
    <CollectorName>SENSOR_B</CollectorName>
    <CoreName>MINI</CoreName>
    <RadarMode><ModeType>STRIPMAP</ModeType></RadarMode>
  </CollectionInfo>
  <ImageData>
    <PixelType>RE16I_IM16I</PixelType>
    <NumRows>16</NumRows>
    <NumCols>16</NumCols>
    <FirstRow>0</FirstRow>
    <FirstCol>0</FirstCol>
    <FullImage><NumRows>16</NumRows><NumCols>16</NumCols></FullImage>
    <SCPPixel><Row>8</Row><Col>8</Col></SCPPixel>
  </ImageData>
</SICD>`

func TestFromNitf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sicd.nitf")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	doc := []byte(miniDoc)

	out := nitf.New()
	des := nitf.NewDataExtensionSegment()
	des.Header.DESID.Val = "XML_DATA_CONTENT"
	des.DataSize = uint64(len(doc))
	out.AddDataExtension(des)

	_, err = out.WriteHeaders(f)
	require.NoError(t, err)
	_, err = des.WriteData(f, doc)
	require.NoError(t, err)

	in, err := nitf.ReadNitf(path)
	require.NoError(t, err)
	defer in.Close()

	meta, err := sicd.FromNitf(in)
	require.NoError(t, err)
	require.Equal(t, sicd.V0_5_0, meta.Version)
	require.Equal(t, "SENSOR_B", meta.CollectionInfo.CollectorName)
	require.EqualValues(t, 16, meta.ImageData.NumRows)
}

func TestFromNitfWithoutSegments(t *testing.T) {
	_, err := sicd.FromNitf(nitf.New())
	require.ErrorIs(t, err, errs.ErrFatal)
}
