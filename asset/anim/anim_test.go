package anim

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type DecodeTestSuite struct {
	suite.Suite
	R *require.Assertions

	animations []Animation
	frames     []frame.Frame
	textures   []*image.NRGBA
	bs         []byte
}

func (suite *DecodeTestSuite) SetupTest() {
	suite.R = suite.Require()

	texture := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for i := 3; i < len(texture.Pix); i += 4 {
		texture.Pix[i] = 0xFF
	}
	texture.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})

	suite.textures = []*image.NRGBA{texture}
	suite.frames = []frame.Frame{
		{Header: frame.Header{Magic: frame.MagicNumber, Width: 32, Height: 16}},
		{Header: frame.Header{Magic: frame.MagicNumber, Width: 8, Height: 8}},
		{Header: frame.Header{Magic: frame.MagicNumber, Width: 16, Height: 16}},
	}
	suite.animations = []Animation{
		{Name: "Idle", Frames: []FrameRef{{FrameID: 0}, {FrameID: 1, OffsetX: -4, OffsetY: 2}}},
		{Name: "Run", Frames: []FrameRef{{FrameID: 2}, {FrameID: 2}, {FrameID: 0}}},
	}

	bs, err := Encode(suite.animations, suite.frames, suite.textures)
	suite.R.NoError(err)
	suite.bs = bs
}

func (suite *DecodeTestSuite) TestDecode() {
	asset, err := Decode(lbytes.NewBytesReader(suite.bs))
	suite.R.NoError(err)

	suite.Equal(uint8(1), asset.Header.Version)
	suite.Equal(uint32(2), asset.UnknownCount)
	suite.Len(asset.Entries, 2)
	suite.Equal("Idle", asset.Entries[0].Name)
	suite.Equal("Run", asset.Entries[1].Name)
	suite.Equal(suite.animations[0].Frames, asset.Entries[0].Frames)
	suite.Equal(suite.animations[1].Frames, asset.Entries[1].Frames)
	suite.Equal(float32(1), asset.Entries[0].Record.Speed)
	suite.Len(asset.Frames, 3)
	suite.Equal(uint32(8), asset.Frames[1].Header.Width)
	suite.Len(asset.Textures, 1)
}

func (suite *DecodeTestSuite) TestRenderFrames() {
	asset, err := Decode(lbytes.NewBytesReader(suite.bs))
	suite.R.NoError(err)

	surfaces, reports, err := RenderFrames(*asset)
	suite.R.NoError(err)
	suite.R.Len(surfaces, 3)
	suite.Len(reports, 3)
	suite.Equal(image.Rect(0, 0, 8, 8), surfaces[1].Bounds())
	suite.Equal(color.NRGBA{R: 0xFF, A: 0xFF}, surfaces[0].NRGBAAt(0, 0))
	suite.Equal(color.NRGBA{A: 0xFF}, surfaces[2].NRGBAAt(15, 15))
}

func (suite *DecodeTestSuite) TestFrameOutOfRange() {
	animations := []Animation{{Name: "Bad", Frames: []FrameRef{{FrameID: 3}}}}
	bs, err := Encode(animations, suite.frames, suite.textures)
	suite.R.NoError(err)

	_, err = Decode(lbytes.NewBytesReader(bs))
	suite.R.Error(err)
	suite.True(aerr.IsKind(err, aerr.KindInvalidLayout))
}

func (suite *DecodeTestSuite) TestStringOutOfRange() {
	bs := append([]byte(nil), suite.bs...)
	recordOffset := HeaderSize + 4 + 4
	binary.LittleEndian.PutUint32(bs[recordOffset:], uint32(len(bs)+10))

	_, err := Decode(lbytes.NewBytesReader(bs))
	suite.R.Error(err)
	suite.True(aerr.IsKind(err, aerr.KindStringOutOfRange))
}

func (suite *DecodeTestSuite) TestTruncatedFrameRefs() {
	bs := append([]byte(nil), suite.bs...)
	frameCountOffset := HeaderSize + 4 + 4 + 12
	binary.LittleEndian.PutUint32(bs[frameCountOffset:], 0xFFFFFFF)

	_, err := Decode(lbytes.NewBytesReader(bs))
	suite.R.Error(err)
	suite.True(aerr.IsKind(err, aerr.KindTruncatedRead))
}

func (suite *DecodeTestSuite) TestBadMagic() {
	bs := append([]byte(nil), suite.bs...)
	bs[0] ^= 0xFF

	_, err := Decode(lbytes.NewBytesReader(bs))
	suite.True(aerr.IsKind(err, aerr.KindBadMagic))
}

func TestDecodeTestSuite(t *testing.T) {
	suite.Run(t, new(DecodeTestSuite))
}

func TestRenderFrames_NoTextures(t *testing.T) {
	bs, err := Encode(nil, []frame.Frame{{Header: frame.Header{Width: 8, Height: 8}}}, nil)
	require.NoError(t, err)

	asset, err := Decode(lbytes.NewBytesReader(bs))
	require.NoError(t, err)
	surfaces, _, err := RenderFrames(*asset)
	require.NoError(t, err)
	assert.Nil(t, surfaces)
}

func TestEncodeHeader_Size(t *testing.T) {
	assert.Len(t, EncodeHeader(Header{}), HeaderSize)
}
