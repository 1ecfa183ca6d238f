package sprite

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
)

func EncodeHeader(header Header) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(header)
	return w.Bytes()
}

// Encode lays out a header, the frame and a texture table built from textures.
func Encode(fr frame.Frame, textures []*image.NRGBA) ([]byte, error) {
	table, err := texture.Pack(textures)
	if err != nil {
		return nil, err
	}
	frameBytes := frame.Encode(fr)
	header := Header{
		Magic:              MagicNumber,
		FrameOffset:        HeaderSize,
		TextureTableOffset: uint32(HeaderSize + len(frameBytes)),
	}
	bs := EncodeHeader(header)
	bs = append(bs, frameBytes...)
	bs = append(bs, table...)
	return bs, nil
}
