package sprite

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
	"github.com/pkg/errors"
)

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	position := reader.Position()
	header := Header{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "sprite.DecodeHeader error")
	}
	if header.Magic != MagicNumber {
		return nil, aerr.BadMagic("sprite.DecodeHeader", position, MagicNumber, header.Magic)
	}
	return &header, nil
}

// Decode reads the header, the frame and the textures. Offsets are relative to the start of reader.
func Decode(reader *lbytes.Reader) (*Asset, error) {
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, err
	}
	fr, err := frame.Decode(reader, int64(header.FrameOffset))
	if err != nil {
		return nil, errors.Wrap(err, "sprite.Decode error")
	}
	table, textures, err := texture.Load(reader, int64(header.TextureTableOffset))
	if err != nil {
		return nil, errors.Wrap(err, "sprite.Decode error")
	}
	return &Asset{
		Header:   *header,
		Frame:    *fr,
		Table:    *table,
		Textures: textures,
	}, nil
}

// Render composes the frame. It returns a nil image when there are no textures to draw from.
func Render(asset Asset) (*image.NRGBA, frame.Report, error) {
	if len(asset.Textures) == 0 {
		return nil, frame.Report{}, nil
	}
	return frame.Compose(asset.Frame, asset.Textures)
}
