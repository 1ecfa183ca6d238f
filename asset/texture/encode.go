package texture

import (
	"image"
	"math/bits"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/pkg/errors"
)

// Swizzle is the inverse of Unpack: it packs img into the 565 block stream and the alpha nibble
// stream. Only the top bits of each channel survive.
func Swizzle(img *image.NRGBA, sizeFactor uint8) ([]byte, []byte, error) {
	bounds := img.Bounds()
	entry := Entry{
		SizeFactor: sizeFactor,
		BandCount:  uint8(bounds.Dy() / BlockSize),
	}
	if err := validate(entry); err != nil {
		return nil, nil, err
	}
	if bounds.Dx() != entry.Width() || bounds.Dy() != entry.Height() || bounds.Dy() > 255*BlockSize {
		return nil, nil, aerr.InvalidLayout("texture.Swizzle", -1, "%dx%d does not fit size factor %d", bounds.Dx(), bounds.Dy(), sizeFactor)
	}

	colors := make([]byte, entry.ColorSize())
	alphas := make([]byte, entry.AlphaSize())
	eachPixel(
		entry,
		func(i int, x int, y int) {
			c := img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
			colors[i*2] = uint8(v)
			colors[i*2+1] = uint8(v >> 8)
			alphas[i>>1] |= (c.A >> 4) << ((i & 1) * 4)
		},
	)
	return colors, alphas, nil
}

func EncodeTable(table Table) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(table.Header)
	for _, entry := range table.Entries {
		w.WriteStruct(entry)
	}
	return w.Bytes()
}

// Pack builds a complete texture table holding surfaces. Every surface needs a power-of-two width
// of at least 8 and a height that is a multiple of 8.
func Pack(surfaces []*image.NRGBA) ([]byte, error) {
	entries := make([]Entry, 0, len(surfaces))
	body := lbytes.NewWriter()
	dataStart := TableHeaderSize + EntrySize*len(surfaces)
	for i, surface := range surfaces {
		width := surface.Bounds().Dx()
		if width <= 0 || width&(width-1) != 0 {
			return nil, aerr.InvalidLayout("texture.Pack", -1, "texture %d width %d is not a power of two", i, width)
		}
		sizeFactor := uint8(bits.TrailingZeros(uint(width)))
		colors, alphas, err := Swizzle(surface, sizeFactor)
		if err != nil {
			return nil, errors.Wrapf(err, "texture.Pack error for texture %d", i)
		}

		entry := Entry{
			SizeFactor:  sizeFactor,
			BandCount:   uint8(surface.Bounds().Dy() / BlockSize),
			ColorOffset: uint32(dataStart + body.Len()),
		}
		body.Write(colors)
		entry.AlphaOffset = uint32(dataStart + body.Len())
		body.Write(alphas)
		entries = append(entries, entry)
	}

	table := Table{
		Header: TableHeader{
			Magic:            MagicNumber,
			TextureCount:     uint32(len(surfaces)),
			HeaderSize:       TableHeaderSize,
			BodySize:         uint32(body.Len()),
			PixelStartOffset: uint32(dataStart),
		},
		Entries: entries,
	}
	return append(EncodeTable(table), body.Bytes()...), nil
}
