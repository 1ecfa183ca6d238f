package texture

import (
	"image"
	"image/color"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/pkg/errors"
)

// DecodeTable reads the table header at the cursor and the entries that follow it.
func DecodeTable(reader *lbytes.Reader) (*Table, error) {
	position := reader.Position()
	header := TableHeader{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "texture.DecodeTable error")
	}
	if header.Magic != MagicNumber {
		return nil, aerr.BadMagic("texture.DecodeTable", position, MagicNumber, header.Magic)
	}

	entries := make([]Entry, 0, header.TextureCount)
	for i := 0; i < int(header.TextureCount); i++ {
		entryPosition := reader.Position()
		entry := Entry{}
		if err := reader.ReadStruct(&entry); err != nil {
			return nil, errors.Wrapf(err, "texture.DecodeTable error reading entry %d", i)
		}
		if entry.Padding != 0 {
			return nil, aerr.UnexpectedPadding("texture.DecodeTable", entryPosition+3, uint64(entry.Padding))
		}
		entries = append(entries, entry)
	}

	return &Table{
		Header:  header,
		Entries: entries,
	}, nil
}

func validate(entry Entry) error {
	if entry.SizeFactor < MinSizeFactor || entry.SizeFactor > MaxSizeFactor {
		return aerr.InvalidLayout("texture.validate", -1, "size factor %d outside of [%d, %d]", entry.SizeFactor, MinSizeFactor, MaxSizeFactor)
	}
	return nil
}

// expand565 widens a packed 5-6-5 color by bit replication.
func expand565(v uint16) (uint8, uint8, uint8) {
	r := uint8(v >> 11 & 0x1F)
	g := uint8(v >> 5 & 0x3F)
	b := uint8(v & 0x1F)
	return r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2
}

// Unpack de-swizzles the color blocks and merges the alpha nibbles into one surface.
func Unpack(entry Entry, colors []byte, alphas []byte) (*image.NRGBA, error) {
	if err := validate(entry); err != nil {
		return nil, err
	}
	if len(colors) < entry.ColorSize() {
		return nil, aerr.TruncatedRead("texture.Unpack", int64(entry.ColorOffset), entry.ColorSize(), len(colors))
	}
	if len(alphas) < entry.AlphaSize() {
		return nil, aerr.TruncatedRead("texture.Unpack", int64(entry.AlphaOffset), entry.AlphaSize(), len(alphas))
	}

	img := image.NewNRGBA(image.Rect(0, 0, entry.Width(), entry.Height()))
	eachPixel(
		entry,
		func(i int, x int, y int) {
			r, g, b := expand565(uint16(colors[i*2]) | uint16(colors[i*2+1])<<8)
			code := alphas[i>>1] >> ((i & 1) * 4) & 0xF
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: code | code<<4})
		},
	)
	return img, nil
}

// LoadSurfaces unpacks every entry. Entry offsets are relative to tableOffset.
func LoadSurfaces(reader *lbytes.Reader, tableOffset int64, entries []Entry) ([]*image.NRGBA, error) {
	surfaces := make([]*image.NRGBA, 0, len(entries))
	for i, entry := range entries {
		if err := validate(entry); err != nil {
			return nil, errors.Wrapf(err, "texture.LoadSurfaces error for texture %d", i)
		}
		var colors, alphas []byte
		err := reader.WithCursor(
			tableOffset+int64(entry.ColorOffset),
			func() error {
				var err error
				colors, err = reader.ReadBytes(entry.ColorSize())
				return err
			},
		)
		if err != nil {
			return nil, errors.Wrapf(err, "texture.LoadSurfaces error reading colors of texture %d", i)
		}
		err = reader.WithCursor(
			tableOffset+int64(entry.AlphaOffset),
			func() error {
				var err error
				alphas, err = reader.ReadBytes(entry.AlphaSize())
				return err
			},
		)
		if err != nil {
			return nil, errors.Wrapf(err, "texture.LoadSurfaces error reading alphas of texture %d", i)
		}

		surface, err := Unpack(entry, colors, alphas)
		if err != nil {
			return nil, errors.Wrapf(err, "texture.LoadSurfaces error unpacking texture %d", i)
		}
		surfaces = append(surfaces, surface)
	}
	return surfaces, nil
}

// Load reads the table at tableOffset and unpacks all of its textures.
func Load(reader *lbytes.Reader, tableOffset int64) (*Table, []*image.NRGBA, error) {
	if err := reader.SeekTo(tableOffset); err != nil {
		return nil, nil, errors.Wrap(err, "texture.Load error")
	}
	table, err := DecodeTable(reader)
	if err != nil {
		return nil, nil, err
	}
	surfaces, err := LoadSurfaces(reader, tableOffset, table.Entries)
	if err != nil {
		return nil, nil, err
	}
	return table, surfaces, nil
}
