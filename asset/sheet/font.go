package sheet

import (
	"image"
	"image/color"
	"io"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const GlyphCount = 128

// BitmapFont is an 8x8 font for the first 128 character codes. Bit b of row r of a glyph lights
// the pixel at (b, r).
type BitmapFont struct {
	Glyphs [GlyphCount][GlyphSize]uint8
}

// LoadBitmapFont reads GlyphCount glyphs of GlyphSize row bytes each.
func LoadBitmapFont(r io.Reader) (*BitmapFont, error) {
	bs := make([]byte, GlyphCount*GlyphSize)
	n, err := io.ReadFull(r, bs)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, aerr.TruncatedRead("sheet.LoadBitmapFont", 0, len(bs), n)
		}
		return nil, errors.Wrap(err, "sheet.LoadBitmapFont error")
	}
	f := BitmapFont{}
	for c := range f.Glyphs {
		copy(f.Glyphs[c][:], bs[c*GlyphSize:])
	}
	return &f, nil
}

// DefaultFont rasterizes the printable ASCII glyphs of basicfont.Face7x13 and scales each one
// into an 8x8 cell.
func DefaultFont() *BitmapFont {
	f := BitmapFont{}
	face := basicfont.Face7x13
	for c := ' '; c < GlyphCount-1; c++ {
		glyph := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
		drawer := font.Drawer{
			Dst:  glyph,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(0, face.Ascent),
		}
		drawer.DrawString(string(c))

		cell := image.NewAlpha(image.Rect(0, 0, GlyphSize, GlyphSize))
		draw.NearestNeighbor.Scale(cell, cell.Bounds(), glyph, glyph.Bounds(), draw.Src, nil)
		for y := 0; y < GlyphSize; y++ {
			for x := 0; x < GlyphSize; x++ {
				if cell.AlphaAt(x, y).A >= 0x80 {
					f.Glyphs[c][y] |= 1 << x
				}
			}
		}
	}
	return &f
}

// DrawString draws s with its top-left corner at (x, y). Pixels outside dst and bytes without
// a glyph are skipped.
func (r *BitmapFont) DrawString(dst draw.Image, s string, x int, y int, c color.Color) {
	bounds := dst.Bounds()
	for i := 0; i < len(s); i++ {
		if s[i] >= GlyphCount {
			continue
		}
		glyph := r.Glyphs[s[i]]
		for by := 0; by < GlyphSize; by++ {
			for bx := 0; bx < GlyphSize; bx++ {
				if glyph[by]&(1<<bx) == 0 {
					continue
				}
				p := image.Pt(x+bx+i*GlyphSize, y+by)
				if p.In(bounds) {
					dst.Set(p.X, p.Y, c)
				}
			}
		}
	}
}
