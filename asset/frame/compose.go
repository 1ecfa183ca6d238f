package frame

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"golang.org/x/image/draw"
)

func blitPiece(dst *image.NRGBA, texture *image.NRGBA, placement Placement) {
	if !placement.Rotate && !placement.FlipX && !placement.FlipY {
		draw.Copy(dst, placement.Dst.Min, texture, placement.Src, draw.Over, nil)
		return
	}

	width, height := placement.Dst.Dx(), placement.Dst.Dy()
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			dp := placement.Dst.Min.Add(image.Pt(dx, dy))
			if !dp.In(dst.Bounds()) {
				continue
			}
			fx, fy := dx, dy
			if placement.FlipX {
				fx = width - 1 - dx
			}
			if placement.FlipY {
				fy = height - 1 - dy
			}
			sp := placement.Src.Min.Add(image.Pt(fx, fy))
			if placement.Rotate {
				sp = placement.Src.Min.Add(image.Pt(fy, fx))
			}
			if !sp.In(texture.Bounds()) {
				continue
			}
			dst.SetNRGBA(dp.X, dp.Y, texture.NRGBAAt(sp.X, sp.Y))
		}
	}
}

// Blit draws every piece of frame into dst with the frame's top-left corner at at.
func Blit(dst *image.NRGBA, textures []*image.NRGBA, frame Frame, at image.Point) (Report, error) {
	report := Report{}
	for i, piece := range frame.Pieces {
		if int(piece.TextureID) >= len(textures) {
			return report, aerr.InvalidLayout("frame.Blit", -1, "piece %d references texture %d of %d", i, piece.TextureID, len(textures))
		}
		placement, ok := Place(frame.Header, piece)
		if !ok {
			report.Skipped = append(report.Skipped, i)
			continue
		}
		placement.Dst = placement.Dst.Add(at)
		blitPiece(dst, textures[piece.TextureID], placement)
		report.Placements = append(report.Placements, placement)
	}
	return report, nil
}

// Compose renders frame onto a new transparent surface of the frame's size.
func Compose(frame Frame, textures []*image.NRGBA) (*image.NRGBA, Report, error) {
	img := image.NewNRGBA(image.Rect(0, 0, int(frame.Header.Width), int(frame.Header.Height)))
	report, err := Blit(img, textures, frame, image.Point{})
	if err != nil {
		return nil, report, err
	}
	return img, report, nil
}
