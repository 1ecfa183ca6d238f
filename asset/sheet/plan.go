package sheet

import (
	"image"
)

// Plan places every strip below the previous one. Each strip gets a label row, then its frames
// left to right with a one pixel gap, wrapping to a new row at MaxRowWidth.
func Plan(strips []Strip) Layout {
	layout := Layout{
		Width:  2 * Margin,
		Height: 2 * Margin,
		Labels: make([]image.Point, 0, len(strips)),
		Cells:  make([][]image.Rectangle, 0, len(strips)),
	}
	y := Margin
	for _, strip := range strips {
		layout.Labels = append(layout.Labels, image.Pt(Margin, y))
		y += LabelHeight + Margin
		layout.Width = max(layout.Width, Margin+GlyphSize*len(strip.Name)+Margin)
		layout.Height = max(layout.Height, y)

		x := Margin
		tallest := 0
		cells := make([]image.Rectangle, 0, len(strip.Frames))
		for f, img := range strip.Frames {
			w, h := img.Bounds().Dx(), img.Bounds().Dy()
			if f > 0 && x+w > MaxRowWidth {
				x = Margin
				y += tallest + Margin
				tallest = 0
			}
			tallest = max(tallest, h)
			layout.Width = max(layout.Width, x+w+Margin)
			layout.Height = max(layout.Height, y+h+Margin)
			cells = append(cells, image.Rect(x, y, x+w, y+h))
			x += w + Margin
		}
		layout.Cells = append(layout.Cells, cells)
		y += tallest + Margin
	}
	return layout
}
