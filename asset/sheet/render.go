package sheet

import (
	"image"

	"golang.org/x/image/draw"
)

// Render draws the labels and frames of strips at the positions planned in layout.
func Render(layout Layout, strips []Strip, font *BitmapFont) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(BackgroundColor), image.Point{}, draw.Src)

	for i, strip := range strips {
		label := layout.Labels[i]
		font.DrawString(img, strip.Name, label.X, label.Y, LabelColor)
		for f, frame := range strip.Frames {
			cell := layout.Cells[i][f]
			// the cell is cleared first, so copying is the same as blending onto it
			draw.Draw(img, cell, frame, frame.Bounds().Min, draw.Src)
		}
	}
	return img
}
