package sheet

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/samber/lo"
)

// Describe records where every frame landed. Each animation plays at DefaultSpeed, loops to its
// first frame and pivots each frame around its center.
func Describe(layout Layout, strips []Strip, sheetPath string) Description {
	animations := lo.Map(
		strips,
		func(strip Strip, i int) Animation {
			return Animation{
				Name:      strip.Name,
				Speed:     DefaultSpeed,
				LoopFrame: 0,
				Flags:     0,
				Frames: lo.Map(
					layout.Cells[i],
					func(cell image.Rectangle, _ int) Frame {
						w, h := cell.Dx(), cell.Dy()
						return Frame{
							Sheet:    0,
							Duration: DefaultDuration,
							X:        uint16(cell.Min.X),
							Y:        uint16(cell.Min.Y),
							W:        uint16(w),
							H:        uint16(h),
							PivotX:   int16(w / -2),
							PivotY:   int16(h / -2),
						}
					},
				),
			}
		},
	)
	return Description{
		Sheets:     []string{sheetPath},
		Animations: animations,
	}
}

func EncodeDescription(description Description) []byte {
	w := lbytes.NewWriter()
	w.WriteUInt32(DescriptionMagic)
	w.WriteUInt32(0)
	w.WriteUInt8(uint8(len(description.Sheets)))
	for _, sheet := range description.Sheets {
		w.WriteHeaderedString(sheet)
	}
	// no collision boxes
	w.WriteUInt8(0)

	w.WriteUInt16(uint16(len(description.Animations)))
	for _, animation := range description.Animations {
		w.WriteHeaderedString(animation.Name)
		w.WriteUInt16(uint16(len(animation.Frames)))
		w.WriteUInt16(animation.Speed)
		w.WriteUInt8(animation.LoopFrame)
		w.WriteUInt8(animation.Flags)
		for _, frame := range animation.Frames {
			w.WriteUInt8(frame.Sheet)
			w.WriteUInt16(frame.Duration)
			w.WriteUInt16(0)
			w.WriteUInt16(frame.X)
			w.WriteUInt16(frame.Y)
			w.WriteUInt16(frame.W)
			w.WriteUInt16(frame.H)
			w.WriteInt16(frame.PivotX)
			w.WriteInt16(frame.PivotY)
		}
	}
	return w.Bytes()
}
