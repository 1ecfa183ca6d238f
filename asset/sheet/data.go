// Package sheet packs the frames of every animation into one labelled sheet and describes the
// result in the compact binary animation format.
package sheet

import (
	"image"
	"image/color"
)

type (
	// Strip is one animation: its name and its frame surfaces in playback order. Surfaces may be
	// shared between strips.
	Strip struct {
		Name   string
		Frames []*image.NRGBA
	}
	Layout struct {
		Width  int
		Height int
		// Labels holds the top-left corner of each strip's name.
		Labels []image.Point
		// Cells holds one rectangle per frame of each strip.
		Cells [][]image.Rectangle
	}

	Frame struct {
		Sheet    uint8  `json:"sheet"`
		Duration uint16 `json:"duration"`
		X        uint16 `json:"x"`
		Y        uint16 `json:"y"`
		W        uint16 `json:"w"`
		H        uint16 `json:"h"`
		PivotX   int16  `json:"pivot_x"`
		PivotY   int16  `json:"pivot_y"`
	}
	Animation struct {
		Name      string  `json:"name"`
		Speed     uint16  `json:"speed"`
		LoopFrame uint8   `json:"loop_frame"`
		Flags     uint8   `json:"flags"`
		Frames    []Frame `json:"frames"`
	}
	Description struct {
		Sheets     []string    `json:"sheets"`
		Animations []Animation `json:"animations"`
	}
)

const (
	MaxRowWidth = 1024
	Margin      = 1
	GlyphSize   = 8
	LabelHeight = GlyphSize

	DescriptionMagic uint32 = 0x00525053
	DefaultDuration         = 0x100
	DefaultSpeed            = 0x100
)

var (
	BackgroundColor = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	LabelColor      = color.NRGBA{R: 0xF2, G: 0xD1, B: 0x41, A: 0xFF}
)
