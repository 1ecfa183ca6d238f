// Package frame decodes frames and composites their pieces from texture surfaces.
package frame

import (
	"image"
)

type (
	Header struct {
		Magic      uint32 `json:"magic"`
		Unknown    uint16 `json:"unknown"`
		PieceCount uint16 `json:"piece_count"`
		Width      uint32 `json:"width"`
		Height     uint32 `json:"height"`
		HeaderSize uint32 `json:"header_size"`
	}
	// Vec holds the two variants of one corner coordinate.
	Vec [2]uint16
	// Piece copies a quadrilateral of a texture into the frame. Corners are indexed by
	// CornerLeft, CornerRight, CornerTop and CornerBottom; destination y is bottom-up.
	Piece struct {
		TextureID uint16 `json:"texture_id"`
		Dst       [4]Vec `json:"dst"`
		Src       [4]Vec `json:"src"`
	}
	Frame struct {
		Header Header  `json:"header"`
		Pieces []Piece `json:"pieces"`
	}
	// Placement is a piece resolved into top-down rectangles.
	Placement struct {
		TextureID int             `json:"texture_id"`
		Src       image.Rectangle `json:"src"`
		Dst       image.Rectangle `json:"dst"`
		Rotate    bool            `json:"rotate"`
		FlipX     bool            `json:"flip_x"`
		FlipY     bool            `json:"flip_y"`
	}
	// Report lists what a blit did with each piece.
	Report struct {
		Placements []Placement `json:"placements"`
		Skipped    []int       `json:"skipped"`
	}
)

const (
	MagicNumber  uint32 = 0x1B3C6AB1
	HeaderSize          = 20
	PieceSize           = 34
	MaxDimension        = 8192
)

const (
	CornerLeft = iota
	CornerRight
	CornerTop
	CornerBottom
)

func (r Header) HasMagic() bool {
	return r.Magic == MagicNumber
}
