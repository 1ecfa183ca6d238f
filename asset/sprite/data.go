// Package sprite reads the single-frame image format.
package sprite

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
)

type (
	Header struct {
		Magic              uint32 `json:"magic"`
		Unknown1           uint32 `json:"unknown_1"`
		UnknownCount       uint32 `json:"unknown_count"`
		Unknown2           uint32 `json:"unknown_2"`
		FrameOffset        uint32 `json:"frame_offset"`
		TextureTableOffset uint32 `json:"texture_table_offset"`
	}
	Asset struct {
		Header   Header
		Frame    frame.Frame
		Table    texture.Table
		Textures []*image.NRGBA
	}
)

const (
	MagicNumber uint32 = 0x39B40E6A
	HeaderSize         = 24
)
