// Package anim reads the multi-animation sprite format: named animations referencing a shared
// frame list and texture table.
package anim

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
)

type (
	Header struct {
		Magic              uint32   `json:"magic"`
		Padding            [3]uint8 `json:"padding"`
		Version            uint8    `json:"version"`
		HeaderSize         uint32   `json:"header_size"`
		EntryCount         uint16   `json:"entry_count"`
		FrameCount         uint16   `json:"frame_count"`
		EntryListOffset    uint32   `json:"entry_list_offset"`
		FrameListOffset    uint32   `json:"frame_list_offset"`
		TextureTableOffset uint32   `json:"texture_table_offset"`
	}
	EntryRecord struct {
		StringOffset    uint32  `json:"string_offset"`
		Unknown         uint32  `json:"unknown"`
		Speed           float32 `json:"speed"`
		FrameCount      uint32  `json:"frame_count"`
		FrameDataOffset uint32  `json:"frame_data_offset"`
	}
	// FrameRef instances a frame inside an animation. The offsets are kept but not used for
	// the sheet.
	FrameRef struct {
		FrameID uint16 `json:"frame_id"`
		OffsetY int16  `json:"offset_y"`
		OffsetX int16  `json:"offset_x"`
	}
	Entry struct {
		Name   string      `json:"name"`
		Record EntryRecord `json:"record"`
		Frames []FrameRef  `json:"frames"`
	}
	Asset struct {
		Header       Header
		UnknownCount uint32
		Entries      []Entry
		FrameOffsets []uint32
		Frames       []frame.Frame
		Table        texture.Table
		Textures     []*image.NRGBA
	}
)

const (
	MagicNumber     uint32 = 0xA04F877A
	HeaderSize             = 28
	EntryRecordSize        = 20
	FrameRefSize           = 6
)
