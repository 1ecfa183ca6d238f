package anim

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
	"github.com/samber/lo"
)

type Animation struct {
	Name   string
	Frames []FrameRef
}

func EncodeHeader(header Header) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(header)
	return w.Bytes()
}

// Encode lays out a complete asset: header, one reserved word, the unknown count, entry records,
// names, frame references, the frame list, frames and the texture table.
func Encode(animations []Animation, frames []frame.Frame, textures []*image.NRGBA) ([]byte, error) {
	table, err := texture.Pack(textures)
	if err != nil {
		return nil, err
	}

	const version = 1
	entryListOffset := HeaderSize + 4*version + 4
	namesOffset := entryListOffset + EntryRecordSize*len(animations)
	names := lbytes.NewWriter()
	for _, animation := range animations {
		names.WriteCString(animation.Name)
	}
	refsOffset := namesOffset + names.Len()
	refCount := lo.Reduce(
		animations,
		func(count int, animation Animation, _ int) int {
			return count + len(animation.Frames)
		},
		0,
	)
	frameListOffset := refsOffset + FrameRefSize*refCount
	framesOffset := frameListOffset + 4*len(frames)

	encodedFrames := lo.Map(
		frames,
		func(fr frame.Frame, _ int) []byte {
			return frame.Encode(fr)
		},
	)
	tableOffset := framesOffset + lo.Reduce(
		encodedFrames,
		func(size int, bs []byte, _ int) int {
			return size + len(bs)
		},
		0,
	)

	w := lbytes.NewWriter()
	w.Write(EncodeHeader(Header{
		Magic:              MagicNumber,
		Version:            version,
		HeaderSize:         HeaderSize,
		EntryCount:         uint16(len(animations)),
		FrameCount:         uint16(len(frames)),
		EntryListOffset:    uint32(entryListOffset),
		FrameListOffset:    uint32(frameListOffset),
		TextureTableOffset: uint32(tableOffset),
	}))
	w.WriteUInt32(0)
	w.WriteUInt32(uint32(len(animations)))

	nameOffset, refOffset := namesOffset, refsOffset
	for _, animation := range animations {
		w.WriteStruct(EntryRecord{
			StringOffset:    uint32(nameOffset),
			Speed:           1,
			FrameCount:      uint32(len(animation.Frames)),
			FrameDataOffset: uint32(refOffset),
		})
		nameOffset += len(animation.Name) + 1
		refOffset += FrameRefSize * len(animation.Frames)
	}
	w.Write(names.Bytes())
	for _, animation := range animations {
		for _, ref := range animation.Frames {
			w.WriteStruct(ref)
		}
	}

	frameOffset := framesOffset
	for _, bs := range encodedFrames {
		w.WriteUInt32(uint32(frameOffset))
		frameOffset += len(bs)
	}
	for _, bs := range encodedFrames {
		w.Write(bs)
	}
	w.Write(table)
	return w.Bytes(), nil
}
