package frame

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/pkg/errors"
)

// SynthesizePiece is the single piece of a frame that declares none: the whole texture 0,
// unflipped and unrotated.
func SynthesizePiece(width uint32, height uint32) Piece {
	w, h := uint16(width), uint16(height)
	return Piece{
		TextureID: 0,
		Dst:       [4]Vec{{0, 0}, {w, w}, {h, h}, {0, 0}},
		Src:       [4]Vec{{0, 0}, {w, w}, {0, 0}, {h, h}},
	}
}

// Decode reads the frame at offset. The magic number is not enforced.
func Decode(reader *lbytes.Reader, offset int64) (*Frame, error) {
	if err := reader.SeekTo(offset); err != nil {
		return nil, errors.Wrap(err, "frame.Decode error")
	}
	header := Header{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "frame.Decode error")
	}
	if header.Width > MaxDimension || header.Height > MaxDimension {
		return nil, aerr.InvalidLayout("frame.Decode", offset, "frame of %dx%d", header.Width, header.Height)
	}

	if header.PieceCount == 0 {
		return &Frame{
			Header: header,
			Pieces: []Piece{SynthesizePiece(header.Width, header.Height)},
		}, nil
	}

	if err := reader.SeekTo(offset + int64(header.HeaderSize)); err != nil {
		return nil, errors.Wrap(err, "frame.Decode error seeking to pieces")
	}
	pieces := make([]Piece, header.PieceCount)
	for i := range pieces {
		if err := reader.ReadStruct(&pieces[i]); err != nil {
			return nil, errors.Wrapf(err, "frame.Decode error reading piece %d", i)
		}
	}
	return &Frame{
		Header: header,
		Pieces: pieces,
	}, nil
}
