package frame

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
)

// Encode writes frame with its pieces directly after a HeaderSize header. Header.PieceCount is
// written as given, so a zero-piece frame stays zero-piece.
func Encode(frame Frame) []byte {
	header := frame.Header
	header.HeaderSize = HeaderSize
	w := lbytes.NewWriter()
	w.WriteStruct(header)
	if header.PieceCount == 0 {
		return w.Bytes()
	}
	for _, piece := range frame.Pieces {
		w.WriteStruct(piece)
	}
	return w.Bytes()
}
