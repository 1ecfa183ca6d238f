// Package lbytes reads and writes the little-endian primitives every asset format is built from.
package lbytes

import (
	"bytes"
	"io"
)

type (
	// Reader is a positional reader over a random-access byte source. Offsets given to Seek,
	// SeekTo and WithCursor are relative to the start of the reader.
	Reader struct {
		io.SectionReader
	}
	// Writer accumulates little-endian values in memory.
	Writer struct {
		bytes.Buffer
	}
)
