package lbytes

import (
	"encoding/binary"
	"math"
)

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteUInt8(value uint8) {
	w.WriteByte(value)
}

func (w *Writer) WriteUInt16(value uint16) {
	w.Write(binary.LittleEndian.AppendUint16(nil, value))
}

func (w *Writer) WriteInt16(value int16) {
	w.WriteUInt16(uint16(value))
}

func (w *Writer) WriteUInt32(value uint32) {
	w.Write(binary.LittleEndian.AppendUint32(nil, value))
}

func (w *Writer) WriteUInt64(value uint64) {
	w.Write(binary.LittleEndian.AppendUint64(nil, value))
}

func (w *Writer) WriteFloat32(value float32) {
	w.WriteUInt32(math.Float32bits(value))
}

// WriteStruct appends a fixed-size struct in little-endian order.
func (w *Writer) WriteStruct(v any) {
	// writing into a bytes.Buffer only fails for values without a fixed size,
	// which every caller rules out at compile time
	if err := binary.Write(&w.Buffer, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

// WriteCString appends s and a terminating zero byte.
func (w *Writer) WriteCString(s string) {
	w.WriteString(s)
	w.WriteByte(0)
}

// WriteHeaderedString appends a one-byte length (including the zero byte), s and a zero byte.
func (w *Writer) WriteHeaderedString(s string) {
	w.WriteUInt8(uint8(len(s) + 1))
	w.WriteCString(s)
}

// Pad appends zero bytes until the buffer is n bytes long.
func (w *Writer) Pad(n int) {
	for w.Len() < n {
		w.WriteByte(0)
	}
}
