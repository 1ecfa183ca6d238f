package lbytes

import (
	"testing"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadUInt32(t *testing.T) {
	reader := NewBytesReader(
		[]byte{
			3, 1, 4, 3,
			12, 34, 56, 78,
		},
	)

	resultInt1, err := reader.ReadUInt32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(50594051), resultInt1)

	resultInt2, err := reader.ReadInt32()
	assert.NoError(t, err)
	assert.Equal(t, int32(1312301580), resultInt2)

	_, err = reader.ReadUInt8()
	assert.True(t, aerr.IsKind(err, aerr.KindTruncatedRead))
}

func TestReader_ReadBytesTruncated(t *testing.T) {
	reader := NewBytesReader([]byte{1, 2, 3})
	_, err := reader.ReadBytes(4)
	require.Error(t, err)
	assert.True(t, aerr.IsKind(err, aerr.KindTruncatedRead))

	bs, err := NewBytesReader(nil).ReadBytes(0)
	assert.NoError(t, err)
	assert.Empty(t, bs)
}

func TestReader_ReadCString(t *testing.T) {
	bs := append([]byte("a.wave\u0000"), make([]byte, 100)...)
	bs = append(bs, []byte("no terminator")...)
	reader := NewBytesReader(bs)

	s, err := reader.ReadCString()
	assert.NoError(t, err)
	assert.Equal(t, "a.wave", s)
	assert.Equal(t, int64(7), reader.Position())

	require.NoError(t, reader.SeekTo(107))
	_, err = reader.ReadCString()
	assert.True(t, aerr.IsKind(err, aerr.KindTruncatedRead))
}

func TestReader_WithCursorRestores(t *testing.T) {
	reader := NewBytesReader([]byte("xxxxname\u0000tail"))
	require.NoError(t, reader.SeekTo(2))

	name := ""
	err := reader.WithCursor(4, func() error {
		var err error
		name, err = reader.ReadCString()
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, "name", name)
	assert.Equal(t, int64(2), reader.Position())

	err = reader.WithCursor(100, func() error { return nil })
	assert.Error(t, err)
	assert.Equal(t, int64(2), reader.Position())

	err = reader.WithCursor(9, func() error {
		_, err := reader.ReadBytes(10)
		return err
	})
	assert.True(t, aerr.IsKind(err, aerr.KindTruncatedRead))
	assert.Equal(t, int64(2), reader.Position())
}

func TestReader_At(t *testing.T) {
	reader := NewBytesReader([]byte{0, 0, 0, 0, 0xCB, 0x32, 0x3D, 0xB5})
	sub, err := reader.At(4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sub.Size())

	magic, err := sub.ReadUInt32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xB53D32CB), magic)
	assert.Equal(t, int64(0), reader.Position())

	_, err = reader.At(9)
	assert.True(t, aerr.IsKind(err, aerr.KindInvalidLayout))
}

func TestWriter_RoundTripPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteUInt16(0xBEEF)
	w.WriteInt16(-2)
	w.WriteUInt64(1 << 40)
	w.WriteFloat32(32000)
	w.WriteHeaderedString("Sonic")

	reader := NewBytesReader(w.Bytes())
	u16, _ := reader.ReadUInt16()
	i16, _ := reader.ReadInt16()
	u64, _ := reader.ReadUInt64()
	f32, _ := reader.ReadFloat32()
	s, err := reader.ReadHeaderedString()

	assert.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)
	assert.Equal(t, int16(-2), i16)
	assert.Equal(t, uint64(1<<40), u64)
	assert.Equal(t, float32(32000), f32)
	assert.Equal(t, "Sonic", s)
	assert.Equal(t, []byte{6, 'S', 'o', 'n', 'i', 'c', 0}, w.Bytes()[16:])
}
