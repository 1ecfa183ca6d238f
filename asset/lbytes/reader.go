package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/pkg/errors"
)

func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{
		SectionReader: *io.NewSectionReader(r, 0, size),
	}
}

func NewBytesReader(bs []byte) *Reader {
	return NewReader(bytes.NewReader(bs), int64(len(bs)))
}

func (b *Reader) Position() int64 {
	// Seek on a section reader only fails for negative results.
	position, _ := b.Seek(0, io.SeekCurrent)
	return position
}

// SeekTo moves the cursor to an absolute offset inside the reader.
func (b *Reader) SeekTo(offset int64) error {
	if offset < 0 || offset > b.Size() {
		return aerr.InvalidLayout("lbytes.Reader.SeekTo", offset, "seek outside of %d bytes", b.Size())
	}
	_, err := b.Seek(offset, io.SeekStart)
	return err
}

// At returns an independent reader whose offset 0 is offset in b and which extends to the end of b.
// The new reader has its own cursor, so it can be used alongside b or from another goroutine.
func (b *Reader) At(offset int64) (*Reader, error) {
	if offset < 0 || offset > b.Size() {
		return nil, aerr.InvalidLayout("lbytes.Reader.At", offset, "sub-reader outside of %d bytes", b.Size())
	}
	return &Reader{
		SectionReader: *io.NewSectionReader(&b.SectionReader, offset, b.Size()-offset),
	}, nil
}

// WithCursor runs read with the cursor at offset and restores the previous position on every path.
func (b *Reader) WithCursor(offset int64, read func() error) error {
	saved := b.Position()
	defer func() {
		_, _ = b.Seek(saved, io.SeekStart)
	}()
	if err := b.SeekTo(offset); err != nil {
		return err
	}
	return read()
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	position := b.Position()
	read, err := io.ReadFull(b, bs)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, aerr.TruncatedRead("lbytes.Reader.ReadBytes", position, n, read)
		}
		return nil, errors.Wrap(err, "lbytes.Reader.ReadBytes error")
	}
	return bs, nil
}

// ReadStruct fills a fixed-size struct from the next binary.Size(v) bytes.
func (b *Reader) ReadStruct(v any) error {
	size := binary.Size(v)
	if size < 0 {
		return errors.Errorf("lbytes.Reader.ReadStruct error: %T has no fixed size", v)
	}
	bs, err := b.ReadBytes(size)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(bs), binary.LittleEndian, v)
}

func (b *Reader) ReadUInt8() (uint8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadUInt16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadInt16() (int16, error) {
	result, err := b.ReadUInt16()
	return int16(result), err
}

func (b *Reader) ReadUInt32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadInt32() (int32, error) {
	result, err := b.ReadUInt32()
	return int32(result), err
}

func (b *Reader) ReadUInt64() (uint64, error) {
	bs, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bs), nil
}

func (b *Reader) ReadFloat32() (float32, error) {
	result, err := b.ReadUInt32()
	return math.Float32frombits(result), err
}

// ReadCString reads up to and including the next zero byte; the zero byte is not returned.
func (b *Reader) ReadCString() (string, error) {
	start := b.Position()
	buf := bytes.Buffer{}
	chunk := make([]byte, 64)
	for {
		n, err := b.Read(chunk)
		if i := bytes.IndexByte(chunk[:n], 0); i >= 0 {
			buf.Write(chunk[:i])
			_, seekErr := b.Seek(start+int64(buf.Len())+1, io.SeekStart)
			return buf.String(), seekErr
		}
		buf.Write(chunk[:n])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", aerr.TruncatedRead("lbytes.Reader.ReadCString", start, buf.Len()+1, buf.Len())
			}
			return "", errors.Wrap(err, "lbytes.Reader.ReadCString error")
		}
	}
}

// ReadHeaderedString reads a string prefixed by its one-byte length.
func (b *Reader) ReadHeaderedString() (string, error) {
	size, err := b.ReadUInt8()
	if err != nil {
		return "", err
	}
	bs, err := b.ReadBytes(int(size))
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(bs, "\u0000")), nil
}
