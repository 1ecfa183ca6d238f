package wave

import (
	"fmt"
	"io"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/pkg/errors"
)

// EncodeWAV writes the samples as a canonical 16-bit PCM RIFF/WAVE file.
func EncodeWAV(w io.Writer, asset Asset) error {
	channels := uint32(asset.Header.ChannelCount)
	rate := uint32(asset.Header.SampleRate)
	dataSize := uint32(len(asset.Samples) * BytesPerSample)

	buf := lbytes.NewWriter()
	buf.WriteString("RIFF")
	buf.WriteUInt32(36 + dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	buf.WriteUInt32(16)
	buf.WriteUInt16(1)
	buf.WriteUInt16(uint16(channels))
	buf.WriteUInt32(rate)
	buf.WriteUInt32(rate * channels * BytesPerSample)
	buf.WriteUInt16(uint16(channels * BytesPerSample))
	buf.WriteUInt16(BytesPerSample * 8)
	buf.WriteString("data")
	buf.WriteUInt32(dataSize)
	for _, sample := range asset.Samples {
		buf.WriteInt16(sample)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "wave.EncodeWAV error")
	}
	return nil
}

// EncodeLoopInfo writes the loop sidecar text, terminated by a zero byte.
func EncodeLoopInfo(w io.Writer, header Header) error {
	if _, err := fmt.Fprintf(w, "loop point: %d\x00", header.LoopStart); err != nil {
		return errors.Wrap(err, "wave.EncodeLoopInfo error")
	}
	return nil
}

func EncodeHeader(header Header) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(header)
	return w.Bytes()
}

func EncodeChannel(channel Channel) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(channel)
	return w.Bytes()
}
