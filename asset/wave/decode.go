package wave

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	position := reader.Position()
	header := Header{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "wave.DecodeHeader error")
	}
	if header.Magic != MagicNumber {
		return nil, aerr.BadMagic("wave.DecodeHeader", position, MagicNumber, header.Magic)
	}
	if header.Padding != 0 {
		return nil, aerr.UnexpectedPadding("wave.DecodeHeader", position+30, uint64(header.Padding))
	}
	return &header, nil
}

func DecodeChannels(reader *lbytes.Reader, header Header) ([]Channel, error) {
	if err := reader.SeekTo(int64(header.CoefficientOffset)); err != nil {
		return nil, errors.Wrap(err, "wave.DecodeChannels error")
	}
	channels := make([]Channel, header.ChannelCount)
	for i := range channels {
		if err := reader.ReadStruct(&channels[i]); err != nil {
			return nil, errors.Wrapf(err, "wave.DecodeChannels error reading channel %d", i)
		}
	}
	return channels, nil
}

var nibbleToInt = [16]int64{0, 1, 2, 3, 4, 5, 6, 7, -8, -7, -6, -5, -4, -3, -2, -1}

// ChannelBytes is the size of one channel's ADPCM stream: a control byte per block of 14
// samples and one data byte per two samples.
func ChannelBytes(sampleCount uint32) int64 {
	blocks := int64(sampleCount) / SamplesPerBlock
	bs := blocks * (1 + SamplesPerBlock/2)
	if rest := int64(sampleCount) % SamplesPerBlock; rest > 0 {
		bs += 1 + (rest+1)/2
	}
	return bs
}

// checkStreams rejects headers whose channel regions run past the end of reader.
func checkStreams(reader *lbytes.Reader, header Header, channelCount int) error {
	if channelCount == 0 || header.SampleCount == 0 {
		return nil
	}
	last := int64(header.StartOffset) + int64(header.Interleave)*int64(channelCount-1)
	want := ChannelBytes(header.SampleCount)
	available := reader.Size() - last
	if want > available {
		return aerr.TruncatedRead("wave.checkStreams", last, int(want), int(max(available, 0)))
	}
	return nil
}

// DecodeADPCM decodes every channel and returns the samples interleaved by channel.
func DecodeADPCM(reader *lbytes.Reader, header Header, channels []Channel) ([]int16, error) {
	channelCount := len(channels)
	if err := checkStreams(reader, header, channelCount); err != nil {
		return nil, errors.Wrap(err, "wave.DecodeADPCM error")
	}
	samples := make([]int16, int(header.SampleCount)*channelCount)
	for c, channel := range channels {
		start := int64(header.StartOffset) + int64(header.Interleave)*int64(c)
		if err := reader.SeekTo(start); err != nil {
			return nil, errors.Wrapf(err, "wave.DecodeADPCM error seeking to channel %d", c)
		}
		if err := decodeChannel(reader, header, channel, samples[c:], channelCount); err != nil {
			return nil, errors.Wrapf(err, "wave.DecodeADPCM error decoding channel %d", c)
		}
	}
	return samples, nil
}

// decodeChannel writes one channel into out, advancing by stride per sample.
func decodeChannel(reader *lbytes.Reader, header Header, channel Channel, out []int16, stride int) error {
	history1 := int64(channel.History1)
	history2 := int64(channel.History2)
	remaining := int(header.SampleCount)
	position := 0

	for remaining > 0 {
		samplesToDo := lo.Min([]int{remaining, SamplesPerBlock})
		remaining -= samplesToDo

		offset := reader.Position()
		control, err := reader.ReadUInt8()
		if err != nil {
			return err
		}
		scale := int64(1) << (control & 0xF)
		index := int(control >> 4)
		if index*2+1 >= CoefficientCount {
			return aerr.InvalidLayout("wave.decodeChannel", offset, "coefficient pair %d out of range", index)
		}
		coef1 := int64(channel.Coefficients[index*2])
		coef2 := int64(channel.Coefficients[index*2+1])

		var data uint8
		for i := 0; i < samplesToDo; i++ {
			if i&1 == 0 {
				data, err = reader.ReadUInt8()
				if err != nil {
					return err
				}
			}
			nibble := data >> 4
			if i&1 == 1 {
				nibble = data & 0xF
			}
			predicted := ((nibbleToInt[nibble]*scale)<<11 + 1024 + coef1*history1 + coef2*history2) >> 11
			sample := ds.Clamp(predicted, -32768, 32767)

			out[position*stride] = int16(sample)
			position++
			history2 = history1
			history1 = sample
		}
	}
	return nil
}

// Decode reads a whole audio asset. Offsets inside the header are relative to the start of reader.
func Decode(reader *lbytes.Reader) (*Asset, error) {
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, err
	}
	channels, err := DecodeChannels(reader, *header)
	if err != nil {
		return nil, err
	}
	samples, err := DecodeADPCM(reader, *header, channels)
	if err != nil {
		return nil, err
	}
	return &Asset{
		Header:   *header,
		Channels: channels,
		Samples:  samples,
	}, nil
}
