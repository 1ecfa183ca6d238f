package anim

import (
	"image"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/frame"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/texture"
	"github.com/pkg/errors"
)

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	position := reader.Position()
	header := Header{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "anim.DecodeHeader error")
	}
	if header.Magic != MagicNumber {
		return nil, aerr.BadMagic("anim.DecodeHeader", position, MagicNumber, header.Magic)
	}
	return &header, nil
}

// fits reports a TruncatedRead when count records of size bytes cannot start at offset.
func fits(reader *lbytes.Reader, caller string, offset int64, count int, size int) error {
	available := reader.Size() - offset
	if int64(count)*int64(size) > available {
		return aerr.TruncatedRead(caller, offset, count*size, int(max(available, 0)))
	}
	return nil
}

func decodeName(reader *lbytes.Reader, record EntryRecord) (string, error) {
	offset := int64(record.StringOffset)
	if offset >= reader.Size() {
		return "", aerr.StringOutOfRange("anim.decodeName", offset, reader.Size())
	}
	name := ""
	err := reader.WithCursor(
		offset,
		func() error {
			var err error
			name, err = reader.ReadCString()
			return err
		},
	)
	return name, err
}

func decodeFrameRefs(reader *lbytes.Reader, header Header, record EntryRecord) ([]FrameRef, error) {
	offset := int64(record.FrameDataOffset)
	if err := fits(reader, "anim.decodeFrameRefs", offset, int(record.FrameCount), FrameRefSize); err != nil {
		return nil, err
	}
	refs := make([]FrameRef, record.FrameCount)
	err := reader.WithCursor(
		offset,
		func() error {
			for i := range refs {
				if err := reader.ReadStruct(&refs[i]); err != nil {
					return err
				}
				if refs[i].FrameID >= header.FrameCount {
					return aerr.InvalidLayout(
						"anim.decodeFrameRefs",
						offset+int64(i*FrameRefSize),
						"frame %d of %d", refs[i].FrameID, header.FrameCount,
					)
				}
			}
			return nil
		},
	)
	return refs, err
}

// DecodeEntries reads the entry records that follow the header, then resolves each entry's name
// and frame references.
func DecodeEntries(reader *lbytes.Reader, header Header) ([]Entry, error) {
	records := make([]EntryRecord, header.EntryCount)
	for i := range records {
		if err := reader.ReadStruct(&records[i]); err != nil {
			return nil, errors.Wrapf(err, "anim.DecodeEntries error reading record %d", i)
		}
	}

	entries := make([]Entry, 0, len(records))
	for i, record := range records {
		name, err := decodeName(reader, record)
		if err != nil {
			return nil, errors.Wrapf(err, "anim.DecodeEntries error reading the name of entry %d", i)
		}
		refs, err := decodeFrameRefs(reader, header, record)
		if err != nil {
			return nil, errors.Wrapf(err, `anim.DecodeEntries error reading the frames of "%s"`, name)
		}
		entries = append(entries, Entry{
			Name:   name,
			Record: record,
			Frames: refs,
		})
	}
	return entries, nil
}

func DecodeFrames(reader *lbytes.Reader, header Header) ([]uint32, []frame.Frame, error) {
	offset := int64(header.FrameListOffset)
	if err := fits(reader, "anim.DecodeFrames", offset, int(header.FrameCount), 4); err != nil {
		return nil, nil, err
	}
	if err := reader.SeekTo(offset); err != nil {
		return nil, nil, errors.Wrap(err, "anim.DecodeFrames error")
	}
	offsets := make([]uint32, header.FrameCount)
	for i := range offsets {
		value, err := reader.ReadUInt32()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "anim.DecodeFrames error reading offset %d", i)
		}
		offsets[i] = value
	}

	frames := make([]frame.Frame, 0, len(offsets))
	for i, frameOffset := range offsets {
		fr, err := frame.Decode(reader, int64(frameOffset))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "anim.DecodeFrames error reading frame %d", i)
		}
		frames = append(frames, *fr)
	}
	return offsets, frames, nil
}

// Decode reads a whole animation asset. Offsets are relative to the start of reader. The entry
// records are read in sequence after the header, the reserved words and the unknown count.
func Decode(reader *lbytes.Reader) (*Asset, error) {
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(header.Version); i++ {
		if _, err := reader.ReadUInt32(); err != nil {
			return nil, errors.Wrap(err, "anim.Decode error skipping reserved words")
		}
	}
	unknownCount, err := reader.ReadUInt32()
	if err != nil {
		return nil, errors.Wrap(err, "anim.Decode error")
	}

	entries, err := DecodeEntries(reader, *header)
	if err != nil {
		return nil, err
	}
	offsets, frames, err := DecodeFrames(reader, *header)
	if err != nil {
		return nil, err
	}
	table, textures, err := texture.Load(reader, int64(header.TextureTableOffset))
	if err != nil {
		return nil, errors.Wrap(err, "anim.Decode error")
	}

	return &Asset{
		Header:       *header,
		UnknownCount: unknownCount,
		Entries:      entries,
		FrameOffsets: offsets,
		Frames:       frames,
		Table:        *table,
		Textures:     textures,
	}, nil
}

// RenderFrames composes every frame of the shared frame list. It returns nil surfaces when there
// are no textures.
func RenderFrames(asset Asset) ([]*image.NRGBA, []frame.Report, error) {
	if len(asset.Textures) == 0 {
		return nil, nil, nil
	}
	surfaces := make([]*image.NRGBA, 0, len(asset.Frames))
	reports := make([]frame.Report, 0, len(asset.Frames))
	for i, fr := range asset.Frames {
		img, report, err := frame.Compose(fr, asset.Textures)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "anim.RenderFrames error composing frame %d", i)
		}
		surfaces = append(surfaces, img)
		reports = append(reports, report)
	}
	return surfaces, reports, nil
}
