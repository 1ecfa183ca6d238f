package vol

import (
	"io"

	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
	"github.com/pkg/errors"
)

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	position := reader.Position()
	header := Header{}
	if err := reader.ReadStruct(&header); err != nil {
		return nil, errors.Wrap(err, "vol.DecodeHeader error")
	}
	if header.Magic != MagicNumber {
		return nil, aerr.BadMagic("vol.DecodeHeader", position, MagicNumber, header.Magic)
	}
	return &header, nil
}

func DecodeEntry(reader *lbytes.Reader) (*Entry, error) {
	entry := Entry{}
	if err := reader.ReadStruct(&entry); err != nil {
		return nil, errors.Wrap(err, "vol.DecodeEntry error")
	}
	return &entry, nil
}

// decodeName reads the out-of-line name of entry without disturbing the file table cursor.
func decodeName(reader *lbytes.Reader, entry Entry) (string, error) {
	offset := int64(entry.StringOffset)
	if offset >= reader.Size() {
		return "", aerr.StringOutOfRange("vol.decodeName", offset, reader.Size())
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

// checkTable rejects a header whose file table cannot fit between file_list_offset and the end
// of the archive, before anything is sized from file_count.
func checkTable(reader *lbytes.Reader, header Header) error {
	offset := int64(header.FileListOffset)
	want := 4 + int64(header.FileCount)*DefaultEntrySize
	available := reader.Size() - offset
	if want > available {
		return aerr.TruncatedRead("vol.checkTable", offset, int(want), int(max(available, 0)))
	}
	return nil
}

// DecodeBlock reads the file table and registers every name in index as it goes.
func DecodeBlock(reader *lbytes.Reader, header Header, index *ds.HashMap[int]) ([]File, error) {
	if err := checkTable(reader, header); err != nil {
		return nil, err
	}
	if err := reader.SeekTo(int64(header.FileListOffset)); err != nil {
		return nil, errors.Wrap(err, "vol.DecodeBlock error seeking to the file table")
	}
	// reserved, possibly a table hash
	if _, err := reader.ReadUInt32(); err != nil {
		return nil, errors.Wrap(err, "vol.DecodeBlock error")
	}

	files := make([]File, 0, header.FileCount)
	for i := 0; i < int(header.FileCount); i++ {
		entry, err := DecodeEntry(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "vol.DecodeBlock error reading record %d", i)
		}
		name, err := decodeName(reader, *entry)
		if err != nil {
			return nil, errors.Wrapf(err, "vol.DecodeBlock error reading the name of record %d", i)
		}
		files = append(files, File{Name: name, Entry: *entry})
		index.PutString(name, len(files)-1)
	}

	return files, nil
}

// Open parses the archive header and file table. The returned Archive keeps r for Open calls.
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	reader := lbytes.NewReader(r, size)
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "vol.Open error")
	}

	if err := checkTable(reader, *header); err != nil {
		return nil, errors.Wrap(err, "vol.Open error")
	}
	index := ds.NewHashMap[int](int(header.FileCount) * 2)
	files, err := DecodeBlock(reader, *header, index)
	if err != nil {
		return nil, errors.Wrap(err, "vol.Open error")
	}

	return &Archive{
		Header: *header,
		Files:  files,
		index:  index,
		reader: reader,
	}, nil
}
