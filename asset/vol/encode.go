package vol

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/samber/lo"
)

func EncodeHeader(header Header) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(header)
	return w.Bytes()
}

func EncodeEntry(entry Entry) []byte {
	w := lbytes.NewWriter()
	w.WriteStruct(entry)
	return w.Bytes()
}

// Payload is a named file to be packed by Encode.
type Payload struct {
	Name string
	Data []byte
}

// Encode packs payloads into an archive: header, file table, name strings, then file data.
func Encode(payloads []Payload) []byte {
	fileListOffset := HeaderSize
	stringsOffset := fileListOffset + 4 + DefaultEntrySize*len(payloads)
	stringsSize := lo.Reduce(
		payloads,
		func(size int, payload Payload, _ int) int {
			return size + len(payload.Name) + 1
		},
		0,
	)
	dataOffset := stringsOffset + stringsSize

	table := lbytes.NewWriter()
	names := lbytes.NewWriter()
	data := lbytes.NewWriter()
	table.WriteUInt32(0)
	for _, payload := range payloads {
		table.Write(EncodeEntry(Entry{
			StringOffset: uint32(stringsOffset + names.Len()),
			DataOffset:   uint64(dataOffset + data.Len()),
			StoredSize:   uint32(len(payload.Data)),
		}))
		names.WriteCString(payload.Name)
		data.Write(payload.Data)
	}

	header := Header{
		Magic:          MagicNumber,
		HeaderSize:     HeaderSize,
		VolFileSize:    uint32(dataOffset + data.Len()),
		FileCount:      uint32(len(payloads)),
		FileListOffset: uint32(fileListOffset),
	}
	bs := EncodeHeader(header)
	bs = append(bs, table.Bytes()...)
	bs = append(bs, names.Bytes()...)
	bs = append(bs, data.Bytes()...)
	return bs
}
