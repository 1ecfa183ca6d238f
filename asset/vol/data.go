package vol

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/ds"
)

type (
	Header struct {
		Magic          uint32 `json:"magic"`
		Unknown1       uint32 `json:"unknown_1"`
		Unknown2       uint32 `json:"unknown_2"`
		HeaderSize     uint32 `json:"header_size"`
		VolFileSize    uint32 `json:"vol_file_size"`
		FileCount      uint32 `json:"file_count"`
		FileListOffset uint32 `json:"file_list_offset"`
	}
	// Entry is one packed record of the file table.
	Entry struct {
		StringOffset uint32 `json:"string_offset"`
		DataOffset   uint64 `json:"data_offset"`
		StoredSize   uint32 `json:"stored_size"`
		// UnknownHash is preserved as read; its meaning is not known.
		UnknownHash uint32 `json:"unknown_hash"`
	}
	File struct {
		Name  string `json:"name"`
		Entry Entry  `json:"entry"`
	}
	Archive struct {
		Header Header
		// Files keeps the file table in declaration order.
		Files  []File
		index  *ds.HashMap[int]
		reader *lbytes.Reader
	}
)

const (
	MagicNumber      uint32 = 0xB53D32CB
	HeaderSize              = 28
	DefaultEntrySize        = 20
)
