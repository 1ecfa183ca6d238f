package texture

type (
	TableHeader struct {
		Magic            uint32 `json:"magic"`
		Unknown          uint32 `json:"unknown"`
		TextureCount     uint32 `json:"texture_count"`
		HeaderSize       uint32 `json:"header_size"`
		BodySize         uint32 `json:"body_size"`
		PixelStartOffset uint32 `json:"pixel_start_offset"`
	}
	// Entry describes one swizzled texture. BandCount counts 8-pixel-high rows of blocks.
	Entry struct {
		SizeFactor  uint8  `json:"size_factor"`
		Unknown     uint8  `json:"unknown"`
		BandCount   uint8  `json:"band_count"`
		Padding     uint8  `json:"padding"`
		ColorOffset uint32 `json:"color_offset"`
		AlphaOffset uint32 `json:"alpha_offset"`
	}
	Table struct {
		Header  TableHeader
		Entries []Entry
	}
)

const (
	MagicNumber     uint32 = 0xD3CE76CA
	TableHeaderSize        = 24
	EntrySize              = 12
	BlockSize              = 8
	BlockPixels            = BlockSize * BlockSize
	MinSizeFactor          = 3
	MaxSizeFactor          = 15
)

func (r Entry) Width() int {
	return 1 << r.SizeFactor
}

func (r Entry) Height() int {
	return int(r.BandCount) * BlockSize
}

func (r Entry) PixelCount() int {
	return int(r.BandCount) << (r.SizeFactor + 3)
}

func (r Entry) ColorSize() int {
	return r.PixelCount() * 2
}

func (r Entry) AlphaSize() int {
	return (r.PixelCount() + 1) / 2
}

// morton splits a block-local pixel index into its x and y coordinates.
func morton(p int) (x int, y int) {
	x = (p & 1) | (p>>2&1)<<1 | (p>>4&1)<<2
	y = (p>>1&1) | (p>>3&1)<<1 | (p>>5&1)<<2
	return x, y
}

// eachPixel walks the swizzled order, calling f with the stream index and the destination
// coordinates of every pixel.
func eachPixel(entry Entry, f func(i int, x int, y int)) {
	blockCount := 1 << (entry.SizeFactor - 3)
	pixelCount := entry.PixelCount()
	for i := 0; i < pixelCount; i++ {
		block, p := i/BlockPixels, i%BlockPixels
		x, y := morton(p)
		f(
			i,
			(block%blockCount)*BlockSize+x,
			(block/blockCount)*BlockSize+y,
		)
	}
}
