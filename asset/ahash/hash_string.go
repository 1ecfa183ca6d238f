package ahash

import (
	"github.com/samber/lo"
)

const (
	OffsetBasis uint32 = 0x811C9DC5
	Prime       uint32 = 0x01000193
)

// HashString is the 32-bit FNV-1a hash archive names are indexed by.
func HashString(s string) uint32 {
	return lo.Reduce(
		[]byte(s),
		func(result uint32, b byte, _ int) uint32 {
			return (result ^ uint32(b)) * Prime
		},
		OffsetBasis,
	)
}
