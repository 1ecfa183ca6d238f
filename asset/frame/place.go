package frame

import (
	"image"

	"github.com/samber/lo"
)

func minMax(values ...uint16) (int, int) {
	return int(lo.Min(values)), int(lo.Max(values))
}

// span recovers an edge pair from the first variant, falling back to both variants when the
// first one collapses.
func span(a Vec, b Vec) (int, int) {
	low, high := minMax(a[0], b[0])
	if low == high {
		low, high = minMax(a[0], a[1], b[0], b[1])
	}
	return low, high
}

// Place resolves a piece into top-down source and destination rectangles. It returns false when
// either rectangle has no area.
func Place(header Header, piece Piece) (Placement, bool) {
	minSrcX, maxSrcX := span(piece.Src[CornerLeft], piece.Src[CornerRight])
	minSrcY, maxSrcY := span(piece.Src[CornerTop], piece.Src[CornerBottom])
	minDstX, maxDstX := span(piece.Dst[CornerLeft], piece.Dst[CornerRight])
	// bottom-up
	minDstY, maxDstY := span(piece.Dst[CornerTop], piece.Dst[CornerBottom])

	height := int(header.Height)
	placement := Placement{
		TextureID: int(piece.TextureID),
		Src:       image.Rect(minSrcX, minSrcY, maxSrcX, maxSrcY),
		Dst:       image.Rect(minDstX, height-maxDstY, maxDstX, height-minDstY),
	}
	if placement.Src.Empty() || placement.Dst.Empty() {
		return placement, false
	}

	left, right := piece.Dst[CornerLeft][0], piece.Dst[CornerRight][0]
	top, bottom := piece.Dst[CornerTop][0], piece.Dst[CornerBottom][0]
	placement.Rotate = placement.Src.Dx() != placement.Dst.Dx()
	placement.FlipX = int(right) == minDstX && left != right
	placement.FlipY = int(top) == minDstY && top != bottom
	return placement, true
}
