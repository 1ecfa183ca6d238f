package ds

import (
	"golang.org/x/exp/constraints"
)

// Clamp bounds n to [low, high].
func Clamp[T constraints.Integer](n, low, high T) T {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
