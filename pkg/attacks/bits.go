package attacks

import "math/bits"

func trailingZeros(b uint64) int {
	return bits.TrailingZeros64(b)
}

func leadingZeros(b uint64) int {
	return bits.LeadingZeros64(b)
}
