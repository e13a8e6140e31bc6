package types

import "math/bits"

func popcount(x uint64) int       { return bits.OnesCount64(x) }
func trailingZeros(x uint64) int  { return bits.TrailingZeros64(x) }

// checkHandBounds is a programming-error assertion: removing from an empty
// hand or exceeding the 15-count cap indicates a caller bug, not a runtime
// condition to recover from.
func checkHandBounds(pt PieceType, n int) {
	if n < 0 || n > 15 {
		panic("types: hand count out of range for " + string(pt.Letter()))
	}
}
