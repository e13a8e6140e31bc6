// Package geometry builds the process-lifetime-immutable movement and
// sliding-attack tables shared read-only by every Position: one-step
// movement masks per piece, line masks for the obstruction-difference
// (Hyperbola Quintessence) sliding attacks of Arrows and shooting Archers, between/line tables, and the static half of the
// per-position check_bb augmentation.
package geometry

import "sync"

var initOnce sync.Once

// Init builds every table exactly once; it is safe to call concurrently —
// the first caller blocks the rest until the tables are ready.
func Init() {
	initOnce.Do(func() {
		initLineMasks()
		initBetweenAndLine()
		buildMovableSq()
		buildStaticCheckBB()
	})
}
