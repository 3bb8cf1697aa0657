package runtime

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/petermattis/goid"
)

// instanceKey packs a (structIndex, instanceIndex) pair into one uint64
// cache/bitset key. Both halves are stored unsigned: the database never
// hands out a negative index here (database.NullIndex is filtered out
// by callers before a key is ever computed).
func instanceKey(structIndex, instanceIndex int32) uint64 {
	return uint64(uint32(structIndex))<<32 | uint64(uint32(instanceIndex))
}

// inFlightTracker is the per-goroutine "currently reading" set: cycle
// detection is thread-local, not global, because a global set would
// serialise every concurrent read and because the loser of a cache race
// must still detect a cycle independently on its own goroutine. Keyed by
// goroutine id via petermattis/goid, the same thread-local-identity
// trick a deadlock detector uses to attribute held locks to a goroutine
// rather than a process.
type inFlightTracker struct {
	sets sync.Map // int64 goroutine id -> *roaring64.Bitmap
}

func (t *inFlightTracker) bitmap() *roaring64.Bitmap {
	id := goid.Get()
	if v, ok := t.sets.Load(id); ok {
		return v.(*roaring64.Bitmap)
	}
	v, _ := t.sets.LoadOrStore(id, roaring64.New())
	return v.(*roaring64.Bitmap)
}

// enter marks key in-flight on the calling goroutine. It reports false
// if key was already in-flight on this goroutine — a re-entrant read,
// i.e. a cycle.
func (t *inFlightTracker) enter(key uint64) bool {
	bm := t.bitmap()
	if bm.Contains(key) {
		return false
	}
	bm.Add(key)
	return true
}

// exit unmarks key. Callers defer this immediately after a successful
// enter so the set unwinds on every exit path, fault or success.
func (t *inFlightTracker) exit(key uint64) {
	t.bitmap().Remove(key)
}
