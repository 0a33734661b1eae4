package cuckoo

import "sync/atomic"

// TwiceSet is the two-bit node-degree counter of §4.C: NNODES/PARTS
// saturating {0,1,>=2} counters, packed 16 per 32-bit word. Updated with
// relaxed atomics because ordering is supplied by the surrounding barrier,
// matching the reference twice_set's use of std::memory_order_relaxed.
type TwiceSet struct {
	words []uint32
}

// NewTwiceSet allocates a TwiceSet able to count `counters` distinct
// shifted node values (NNodes/Parts in the caller's terms), all zeroed.
func NewTwiceSet(counters uint64) *TwiceSet {
	nwords := (counters + 15) / 16
	return &TwiceSet{words: make([]uint32, nwords)}
}

// Reset zeroes every word. Called by worker 0 between barriers.
func (ts *TwiceSet) Reset() {
	for i := range ts.words {
		atomic.StoreUint32(&ts.words[i], 0)
	}
}

// Set atomically ORs in the low bit of node's two-bit pair; if the prior
// value already had the low bit set, it also ORs in the high bit, giving
// the saturating {0,1,>=2} semantics of §4.C.
func (ts *TwiceSet) Set(node uint64) {
	word := &ts.words[node/16]
	lowBit := uint32(1) << ((node % 16) * 2)
	for {
		old := atomic.LoadUint32(word)
		newVal := old | lowBit
		if old&lowBit != 0 {
			newVal |= lowBit << 1
		}
		if newVal == old {
			return
		}
		if atomic.CompareAndSwapUint32(word, old, newVal) {
			return
		}
	}
}

// Test returns the high bit of node's pair: true iff node was seen >= 2
// times during the pass that preceded the most recent Reset.
func (ts *TwiceSet) Test(node uint64) bool {
	highBit := uint32(2) << ((node % 16) * 2)
	return atomic.LoadUint32(&ts.words[node/16])&highBit != 0
}
