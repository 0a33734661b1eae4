package cuckoo

import "sync/atomic"

// CuckooMap is the sparse node -> node mapping of §4.E: linear-probed,
// key-packed 64-bit slots, compare-and-set from zero. Multiple workers may
// insert concurrently; stale reads only cause redundant exploration in the
// cycle finder, never an incorrect solution (see §4.E).
type CuckooMap struct {
	slots      []uint64
	idxShift   uint
	keyShift   uint
	keyMask    uint64
	clumpLimit uint64
	size       uint64
}

// NewCuckooMap allocates a CuckooMap sized per Params.CuckooSize.
func NewCuckooMap(p Params) *CuckooMap {
	size := p.CuckooSize()
	return &CuckooMap{
		slots:      make([]uint64, size),
		idxShift:   p.IdxShift(),
		keyShift:   p.KeyShift(),
		keyMask:    p.KeyMask(),
		clumpLimit: uint64(1) << p.ClumpShift(),
		size:       size,
	}
}

// Set stores the directed mapping u -> v. Linear-probing insert with
// compare-and-set from zero; on a collision whose key already equals u,
// the value is overwritten unconditionally (last writer wins). Drift past
// the clump limit is an InvariantViolation (§4.E, §3 invariant 3).
func (c *CuckooMap) Set(u, v uint64) error {
	slot := (v << c.keyShift) | (u & c.keyMask)
	ui := (u >> c.idxShift) % c.size
	for drift := uint64(0); drift < c.clumpLimit; drift++ {
		for {
			old := atomic.LoadUint64(&c.slots[ui])
			if old == 0 {
				if atomic.CompareAndSwapUint64(&c.slots[ui], 0, slot) {
					return nil
				}
				continue
			}
			if (old^slot)&c.keyMask == 0 {
				atomic.StoreUint64(&c.slots[ui], slot)
				return nil
			}
			break
		}
		ui = (ui + 1) % c.size
	}
	return newSolveError(InvariantViolation, "cuckoo map probe drift exceeded clump limit")
}

// Get linear-probes from u>>IdxShift (folded into the slot index the same
// way Set does), returning 0 on an empty slot, the mapped node on a key
// match, or continuing the probe otherwise.
func (c *CuckooMap) Get(u uint64) uint64 {
	ui := (u >> c.idxShift) % c.size
	for {
		slot := atomic.LoadUint64(&c.slots[ui])
		if slot == 0 {
			return 0
		}
		if (slot^u)&c.keyMask == 0 {
			return slot >> c.keyShift
		}
		ui = (ui + 1) % c.size
	}
}
