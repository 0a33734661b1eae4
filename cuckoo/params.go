// Package cuckoo implements the edge-trimming and cycle-finding core of the
// Cuckoo Cycle proof-of-work solver.
package cuckoo

// Mode selects between the trimmed and direct cuckoo-hash strategies. The
// reference miner selects this via a HUGEFAST compile-time flag; this repo
// makes it a construction-time choice instead (see SPEC_FULL.md's Design
// Notes on polymorphism over single-threaded vs. parallel trim).
type Mode int

const (
	// ModeTrimmed runs the full LiveSet/TwiceSet trimming engine before
	// building a sparse CuckooMap. This is the default, memory-hard path.
	ModeTrimmed Mode = iota
	// ModeDirect skips trimming entirely, replacing CuckooMap with a
	// dense N-entry array (the HUGEFAST variant). Always allocated and
	// freed per solve; see SPEC_FULL.md's resolution of the open question
	// around the reference's one-shot-process assumption.
	ModeDirect
)

// MaxPathLen is the path-walk cap of §3.
const MaxPathLen = 8192

// Params holds the compile/construction-time parameters of §3: node-space
// size, proof length, and partitioning. EdgeBits and ProofSize are fixed
// per Context; Easiness, Nthreads, Ntrims, MaxSols are supplied per solve.
type Params struct {
	EdgeBits uint
	ProofSize int
	PartBits uint
	Mode     Mode
}

// DefaultParams returns parameters matching the concrete test scenario of
// spec.md §8: EDGEBITS=11, PROOFSIZE=42, PART_BITS=0.
func DefaultParams() Params {
	return Params{EdgeBits: 11, ProofSize: 42, PartBits: 0, Mode: ModeTrimmed}
}

// NNodes is the node count per partition, 2^EdgeBits.
func (p Params) NNodes() uint64 { return uint64(1) << p.EdgeBits }

// N is the full node-index space across both partitions, 2*NNodes.
func (p Params) N() uint64 { return 2 * p.NNodes() }

// Parts is the number of partitioning buckets, 2^PartBits.
func (p Params) Parts() uint64 { return uint64(1) << p.PartBits }

// PartMask masks a node down to its partition index.
func (p Params) PartMask() uint64 { return p.Parts() - 1 }

// IdxShift controls the cuckoo-hash directory size: PartBits + 6.
func (p Params) IdxShift() uint { return p.PartBits + 6 }

// ClumpShift bounds linear-probe drift; fixed at 9 per §3.
func (p Params) ClumpShift() uint { return 9 }

// KeyShift is IdxShift + ClumpShift.
func (p Params) KeyShift() uint { return p.IdxShift() + p.ClumpShift() }

// KeyMask is 2^KeyShift - 1.
func (p Params) KeyMask() uint64 { return (uint64(1) << p.KeyShift()) - 1 }

// CuckooSize is the slot count of the sparse cuckoo hash table.
func (p Params) CuckooSize() uint64 {
	n := p.N() + 1
	shift := uint64(1) << p.IdxShift()
	return (n + shift - 1) >> p.IdxShift()
}

// TwiceWords is the number of 32-bit words backing the TwiceSet: 16
// two-bit counters per word, NNodes/Parts counters total.
func (p Params) TwiceWords() uint64 {
	counters := p.NNodes() / p.Parts()
	return (counters + 15) / 16
}

// DefaultNtrims is the recommended trim-round count of §4.D when
// PART_BITS = 0: 1 + (PART_BITS+3)*(PART_BITS+4)/2.
func (p Params) DefaultNtrims() int {
	pb := int(p.PartBits)
	return 1 + (pb+3)*(pb+4)/2
}
