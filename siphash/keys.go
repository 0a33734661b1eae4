package siphash

import (
	"crypto/sha256"
	"encoding/binary"
)

// DeriveKeys computes the SipKeys entity of §3: SHA-256(header ‖
// little-endian(nonce)), taking the first 16 bytes of the digest as two
// little-endian uint64 values (k0, k1). Grounded on the teacher's own
// direct use of stdlib crypto/sha256 in core/pow/cuckoo/cuckoo.go.
func DeriveKeys(header []byte, nonce uint32) Keys {
	var nb [4]byte
	binary.LittleEndian.PutUint32(nb[:], nonce)
	h := sha256.New()
	h.Write(header)
	h.Write(nb[:])
	digest := h.Sum(nil)
	return NewKeys(digest[:16])
}

// Sipnode exposes the edge oracle of §4.A: SipHash24(keys, 2*nonce+side)
// masked down to the node space [0, nnodes). nnodes must be a power of two.
func Sipnode(keys Keys, nonce uint64, side uint64, nnodes uint64) uint64 {
	return keys.Node(nonce, side) & (nnodes - 1)
}
