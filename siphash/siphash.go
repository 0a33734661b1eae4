// Package siphash implements the keyed SipHash-2-4 pseudorandom function
// used as the edge oracle of the Cuckoo Cycle proof-of-work.
package siphash

import "encoding/binary"

// Keys holds the 128-bit SipHash key pair (k0, k1) derived for one solve.
type Keys struct {
	k0, k1 uint64
	v      [4]uint64
}

// NewKeys builds the SipHash initial state from a 16-byte key, the way the
// reference miner's Newsip does: the first 8 bytes become k0, the next 8
// become k1, both little-endian.
func NewKeys(key []byte) Keys {
	k := Keys{
		k0: binary.LittleEndian.Uint64(key[0:8]),
		k1: binary.LittleEndian.Uint64(key[8:16]),
	}
	k.v[0] = k.k0 ^ 0x736f6d6570736575
	k.v[1] = k.k1 ^ 0x646f72616e646f6d
	k.v[2] = k.k0 ^ 0x6c7967656e657261
	k.v[3] = k.k1 ^ 0x7465646279746573
	return k
}

// K0 and K1 return the raw key halves, e.g. for logging or diagnostics.
func (k Keys) K0() uint64 { return k.k0 }
func (k Keys) K1() uint64 { return k.k1 }

// Hash computes SipHash-2-4(k0, k1, b).
func Hash(k0, k1, b uint64) uint64 {
	var v [4]uint64
	v[0] = k0 ^ 0x736f6d6570736575
	v[1] = k1 ^ 0x646f72616e646f6d
	v[2] = k0 ^ 0x6c7967656e657261
	v[3] = k1 ^ 0x7465646279746573
	return prf(&v, b)
}

func rotl(x uint64, n uint) uint64 {
	return x<<n | x>>(64-n)
}

func sipround(v *[4]uint64) {
	v[0] += v[1]
	v[1] = rotl(v[1], 13)
	v[1] ^= v[0]
	v[0] = rotl(v[0], 32)

	v[2] += v[3]
	v[3] = rotl(v[3], 16)
	v[3] ^= v[2]

	v[0] += v[3]
	v[3] = rotl(v[3], 21)
	v[3] ^= v[0]

	v[2] += v[1]
	v[1] = rotl(v[1], 17)
	v[1] ^= v[2]
	v[2] = rotl(v[2], 32)
}

// prf is the SipHash-2-4 compression+finalization over a running [4]uint64
// state, returning the digest for message word b. It mutates a local copy
// of v, never the caller's state, so the same Keys can be reused for every
// edge endpoint of a solve.
func prf(v *[4]uint64, b uint64) uint64 {
	s := *v
	s[3] ^= b
	sipround(&s)
	sipround(&s)
	s[0] ^= b

	s[2] ^= 0xff
	sipround(&s)
	sipround(&s)
	sipround(&s)
	sipround(&s)

	return s[0] ^ s[1] ^ s[2] ^ s[3]
}

// Node computes one endpoint of candidate edge `nonce`: side 0 is the U
// endpoint, side 1 is the V endpoint. The caller masks the result to
// [0, nnodes) — Node itself returns the raw 64-bit SipHash digest so that
// sipnode (component A of the edge oracle) stays a thin, allocation-free
// wrapper over it.
func (k Keys) Node(nonce uint64, side uint64) uint64 {
	return prf(&k.v, (nonce<<1)|side)
}
