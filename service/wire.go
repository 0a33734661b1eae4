package service

import "encoding/binary"

// EncodeSolution packs one solution into a flat byte buffer: a one-byte
// EdgeBits tag, then ProofSize little-endian uint32 nonces. Adapted from
// the teacher's core/types/pow/cuckoo.go Bytes()/SetCircleEdges wire
// layout (edge-bits byte + packed nonce bytes), repurposed here for the
// solver service's own wire boundary rather than a blockchain PoW header.
func EncodeSolution(edgeBits uint8, sol []uint32) []byte {
	buf := make([]byte, 1+4*len(sol))
	buf[0] = edgeBits
	for i, n := range sol {
		binary.LittleEndian.PutUint32(buf[1+4*i:1+4*i+4], n)
	}
	return buf
}

// DecodeSolution is EncodeSolution's inverse.
func DecodeSolution(buf []byte) (edgeBits uint8, sol []uint32) {
	edgeBits = buf[0]
	n := (len(buf) - 1) / 4
	sol = make([]uint32, n)
	for i := 0; i < n; i++ {
		sol[i] = binary.LittleEndian.Uint32(buf[1+4*i : 1+4*i+4])
	}
	return edgeBits, sol
}
