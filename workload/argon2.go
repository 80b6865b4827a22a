package workload

import (
	"encoding/binary"

	"golang.org/x/crypto/argon2"
)

const (
	SaltyPhrase = "choosing random salts is hard"
	password    = "correct horse battery staple"
)

// Argon2id hash with the given time cost, 64 MB of memory on a single thread
// (extra threads would escape per-thread counters)
func Hash(timeCost uint32) []byte {
	return argon2.IDKey([]byte(password), []byte(SaltyPhrase), timeCost, 64*1024, 1, 32)
}

// First 8 bytes of the hash as a number
func hashPrefix(hash []byte) uint64 {
	return binary.LittleEndian.Uint64(hash[:8])
}
