package badger

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Key prefix for index entries
const entryPrefix = "vecent"

// fingerprint derives a fixed-width 64-bit digest from a record id
// using BLAKE2b, so entry keys have uniform length regardless of the
// display name the id came from. Identical ids always produce identical
// fingerprints, which is what makes upsert idempotent at the key level.
func fingerprint(id string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(id))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// makeEntryKey generates the storage key for an entry by record id.
// Format: prefix:fingerprint
func makeEntryKey(id string) []byte {
	prefix := entryPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for the id fingerprint
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], fingerprint(id))
	return buf
}
