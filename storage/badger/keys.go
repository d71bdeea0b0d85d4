package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	snapshotMetaKey    = "tgmeta"
	snapshotTagPrefix  = "tgtag"
	snapshotItemPrefix = "tgitem"
	generationSeq      = "tggenseq"
)

// makeGenerationPrefix generates the key prefix shared by every record of
// one snapshot generation.
// Format: prefix:generation
func makeGenerationPrefix(prefix string, generation uint64) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], generation)
	return buf
}

// makeGenerationKey generates a key for the record at position index within
// a snapshot generation.
// Format: prefix:generation:index
func makeGenerationKey(prefix string, generation uint64, index int) []byte {
	base := makeGenerationPrefix(prefix, generation)
	buf := make([]byte, len(base)+8)
	offset := copy(buf, base)
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

func makeTagKey(generation uint64, index int) []byte {
	return makeGenerationKey(snapshotTagPrefix, generation, index)
}

func makeItemKey(generation uint64, index int) []byte {
	return makeGenerationKey(snapshotItemPrefix, generation, index)
}
