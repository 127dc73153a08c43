package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}

// encodeValues packs entries as little-endian float64.
func encodeValues(entries []Entry) []byte {
	data := make([]byte, len(entries)*valueSize)
	for i, e := range entries {
		binary.LittleEndian.PutUint64(data[i*valueSize:], math.Float64bits(e.Value))
	}
	return data
}

// decodeValues unpacks little-endian float64 values.
func decodeValues(data []byte) []float64 {
	values := make([]float64, len(data)/valueSize)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*valueSize:]))
	}
	return values
}
