package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ComparisonFingerprint computes a deterministic hash over the inputs of a
// comparison request. Inputs are keyed by technique ID and sorted, so the
// same techniques in any submission order produce the same fingerprint.
func ComparisonFingerprint(parts map[string]string) Hash {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data strings.Builder
	for _, key := range keys {
		data.WriteString(key)
		data.WriteString("=")
		data.WriteString(parts[key])
		data.WriteString("|")
	}
	return NewHash([]byte(data.String()))
}

// CountsFingerprint renders confusion counts and cost fields into a stable
// string suitable for ComparisonFingerprint parts.
func CountsFingerprint(fields ...interface{}) string {
	var data strings.Builder
	for i, f := range fields {
		if i > 0 {
			data.WriteString(",")
		}
		data.WriteString(fmt.Sprintf("%v", f))
	}
	return data.String()
}
