package utils

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const sha256Prefix = "sha256="

// ConstantTimeHexEqual decodes two hex digests and compares the raw bytes in
// constant time. The provided digest may carry a "sha256=" prefix, the format
// used by webhook signature headers. Malformed hex never matches.
func ConstantTimeHexEqual(expectedHex, providedHex string) bool {
	providedHex = strings.TrimPrefix(providedHex, sha256Prefix)

	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false
	}

	provided, err := hex.DecodeString(providedHex)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(expected, provided) == 1
}
