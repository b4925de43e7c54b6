package fingerprint

import (
	"fmt"
)

// Equal reports whether two fingerprints describe the same definition
func Equal(a, b *TableFingerprint) bool {
	return a != nil && b != nil && a.Hash == b.Hash
}

// Compare returns an error describing the mismatch when the fingerprints differ
func Compare(expected, actual *TableFingerprint) error {
	if Equal(expected, actual) {
		return nil
	}
	return fmt.Errorf("table fingerprint mismatch - expected: %s, actual: %s",
		preview(expected), preview(actual))
}

func preview(f *TableFingerprint) string {
	if f == nil {
		return "<none>"
	}
	if len(f.Hash) > 16 {
		return f.Hash[:16]
	}
	return f.Hash
}
