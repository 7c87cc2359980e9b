// Package verify compares computed digests against expected values.
package verify

import "strings"

// Result is the outcome of a digest comparison.
type Result int

const (
	// Match means the digests are equal ignoring case.
	Match Result = iota
	// Mismatch means the digests differ. It is a reportable outcome, not an error.
	Mismatch
)

// String returns a short name for the result.
func (r Result) String() string {
	if r == Match {
		return "match"
	}
	return "mismatch"
}

// Normalize lowercases a hex digest. Whitespace is significant.
func Normalize(digest string) string {
	return strings.ToLower(digest)
}

// Compare reports whether actual and expected are the same hex string, ignoring case.
// No numeric interpretation is applied, so leading zeros are significant.
func Compare(actual, expected string) Result {
	if Normalize(actual) == Normalize(expected) {
		return Match
	}
	return Mismatch
}
