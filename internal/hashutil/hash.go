// Package hashutil computes the 64-bit non-cryptographic content hash used
// by the manifest and by per-symbol body-change detection. Grounded on the
// teacher's xxh3 usage in its pipeline's fileHash helper, generalized to
// hash normalized in-memory bytes (CRLF -> LF) rather than a file handle,
// since the manifest needs to hash both whole files and individual symbol
// bodies.
package hashutil

import (
	"bytes"

	"github.com/zeebo/xxh3"
)

// Normalize rewrites CRLF and lone CR line endings to LF so that content
// hashes are stable across checkouts with different line-ending settings.
func Normalize(content []byte) []byte {
	if !bytes.ContainsAny(content, "\r") {
		return content
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
	return content
}

// Hash returns the 64-bit xxh3 hash of content after newline normalization.
func Hash(content []byte) uint64 {
	return xxh3.Hash(Normalize(content))
}

// HashString is a convenience wrapper over Hash for string inputs.
func HashString(s string) uint64 {
	return Hash([]byte(s))
}
