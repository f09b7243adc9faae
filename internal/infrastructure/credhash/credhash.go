// Package credhash hashes file-share passwords with a plain SHA-256 digest.
// The digest is unsalted, which keeps verification a pure recompute-and-compare
// but leaves the stored hashes open to precomputed-table attacks; a per-file
// salted KDF would be the stronger choice if the stored format ever changes.
package credhash

import (
	"encoding/hex"

	sha256 "github.com/minio/sha256-simd"
)

func Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func Verify(plaintext, digest string) bool {
	return Hash(plaintext) == digest
}
