package pagecache

import (
	"crypto/sha256"
	"encoding/hex"
)

// URLHash returns the hex-encoded SHA-256 digest of a URL. It is the
// deduplication key for the page cache: two distinct URLs never collide in
// practice, so a stored url_hash means the URL has been seen.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// ContentHash returns the hex-encoded SHA-256 digest of a page body. It is
// stored for downstream change detection; mirrored articles on distinct URLs
// are expected to share a content hash and are not deduplicated on it.
func ContentHash(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}
