package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint computes a deterministic hash over (id, search doc) pairs for
// every item. Identical fingerprint implies an identical (id, doc) set, which
// is the invalidation contract for cached embeddings.
func Fingerprint(items []Item) string {
	h := sha256.New()
	var sb strings.Builder
	for i := range items {
		sb.Reset()
		sb.WriteString(items[i].ID)
		sb.WriteByte('|')
		sb.WriteString(items[i].SearchDoc)
		sb.WriteByte('\n')
		h.Write([]byte(sb.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
