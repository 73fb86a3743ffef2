// internal/daily/daily.go
//
// Deterministic word-of-the-day selection. Every server configured with the
// same salt and answer count picks the same index for a given UTC date.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Schedule maps calendar days onto indexes of an answer list of Size words.
type Schedule struct {
	Salt string
	Size int
}

// Index returns HMAC-SHA256(salt, YYYY-MM-DD) mod Size, or 0 for an empty list.
func (s Schedule) Index(t time.Time) int {
	if s.Size <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(s.Salt))
	mac.Write([]byte(DateKey(t)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(s.Size))
}
