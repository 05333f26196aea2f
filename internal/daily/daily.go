// Package daily picks the shared "word of the day".
//
// The index is a keyed blake2b hash of the UTC date, so every process with
// the same salt and answer list agrees on the word without storing anything.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, answersLen) for a date.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h, err := blake2b.New256(key(salt))
	if err != nil {
		// key() never exceeds blake2b.Size.
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Secret returns the answer for date from list.
func Secret(list *words.List, date time.Time, salt string) (idx int, secret string) {
	n, _ := list.Stats()
	idx = WordIndex(date, salt, n)
	return idx, list.AnswerAt(idx)
}

// key fits salt into a blake2b MAC key; long salts are hashed down.
func key(salt string) []byte {
	if len(salt) <= blake2b.Size {
		return []byte(salt)
	}
	sum := blake2b.Sum512([]byte(salt))
	return sum[:]
}
