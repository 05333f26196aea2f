package words

import (
	"crypto/rand"
	"math/big"
)

// Rand is the source Random draws from. *math/rand/v2.Rand satisfies it,
// so tests can pass a seeded generator.
type Rand interface {
	IntN(n int) int
}

// CryptoRand draws from crypto/rand. It is the default for real games.
type CryptoRand struct{}

// IntN returns a uniform int in [0, n). It panics if n <= 0.
func (CryptoRand) IntN(n int) int {
	if n <= 0 {
		panic("words: CryptoRand.IntN with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
