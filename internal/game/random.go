package game

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// Source yields uniform integers in [0, n). *math/rand/v2.Rand satisfies it,
// but is not safe for concurrent use; wrap shared sources with Locked.
type Source interface {
	IntN(n int) int
}

// Locked serialises calls to src. A nil src stays nil.
func Locked(src Source) Source {
	switch src.(type) {
	case nil:
		return nil
	case CryptoSource, *lockedSource:
		return src
	}
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// CryptoSource draws from the system entropy pool.
type CryptoSource struct{}

// IntN panics if n <= 0 or the entropy pool cannot be read.
func (CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("game: CryptoSource.IntN called with n <= 0")
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: reading crypto/rand: " + err.Error())
	}
	return int(nBig.Int64())
}
