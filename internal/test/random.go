package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomSessionID returns an identifier shaped like a hosted checkout
// session id.
func RandomSessionID() string {
	buf := make([]byte, 24)
	for i := range buf {
		buf[i] = sessionIDAlphabet[randomIntn(len(sessionIDAlphabet))]
	}
	return "cs_test_" + string(buf)
}

// RandomPickupToken returns a token in the issued pickup format.
func RandomPickupToken() string {
	return fmt.Sprintf("T%d", 1000+randomIntn(9000))
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
