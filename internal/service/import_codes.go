package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Registration code alphabet leaves out the lookalikes (I, L, O, 0, 1)
// so codes survive being read over the phone.
const (
	kodePrefix   = "SIS"
	kodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	kodeGroupLen = 4
)

// NewKodeRegistrasi generates a fresh parent-access code, e.g.
// SIS-7XKM-Q2WN. Uniqueness is enforced by the database index, not
// checked here.
func NewKodeRegistrasi() string {
	var b strings.Builder
	b.WriteString(kodePrefix)
	for g := 0; g < 2; g++ {
		b.WriteByte('-')
		for i := 0; i < kodeGroupLen; i++ {
			b.WriteByte(kodeAlphabet[randomInt(len(kodeAlphabet))])
		}
	}
	return b.String()
}

// NewPIN generates a 4-digit numeric PIN, leading zeros allowed.
func NewPIN() string {
	digits := make([]byte, 4)
	for i := range digits {
		digits[i] = byte('0' + randomInt(10))
	}
	return string(digits)
}

func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return int(v.Int64())
}
