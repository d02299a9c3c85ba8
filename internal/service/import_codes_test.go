package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKodeRegistrasi_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		kode := NewKodeRegistrasi()
		assert.Regexp(t, `^SIS-[A-Z2-9]{4}-[A-Z2-9]{4}$`, kode)

		// Lookalike characters are excluded from the alphabet
		for _, c := range "IL01O" {
			assert.NotContains(t, kode[4:], string(c), "kode %s", kode)
		}
	}
}

func TestNewKodeRegistrasi_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[NewKodeRegistrasi()] = true
	}
	// 31^8 possibilities; 200 draws colliding would mean a broken generator
	assert.Len(t, seen, 200)
}

func TestNewPIN(t *testing.T) {
	for i := 0; i < 100; i++ {
		pin := NewPIN()
		assert.Len(t, pin, 4)
		for _, c := range pin {
			assert.True(t, strings.ContainsRune("0123456789", c), "pin %s", pin)
		}
	}
}
