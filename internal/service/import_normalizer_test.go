package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tatibku/backend/internal/domain"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Budi Santoso", SanitizeText("  Budi Santoso  "))
	assert.Equal(t, "scriptalert(1)/script", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "", SanitizeText("   "))
	assert.Equal(t, "", SanitizeText(""))
	assert.Equal(t, "Siti", SanitizeText("< Siti >"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0812-3456-7890", "081234567890"},
		{"+62 812 3456 7890", "+6281234567890"},
		{"(0274) 555123", "0274555123"},
		{"62812345678", "62812345678"},
		{"", ""},
		{"   ", ""},
		{"abc", ""},
		{"+", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

// Normalizing an already normalized phone must change nothing.
func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{
		"0812-3456-7890",
		"+62 812 3456 7890",
		"hp: 0812345678",
		"",
		"++62812345678",
	}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "input %q", in)
	}
}

// A leading + survives only when it is actually leading.
func TestNormalizePhone_PlusOnlyWhenLeading(t *testing.T) {
	assert.Equal(t, "+62812", NormalizePhone("+62812"))
	assert.Equal(t, "62812", NormalizePhone("628+12"))
	assert.Equal(t, "+0812", NormalizePhone(" +0812"))
}

func TestResolveGender(t *testing.T) {
	laki := []string{"L", "l", "Laki-laki", "LAKI", "pria", "M", "male", "lk"}
	for _, in := range laki {
		assert.Equal(t, domain.GenderL, ResolveGender(in), "input %q", in)
	}

	perempuan := []string{"P", "p", "Perempuan", "WANITA", "F", "female", "pr"}
	for _, in := range perempuan {
		assert.Equal(t, domain.GenderP, ResolveGender(in), "input %q", in)
	}

	// Unrecognized and blank both fall back to L
	assert.Equal(t, domain.GenderL, ResolveGender("banci"))
	assert.Equal(t, domain.GenderL, ResolveGender(""))
	assert.Equal(t, domain.GenderL, ResolveGender("  "))
}

// Every input lands on exactly L or P, whatever the label.
func TestResolveGender_AlwaysValid(t *testing.T) {
	inputs := []string{"", "x", "L", "p", "laki-laki", "?", "123", "perempuan "}
	for _, in := range inputs {
		g := ResolveGender(in)
		assert.True(t, g == domain.GenderL || g == domain.GenderP, "input %q yielded %q", in, g)
	}
}

func TestGenderRecognized(t *testing.T) {
	assert.True(t, GenderRecognized("L"))
	assert.True(t, GenderRecognized("Perempuan"))
	assert.True(t, GenderRecognized(""), "blank counts as absent, not wrong")
	assert.True(t, GenderRecognized("  "))
	assert.False(t, GenderRecognized("xyz"))
	assert.False(t, GenderRecognized("LP"))
}
