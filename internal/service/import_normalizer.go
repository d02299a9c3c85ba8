package service

import (
	"strings"

	"github.com/tatibku/backend/internal/domain"
)

// Gender synonyms accepted in import files, matched case-insensitively.
var (
	genderLaki = map[string]bool{
		"l": true, "lk": true, "laki": true, "laki-laki": true,
		"pria": true, "m": true, "male": true,
	}
	genderPerempuan = map[string]bool{
		"p": true, "pr": true, "perempuan": true, "wanita": true,
		"f": true, "female": true,
	}
)

// SanitizeText strips angle brackets and surrounding whitespace. It never
// fails; blank input yields the empty string.
func SanitizeText(value string) string {
	value = strings.ReplaceAll(value, "<", "")
	value = strings.ReplaceAll(value, ">", "")
	return strings.TrimSpace(value)
}

// NormalizePhone cleans a phone cell to "", a bare digit string, or a
// +-prefixed digit string. Blank input is not an error here; whether a
// phone is required at all is the validator's call.
func NormalizePhone(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	plus := strings.HasPrefix(s, "+")
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if plus {
		return "+" + digits
	}
	return digits
}

// ResolveGender maps a free-text label onto L/P. Unrecognized or absent
// labels default to L; the validator separately warns on unrecognized
// non-blank labels so the default never hides bad data silently.
func ResolveGender(rawLabel string) domain.Gender {
	label := strings.ToLower(strings.TrimSpace(rawLabel))
	if genderPerempuan[label] {
		return domain.GenderP
	}
	return domain.GenderL
}

// GenderRecognized reports whether the label belongs to either synonym
// set. Blank counts as recognized (absent, not wrong).
func GenderRecognized(rawLabel string) bool {
	label := strings.ToLower(strings.TrimSpace(rawLabel))
	if label == "" {
		return true
	}
	return genderLaki[label] || genderPerempuan[label]
}
