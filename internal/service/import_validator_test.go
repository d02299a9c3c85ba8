package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
)

func testClasses() []domain.Kelas {
	return []domain.Kelas{
		{BaseModel: domain.BaseModel{ID: uuid.New()}, Nama: "VII-A", Tingkat: 7},
		{BaseModel: domain.BaseModel{ID: uuid.New()}, Nama: "VIII-B", Tingkat: 8},
	}
}

func TestResolveClass(t *testing.T) {
	classes := testClasses()

	id := ResolveClass("VII-A", classes)
	require.NotNil(t, id)
	assert.Equal(t, classes[0].ID, *id)

	// Case-insensitive exact match
	id = ResolveClass("vii-a", classes)
	require.NotNil(t, id)
	assert.Equal(t, classes[0].ID, *id)

	assert.Nil(t, ResolveClass("IX-C", classes))
	assert.Nil(t, ResolveClass("", classes))
	assert.Nil(t, ResolveClass("VII", classes), "prefix is not a match")
}

func TestValidateRow_CleanRow(t *testing.T) {
	classes := testClasses()
	row := RawRow{
		"nama":          "  Budi Santoso ",
		"jenis_kelamin": "laki-laki",
		"kelas":         "VII-A",
		"no_hp":         "0812-3456-7890",
	}

	normalized, issues := ValidateRow(0, row, classes)

	assert.Empty(t, issues)
	assert.Equal(t, "Budi Santoso", normalized.Nama)
	assert.Equal(t, domain.GenderL, normalized.Gender)
	require.NotNil(t, normalized.KelasID)
	assert.Equal(t, classes[0].ID, *normalized.KelasID)
	require.NotNil(t, normalized.Telepon)
	assert.Equal(t, "081234567890", *normalized.Telepon)
	assert.Nil(t, normalized.FotoURL)
}

func TestValidateRow_HeaderAliases(t *testing.T) {
	classes := testClasses()
	row := RawRow{
		"name":       "Siti Aminah",
		"jk":         "P",
		"class_name": "VIII-B",
		"phone":      "081234567890",
	}

	normalized, issues := ValidateRow(0, row, classes)

	assert.Empty(t, issues)
	assert.Equal(t, "Siti Aminah", normalized.Nama)
	assert.Equal(t, domain.GenderP, normalized.Gender)
	require.NotNil(t, normalized.KelasID)
	assert.Equal(t, classes[1].ID, *normalized.KelasID)
}

func TestValidateRow_MissingNama(t *testing.T) {
	row := RawRow{"nama": "  ", "kelas": "VII-A"}

	_, issues := ValidateRow(3, row, testClasses())

	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, 3, issues[0].RowIndex)
	assert.Equal(t, 5, issues[0].RowNumber)
	assert.Contains(t, issues[0].Messages, "Nama wajib diisi")
}

func TestValidateRow_MissingKelas(t *testing.T) {
	row := RawRow{"nama": "Budi"}

	_, issues := ValidateRow(0, row, testClasses())

	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Messages, "Kelas wajib diisi")
}

func TestValidateRow_KelasNotFound(t *testing.T) {
	row := RawRow{"nama": "Budi", "kelas": "IX-Z"}

	normalized, issues := ValidateRow(0, row, testClasses())

	assert.Nil(t, normalized.KelasID)
	assert.Equal(t, "IX-Z", normalized.KelasNama)
	require.Len(t, issues, 1)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Messages, "Kelas 'IX-Z' tidak ditemukan")
}

func TestValidateRow_WarningsDoNotBlock(t *testing.T) {
	row := RawRow{
		"nama":          "Budi",
		"kelas":         "VII-A",
		"jenis_kelamin": "???",
		"no_hp":         "12345",
	}

	normalized, issues := ValidateRow(0, row, testClasses())

	require.Len(t, issues, 1)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Messages, "Gender harus L atau P")
	assert.Contains(t, issues[0].Messages, "Format nomor HP tidak lazim")

	// Unrecognized gender still yields a usable default
	assert.Equal(t, domain.GenderL, normalized.Gender)
}

// Every rule is checked; errors and warnings accumulate on the same row.
func TestValidateRow_CollectsAllFindings(t *testing.T) {
	row := RawRow{
		"jenis_kelamin": "x",
		"kelas":         "tidak-ada",
		"no_hp":         "999",
	}

	_, issues := ValidateRow(7, row, testClasses())

	require.Len(t, issues, 2)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Len(t, issues[0].Messages, 2) // nama + kelas not found
	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Len(t, issues[1].Messages, 2) // phone + gender
	assert.Equal(t, 7, issues[0].RowIndex)
	assert.Equal(t, 7, issues[1].RowIndex)
}

func TestValidateRow_BlankPhoneIsFine(t *testing.T) {
	row := RawRow{"nama": "Budi", "kelas": "VII-A", "no_hp": "   "}

	normalized, issues := ValidateRow(0, row, testClasses())

	assert.Empty(t, issues)
	assert.Nil(t, normalized.Telepon)
}

func TestValidateRow_PhonePattern(t *testing.T) {
	valid := []string{"081234567890", "+6281234567890", "6281234567890", "0812345678"}
	for _, phone := range valid {
		row := RawRow{"nama": "Budi", "kelas": "VII-A", "no_hp": phone}
		_, issues := ValidateRow(0, row, testClasses())
		assert.Empty(t, issues, "phone %q should pass", phone)
	}

	suspicious := []string{"12345678901", "08123", "9998123456789"}
	for _, phone := range suspicious {
		row := RawRow{"nama": "Budi", "kelas": "VII-A", "no_hp": phone}
		_, issues := ValidateRow(0, row, testClasses())
		require.Len(t, issues, 1, "phone %q should warn", phone)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
	}
}
