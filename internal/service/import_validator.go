package service

import (
	"fmt"
	"regexp"

	"github.com/tatibku/backend/internal/domain"
)

// Lenient local phone shape: 0 / 62 / +62 prefix plus 8-11 further digits.
var phonePattern = regexp.MustCompile(`^(?:\+62|62|0)[0-9]{8,11}$`)

const (
	msgNamaRequired   = "Nama wajib diisi"
	msgKelasRequired  = "Kelas wajib diisi"
	msgKelasNotFound  = "Kelas '%s' tidak ditemukan"
	msgTeleponFormat  = "Format nomor HP tidak lazim"
	msgGenderSynonyms = "Gender harus L atau P"
)

// ValidateRow normalizes one raw row and applies every rule; findings are
// collected exhaustively, never short-circuited, so the operator sees the
// whole picture in one pass. Errors block the row, warnings never do.
func ValidateRow(rowIndex int, row RawRow, knownClasses []domain.Kelas) (NormalizedRow, []Issue) {
	nama := SanitizeText(lookupCell(row, aliasNama))
	rawGender := SanitizeText(lookupCell(row, aliasGender))
	kelasNama := SanitizeText(lookupCell(row, aliasKelas))
	telepon := NormalizePhone(lookupCell(row, aliasTelepon))

	normalized := NormalizedRow{
		Nama:      nama,
		Gender:    ResolveGender(rawGender),
		KelasID:   ResolveClass(kelasNama, knownClasses),
		KelasNama: kelasNama,
	}
	if telepon != "" {
		normalized.Telepon = &telepon
	}

	var errMsgs, warnMsgs []string

	if nama == "" {
		errMsgs = append(errMsgs, msgNamaRequired)
	}
	if kelasNama == "" {
		errMsgs = append(errMsgs, msgKelasRequired)
	} else if normalized.KelasID == nil {
		errMsgs = append(errMsgs, fmt.Sprintf(msgKelasNotFound, kelasNama))
	}
	if telepon != "" && !phonePattern.MatchString(telepon) {
		warnMsgs = append(warnMsgs, msgTeleponFormat)
	}
	if !GenderRecognized(rawGender) {
		warnMsgs = append(warnMsgs, msgGenderSynonyms)
	}

	var issues []Issue
	if len(errMsgs) > 0 {
		issues = append(issues, Issue{
			RowIndex:  rowIndex,
			RowNumber: rowIndex + 2,
			Severity:  SeverityError,
			Messages:  errMsgs,
		})
	}
	if len(warnMsgs) > 0 {
		issues = append(issues, Issue{
			RowIndex:  rowIndex,
			RowNumber: rowIndex + 2,
			Severity:  SeverityWarning,
			Messages:  warnMsgs,
		})
	}

	return normalized, issues
}
