package service

import (
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
)

// RawRow is one spreadsheet row as parsed, keyed by the (lowercased,
// trimmed) column header. It only lives for the duration of one import
// attempt.
type RawRow map[string]string

// NormalizedRow is the canonical, import-ready form of one prospective
// student. It is always structurally complete; whether it may actually
// be committed is decided by the Issue list, not by its shape.
type NormalizedRow struct {
	Nama      string
	Gender    domain.Gender
	Telepon   *string // nil when the cell was blank
	KelasID   *uuid.UUID
	KelasNama string // sanitized label as typed, kept for review display
	FotoURL   *string // always nil at import time
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding for one source row. RowIndex is the
// 0-based position in the parsed data; RowNumber is the 1-based
// spreadsheet row (header row included) shown to the operator.
type Issue struct {
	RowIndex  int
	RowNumber int
	Severity  Severity
	Messages  []string
}

// ImportPreview holds the two parallel artifacts the operator reviews:
// every normalized row in original order, and the compacted issue list.
type ImportPreview struct {
	Rows   []NormalizedRow
	Issues []Issue
}

// Column aliases accepted in the header row. The first alias with a
// non-blank cell wins.
var (
	aliasNama    = []string{"nama", "name", "nama_lengkap", "nama lengkap"}
	aliasGender  = []string{"gender", "jenis_kelamin", "jenis kelamin", "jk", "l/p"}
	aliasTelepon = []string{"telepon", "no_hp", "no hp", "no_telp", "phone", "hp"}
	aliasKelas   = []string{"kelas", "class_name", "nama_kelas", "class"}
)

func lookupCell(row RawRow, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && SanitizeText(v) != "" {
			return v
		}
	}
	return ""
}
