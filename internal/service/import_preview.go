package service

import "github.com/tatibku/backend/internal/domain"

// BuildPreview runs the row validator over an entire parsed file and
// assembles the review artifacts: one normalized row per input row
// (invalid ones included, original order) and the compacted issue list.
// Pure computation; neither input is mutated.
func BuildPreview(rawRows []RawRow, knownClasses []domain.Kelas) ImportPreview {
	preview := ImportPreview{
		Rows: make([]NormalizedRow, 0, len(rawRows)),
	}
	for i, row := range rawRows {
		normalized, issues := ValidateRow(i, row, knownClasses)
		preview.Rows = append(preview.Rows, normalized)
		preview.Issues = append(preview.Issues, issues...)
	}
	return preview
}

// CommittableRows returns the rows carrying no error-severity issue, in
// original order. Warning-only rows stay in.
func CommittableRows(preview ImportPreview) []NormalizedRow {
	blocked := make(map[int]bool)
	for _, issue := range preview.Issues {
		if issue.Severity == SeverityError {
			blocked[issue.RowIndex] = true
		}
	}

	rows := make([]NormalizedRow, 0, len(preview.Rows))
	for i, row := range preview.Rows {
		if !blocked[i] {
			rows = append(rows, row)
		}
	}
	return rows
}

// HasBlockingIssues reports whether any row in the preview still carries
// an error-severity issue.
func HasBlockingIssues(preview ImportPreview) bool {
	for _, issue := range preview.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
