package dto

// ImportIssueDTO is one validation finding for one source row.
type ImportIssueDTO struct {
	RowNumber int      `json:"row_number"` // 1-based spreadsheet row (header = row 1)
	Severity  string   `json:"severity"`   // "error" | "warning"
	Messages  []string `json:"messages"`
}

// ImportRowDTO is the normalized form of one parsed row, shown for review.
type ImportRowDTO struct {
	Nama      string  `json:"nama"`
	Gender    string  `json:"gender"`
	Telepon   *string `json:"telepon"`
	KelasNama string  `json:"kelas_nama"`
	Resolved  bool    `json:"kelas_resolved"`
}

// ImportPreviewResponse is the dry-run result the operator reviews
// before committing.
type ImportPreviewResponse struct {
	TotalRows   int              `json:"total_rows"`
	Committable int              `json:"committable"`
	Rows        []ImportRowDTO   `json:"rows"`
	Issues      []ImportIssueDTO `json:"issues"`
}

// ImportCommitResponse reports a finished (or aborted) commit.
type ImportCommitResponse struct {
	TotalRows       int             `json:"total_rows"`
	CreatedStudents int             `json:"created_students"`
	Batches         int             `json:"batches"`
	Credentials     []CredentialDTO `json:"credentials"`
}
