package service

import (
	"errors"
	"fmt"

	"github.com/tatibku/backend/internal/domain"
)

// ImportBatchSize bounds the number of students submitted in one
// persistence call.
const ImportBatchSize = 50

var (
	// ErrNothingToImport means the committable set is empty; the
	// persistence collaborator is never called.
	ErrNothingToImport = errors.New("tidak ada baris yang dapat diimpor")
	// ErrPreviewHasErrors blocks the whole commit while any row still
	// carries a blocking issue. The operator is expected to clean the
	// file and re-upload rather than import around the bad rows.
	ErrPreviewHasErrors = errors.New("masih ada baris dengan error, perbaiki file lalu unggah ulang")
)

// StudentBulkInserter is the persistence collaborator. A call either
// persists the whole batch or none of it.
type StudentBulkInserter interface {
	BulkInsert(siswa []domain.Siswa) error
}

// ProgressFunc observes the monotonically increasing (done, total)
// counter after each completed batch.
type ProgressFunc func(done, total int)

type ImportCommitter struct {
	inserter StudentBulkInserter
	progress ProgressFunc
}

func NewImportCommitter(inserter StudentBulkInserter, progress ProgressFunc) *ImportCommitter {
	return &ImportCommitter{inserter: inserter, progress: progress}
}

// ImportResult reports what actually landed, including after a
// mid-sequence failure.
type ImportResult struct {
	Created int
	Batches int
	Siswa   []domain.Siswa // decorated rows as submitted, credentials included
}

// Commit partitions the committable set into fixed-size batches and
// submits them strictly in sequence. Each row is decorated at commit
// time with a fresh registration code, PIN and zero points. A batch
// failure aborts the remainder immediately; batches already committed
// stay committed. No retry, no rollback - the operator re-attempts with
// a corrected file.
func (ic *ImportCommitter) Commit(preview ImportPreview) (*ImportResult, error) {
	rows := CommittableRows(preview)
	if len(rows) == 0 {
		return nil, ErrNothingToImport
	}
	if HasBlockingIssues(preview) {
		return nil, ErrPreviewHasErrors
	}

	total := len(rows)
	result := &ImportResult{}

	for start := 0; start < total; start += ImportBatchSize {
		end := min(start+ImportBatchSize, total)

		batch := make([]domain.Siswa, 0, end-start)
		for _, row := range rows[start:end] {
			batch = append(batch, domain.Siswa{
				Nama:           row.Nama,
				Gender:         row.Gender,
				Telepon:        row.Telepon,
				KelasID:        row.KelasID,
				FotoURL:        nil,
				KodeRegistrasi: NewKodeRegistrasi(),
				PIN:            NewPIN(),
				TotalPoin:      0,
			})
		}

		if err := ic.inserter.BulkInsert(batch); err != nil {
			return result, fmt.Errorf(
				"batch %d gagal setelah %d siswa tersimpan: %w",
				result.Batches+1, result.Created, err,
			)
		}

		result.Batches++
		result.Created += len(batch)
		result.Siswa = append(result.Siswa, batch...)
		if ic.progress != nil {
			ic.progress(result.Created, total)
		}
	}

	return result, nil
}
