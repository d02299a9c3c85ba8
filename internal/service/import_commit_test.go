package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
)

// fakeInserter records every batch and can be told to fail at a given
// batch number (1-based).
type fakeInserter struct {
	batches     [][]domain.Siswa
	failAtBatch int
}

func (f *fakeInserter) BulkInsert(siswa []domain.Siswa) error {
	if f.failAtBatch > 0 && len(f.batches)+1 == f.failAtBatch {
		return errors.New("database mati")
	}
	f.batches = append(f.batches, siswa)
	return nil
}

func cleanPreview(n int) ImportPreview {
	rawRows := make([]RawRow, n)
	for i := range rawRows {
		rawRows[i] = RawRow{
			"nama":  fmt.Sprintf("Siswa %d", i+1),
			"kelas": "VII-A",
		}
	}
	return BuildPreview(rawRows, testClasses())
}

func TestCommit_NothingToImport(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	_, err := committer.Commit(ImportPreview{})
	assert.ErrorIs(t, err, ErrNothingToImport)
	assert.Empty(t, inserter.batches, "persistence must not be touched")
}

func TestCommit_BlockedByErrors(t *testing.T) {
	preview := BuildPreview([]RawRow{
		{"nama": "Budi", "kelas": "VII-A"},
		{"nama": "", "kelas": "VII-A"},
	}, testClasses())

	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	_, err := committer.Commit(preview)
	assert.ErrorIs(t, err, ErrPreviewHasErrors)
	assert.Empty(t, inserter.batches)
}

func TestCommit_SingleBatch(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(3))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Batches)
	require.Len(t, inserter.batches, 1)
	assert.Len(t, inserter.batches[0], 3)
}

func TestCommit_BatchPartitioning(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	// 120 rows split as 50 + 50 + 20
	result, err := committer.Commit(cleanPreview(120))
	require.NoError(t, err)

	assert.Equal(t, 120, result.Created)
	assert.Equal(t, 3, result.Batches)
	require.Len(t, inserter.batches, 3)
	assert.Len(t, inserter.batches[0], 50)
	assert.Len(t, inserter.batches[1], 50)
	assert.Len(t, inserter.batches[2], 20)
}

func TestCommit_ExactMultipleOfBatchSize(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(100))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Batches)
	require.Len(t, inserter.batches, 2)
	assert.Len(t, inserter.batches[0], 50)
	assert.Len(t, inserter.batches[1], 50)
}

func TestCommit_DecoratesEveryRow(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(5))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, s := range result.Siswa {
		assert.Regexp(t, `^SIS-[A-Z2-9]{4}-[A-Z2-9]{4}$`, s.KodeRegistrasi)
		assert.Regexp(t, `^[0-9]{4}$`, s.PIN)
		assert.Equal(t, 0, s.TotalPoin)
		assert.Nil(t, s.FotoURL)
		seen[s.KodeRegistrasi] = true
	}
	assert.Len(t, seen, 5, "codes within one commit should differ")
}

func TestCommit_PreservesRowOrder(t *testing.T) {
	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(60))
	require.NoError(t, err)

	require.Len(t, result.Siswa, 60)
	for i, s := range result.Siswa {
		assert.Equal(t, fmt.Sprintf("Siswa %d", i+1), s.Nama)
	}
}

func TestCommit_AbortsOnBatchFailure(t *testing.T) {
	inserter := &fakeInserter{failAtBatch: 2}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(120))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2 gagal setelah 50 siswa tersimpan")

	// Partial result reports what actually landed
	require.NotNil(t, result)
	assert.Equal(t, 50, result.Created)
	assert.Equal(t, 1, result.Batches)
	assert.Len(t, result.Siswa, 50)

	// No retry: only the first batch reached the inserter
	assert.Len(t, inserter.batches, 1)
}

func TestCommit_FirstBatchFailure(t *testing.T) {
	inserter := &fakeInserter{failAtBatch: 1}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(cleanPreview(10))
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Batches)
}

func TestCommit_ProgressReporting(t *testing.T) {
	inserter := &fakeInserter{}
	var progress [][2]int
	committer := NewImportCommitter(inserter, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	_, err := committer.Commit(cleanPreview(120))
	require.NoError(t, err)

	require.Len(t, progress, 3)
	assert.Equal(t, [2]int{50, 120}, progress[0])
	assert.Equal(t, [2]int{100, 120}, progress[1])
	assert.Equal(t, [2]int{120, 120}, progress[2])
}

func TestCommit_WarningRowsAreCommitted(t *testing.T) {
	preview := BuildPreview([]RawRow{
		{"nama": "Budi", "kelas": "VII-A", "no_hp": "123"},
	}, testClasses())

	inserter := &fakeInserter{}
	committer := NewImportCommitter(inserter, nil)

	result, err := committer.Commit(preview)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}
