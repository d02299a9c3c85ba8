package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPreview(t *testing.T) {
	classes := testClasses()
	rawRows := []RawRow{
		{"nama": "Budi", "kelas": "VII-A"},
		{"nama": "", "kelas": "VII-A"},
		{"nama": "Siti", "kelas": "VIII-B", "no_hp": "123"},
	}

	preview := BuildPreview(rawRows, classes)

	// One normalized row per input row, invalid ones included
	require.Len(t, preview.Rows, 3)
	assert.Equal(t, "Budi", preview.Rows[0].Nama)
	assert.Equal(t, "", preview.Rows[1].Nama)
	assert.Equal(t, "Siti", preview.Rows[2].Nama)

	require.Len(t, preview.Issues, 2)
	assert.Equal(t, 1, preview.Issues[0].RowIndex)
	assert.Equal(t, SeverityError, preview.Issues[0].Severity)
	assert.Equal(t, 2, preview.Issues[1].RowIndex)
	assert.Equal(t, SeverityWarning, preview.Issues[1].Severity)
}

func TestBuildPreview_EmptyInput(t *testing.T) {
	preview := BuildPreview(nil, testClasses())
	assert.Empty(t, preview.Rows)
	assert.Empty(t, preview.Issues)
}

func TestCommittableRows(t *testing.T) {
	classes := testClasses()
	rawRows := []RawRow{
		{"nama": "Budi", "kelas": "VII-A"},
		{"nama": "", "kelas": "VII-A"},                           // error: blocked
		{"nama": "Siti", "kelas": "VIII-B", "no_hp": "123"},      // warning: stays
		{"nama": "Andi", "kelas": "tidak-ada"},                   // error: blocked
		{"nama": "Dewi", "kelas": "vii-a", "jenis_kelamin": "P"}, // clean
	}

	rows := CommittableRows(BuildPreview(rawRows, classes))

	require.Len(t, rows, 3)
	assert.Equal(t, "Budi", rows[0].Nama)
	assert.Equal(t, "Siti", rows[1].Nama)
	assert.Equal(t, "Dewi", rows[2].Nama)
}

func TestHasBlockingIssues(t *testing.T) {
	classes := testClasses()

	clean := BuildPreview([]RawRow{{"nama": "Budi", "kelas": "VII-A"}}, classes)
	assert.False(t, HasBlockingIssues(clean))

	warnOnly := BuildPreview([]RawRow{{"nama": "Budi", "kelas": "VII-A", "no_hp": "123"}}, classes)
	assert.False(t, HasBlockingIssues(warnOnly))

	withErr := BuildPreview([]RawRow{{"nama": "", "kelas": "VII-A"}}, classes)
	assert.True(t, HasBlockingIssues(withErr))
}
