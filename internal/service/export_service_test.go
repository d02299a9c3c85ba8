package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
)

func TestBuildRosterXLSX(t *testing.T) {
	telepon := "081234567890"
	siswa := []domain.Siswa{
		{
			Nama:           "Budi Santoso",
			Gender:         domain.GenderL,
			Telepon:        &telepon,
			KodeRegistrasi: "SIS-AAAA-AAAA",
			TotalPoin:      15,
			Kelas:          &domain.Kelas{Nama: "VII-A"},
		},
		{
			Nama:           "Siti Aminah",
			Gender:         domain.GenderP,
			KodeRegistrasi: "SIS-BBBB-BBBB",
		},
	}

	f, err := BuildRosterXLSX(siswa)
	require.NoError(t, err)

	rows, err := f.GetRows("Siswa")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Nama", rows[0][1])
	assert.Equal(t, "Budi Santoso", rows[1][1])
	assert.Equal(t, "L", rows[1][2])
	assert.Equal(t, "VII-A", rows[1][3])
	assert.Equal(t, "SIS-AAAA-AAAA", rows[1][5])
	assert.Equal(t, "Siti Aminah", rows[2][1])
	assert.Equal(t, "P", rows[2][2])
}

func TestBuildRecapPDF(t *testing.T) {
	records := []domain.CatatanPoin{
		{
			Tanggal: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Poin:    5,
			Siswa:   &domain.Siswa{Nama: "Budi"},
			Jenis:   &domain.JenisPoin{Nama: "Terlambat", Kategori: domain.KategoriPelanggaran},
			Guru:    &domain.Guru{Nama: "Pak Ahmad"},
		},
		{
			Tanggal: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Poin:    -20,
			Siswa:   &domain.Siswa{Nama: "Siti"},
			Jenis:   &domain.JenisPoin{Nama: "Juara lomba", Kategori: domain.KategoriPrestasi},
			Guru:    &domain.Guru{Nama: "Bu Rina"},
		},
	}

	buf, err := BuildRecapPDF("VII-A", records, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, buf)

	data := buf.Bytes()
	assert.Greater(t, len(data), 500)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuildRecapPDF_NoRecords(t *testing.T) {
	buf, err := BuildRecapPDF("VII-A", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(buf.Bytes()[:4]))
}
