package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/gorm"
)

type recordFixture struct {
	db          *gorm.DB
	repo        *RecordRepository
	siswa       domain.Siswa
	guru        domain.Guru
	pelanggaran domain.JenisPoin
	prestasi    domain.JenisPoin
}

func setupRecordFixture(t *testing.T) *recordFixture {
	db := setupTestDB(t)

	f := &recordFixture{
		db:          db,
		repo:        NewRecordRepository(db),
		siswa:       makeSiswa("Budi", "SIS-AAAA-AAAA"),
		guru:        domain.Guru{Nama: "Pak Ahmad"},
		pelanggaran: domain.JenisPoin{Nama: "Terlambat", Kategori: domain.KategoriPelanggaran, Poin: 5},
		prestasi:    domain.JenisPoin{Nama: "Juara lomba", Kategori: domain.KategoriPrestasi, Poin: 20},
	}
	require.NoError(t, db.Create(&f.siswa).Error)
	require.NoError(t, db.Create(&f.guru).Error)
	require.NoError(t, db.Create(&f.pelanggaran).Error)
	require.NoError(t, db.Create(&f.prestasi).Error)
	return f
}

func (f *recordFixture) totalPoin(t *testing.T) int {
	var s domain.Siswa
	require.NoError(t, f.db.First(&s, "id = ?", f.siswa.ID).Error)
	return s.TotalPoin
}

func TestRecordCreate_AdjustsTotal(t *testing.T) {
	f := setupRecordFixture(t)

	catatan := domain.CatatanPoin{
		SiswaID: f.siswa.ID,
		JenisID: f.pelanggaran.ID,
		GuruID:  f.guru.ID,
		Tanggal: time.Now(),
		Poin:    f.pelanggaran.Poin,
	}
	require.NoError(t, f.repo.Create(&catatan))
	assert.Equal(t, 5, f.totalPoin(t))

	// Prestasi carries a negative snapshot and pulls the total down
	reward := domain.CatatanPoin{
		SiswaID: f.siswa.ID,
		JenisID: f.prestasi.ID,
		GuruID:  f.guru.ID,
		Tanggal: time.Now(),
		Poin:    -f.prestasi.Poin,
	}
	require.NoError(t, f.repo.Create(&reward))
	assert.Equal(t, -15, f.totalPoin(t))
}

func TestRecordDelete_GivesPointsBack(t *testing.T) {
	f := setupRecordFixture(t)

	catatan := domain.CatatanPoin{
		SiswaID: f.siswa.ID,
		JenisID: f.pelanggaran.ID,
		GuruID:  f.guru.ID,
		Tanggal: time.Now(),
		Poin:    5,
	}
	require.NoError(t, f.repo.Create(&catatan))
	require.Equal(t, 5, f.totalPoin(t))

	require.NoError(t, f.repo.Delete(catatan.ID))
	assert.Equal(t, 0, f.totalPoin(t))

	_, err := f.repo.FindByID(catatan.ID)
	assert.Error(t, err)
}

func TestRecordDelete_Missing(t *testing.T) {
	f := setupRecordFixture(t)
	err := f.repo.Delete(f.siswa.ID) // no record with this id
	assert.Error(t, err)
	assert.Equal(t, 0, f.totalPoin(t))
}

func TestListBySiswa_Order(t *testing.T) {
	f := setupRecordFixture(t)

	older := domain.CatatanPoin{
		SiswaID: f.siswa.ID, JenisID: f.pelanggaran.ID, GuruID: f.guru.ID,
		Tanggal: time.Now().AddDate(0, 0, -3), Poin: 5,
	}
	newer := domain.CatatanPoin{
		SiswaID: f.siswa.ID, JenisID: f.prestasi.ID, GuruID: f.guru.ID,
		Tanggal: time.Now(), Poin: -20,
	}
	require.NoError(t, f.repo.Create(&older))
	require.NoError(t, f.repo.Create(&newer))

	records, err := f.repo.ListBySiswa(f.siswa.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first, with the type preloaded
	assert.Equal(t, -20, records[0].Poin)
	require.NotNil(t, records[0].Jenis)
	assert.Equal(t, domain.KategoriPrestasi, records[0].Jenis.Kategori)
}

func TestRecordList_Filters(t *testing.T) {
	f := setupRecordFixture(t)

	for i := 0; i < 3; i++ {
		c := domain.CatatanPoin{
			SiswaID: f.siswa.ID, JenisID: f.pelanggaran.ID, GuruID: f.guru.ID,
			Tanggal: time.Now().AddDate(0, 0, -i), Poin: 5,
		}
		require.NoError(t, f.repo.Create(&c))
	}
	reward := domain.CatatanPoin{
		SiswaID: f.siswa.ID, JenisID: f.prestasi.ID, GuruID: f.guru.ID,
		Tanggal: time.Now(), Poin: -20,
	}
	require.NoError(t, f.repo.Create(&reward))

	kategori := domain.KategoriPelanggaran
	records, total, err := f.repo.List(RecordFilter{Kategori: &kategori}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)

	records, total, err = f.repo.List(RecordFilter{SiswaID: &f.siswa.ID}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, records, 4)
}

func TestCountByKategoriSince(t *testing.T) {
	f := setupRecordFixture(t)

	inWindow := domain.CatatanPoin{
		SiswaID: f.siswa.ID, JenisID: f.pelanggaran.ID, GuruID: f.guru.ID,
		Tanggal: time.Now(), Poin: 5,
	}
	outOfWindow := domain.CatatanPoin{
		SiswaID: f.siswa.ID, JenisID: f.pelanggaran.ID, GuruID: f.guru.ID,
		Tanggal: time.Now().AddDate(0, -2, 0), Poin: 5,
	}
	require.NoError(t, f.repo.Create(&inWindow))
	require.NoError(t, f.repo.Create(&outOfWindow))

	count, err := f.repo.CountByKategoriSince(domain.KategoriPelanggaran, time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = f.repo.CountByKategoriSince(domain.KategoriPrestasi, time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
