package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.TahunAjaran{},
		&domain.Guru{},
		&domain.Kelas{},
		&domain.JenisPoin{},
		&domain.Siswa{},
		&domain.CatatanPoin{},
	)
	require.NoError(t, err)

	return db
}

func makeSiswa(nama, kode string) domain.Siswa {
	return domain.Siswa{
		Nama:           nama,
		Gender:         domain.GenderL,
		KodeRegistrasi: kode,
		PIN:            "1234",
	}
}

func TestBulkInsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	batch := []domain.Siswa{
		makeSiswa("Budi", "SIS-AAAA-AAAA"),
		makeSiswa("Siti", "SIS-BBBB-BBBB"),
		makeSiswa("Andi", "SIS-CCCC-CCCC"),
	}
	require.NoError(t, repo.BulkInsert(batch))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// A batch with a duplicate registration code must land as a whole or not
// at all.
func TestBulkInsert_Atomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	require.NoError(t, repo.Create(&domain.Siswa{
		Nama: "Sudah Ada", Gender: domain.GenderL, KodeRegistrasi: "SIS-XXXX-XXXX", PIN: "0000",
	}))

	batch := []domain.Siswa{
		makeSiswa("Budi", "SIS-AAAA-AAAA"),
		makeSiswa("Siti", "SIS-XXXX-XXXX"), // collides with existing code
		makeSiswa("Andi", "SIS-CCCC-CCCC"),
	}
	err := repo.BulkInsert(batch)
	require.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "failed batch must leave nothing behind")
}

func TestBulkInsert_EmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	assert.NoError(t, repo.BulkInsert(nil))
}

func TestFindByKodeRegistrasi(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	require.NoError(t, repo.Create(&domain.Siswa{
		Nama: "Budi", Gender: domain.GenderL, KodeRegistrasi: "SIS-QQQQ-WWWW", PIN: "4321",
	}))

	found, err := repo.FindByKodeRegistrasi("SIS-QQQQ-WWWW")
	require.NoError(t, err)
	assert.Equal(t, "Budi", found.Nama)
	assert.Equal(t, "4321", found.PIN)

	_, err = repo.FindByKodeRegistrasi("SIS-ZZZZ-ZZZZ")
	assert.Error(t, err)
}

func TestList_FilterByKelas(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	kelas := domain.Kelas{TahunAjaranID: uuid.New(), Nama: "VII-A", Tingkat: 7}
	require.NoError(t, db.Create(&kelas).Error)

	inClass := makeSiswa("Budi", "SIS-AAAA-AAAA")
	inClass.KelasID = &kelas.ID
	require.NoError(t, repo.Create(&inClass))
	other := makeSiswa("Siti", "SIS-BBBB-BBBB")
	require.NoError(t, repo.Create(&other))

	siswa, total, err := repo.List("", &kelas.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, siswa, 1)
	assert.Equal(t, "Budi", siswa[0].Nama)
	require.NotNil(t, siswa[0].Kelas)
	assert.Equal(t, "VII-A", siswa[0].Kelas.Nama)
}

func TestList_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	for i := 0; i < 5; i++ {
		s := makeSiswa(fmt.Sprintf("Siswa %c", 'A'+i), fmt.Sprintf("SIS-AAAA-AAA%c", '2'+i))
		require.NoError(t, repo.Create(&s))
	}

	page1, total, err := repo.List("", nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Siswa A", page1[0].Nama)

	page3, _, err := repo.List("", nil, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	s := makeSiswa("Budi", "SIS-AAAA-AAAA")
	require.NoError(t, repo.Create(&s))

	require.NoError(t, repo.Delete(s.ID))

	_, err := repo.FindByID(s.ID)
	assert.Error(t, err)
}

func TestTopByPoin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	students := []struct {
		nama string
		poin int
	}{
		{"Nol", 0},
		{"Ringan", 10},
		{"Berat", 80},
		{"Sedang", 35},
		{"Negatif", -15},
	}
	for i, st := range students {
		s := makeSiswa(st.nama, fmt.Sprintf("SIS-AAAA-AAB%c", '2'+i))
		s.TotalPoin = st.poin
		require.NoError(t, repo.Create(&s))
	}

	top, err := repo.TopByPoin(3)
	require.NoError(t, err)

	// Highest penalty first; zero and negative totals never chart
	require.Len(t, top, 3)
	assert.Equal(t, "Berat", top[0].Nama)
	assert.Equal(t, "Sedang", top[1].Nama)
	assert.Equal(t, "Ringan", top[2].Nama)
}
