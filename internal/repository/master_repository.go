package repository

import (
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/gorm"
)

type MasterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// Tahun Ajaran
func (r *MasterRepository) CreateTahunAjaran(ta *domain.TahunAjaran) error {
	return r.db.Create(ta).Error
}

func (r *MasterRepository) FindTahunAjaranByID(id uuid.UUID) (*domain.TahunAjaran, error) {
	var ta domain.TahunAjaran
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&ta).Error
	if err != nil {
		return nil, err
	}
	return &ta, nil
}

func (r *MasterRepository) GetActiveTahunAjaran() (*domain.TahunAjaran, error) {
	var ta domain.TahunAjaran
	err := r.db.Where("is_active = ? AND deleted_at IS NULL", true).First(&ta).Error
	if err != nil {
		return nil, err
	}
	return &ta, nil
}

func (r *MasterRepository) ListTahunAjaran() ([]domain.TahunAjaran, error) {
	var ta []domain.TahunAjaran
	err := r.db.Where("deleted_at IS NULL").Order("nama DESC").Find(&ta).Error
	return ta, err
}

func (r *MasterRepository) UpdateTahunAjaran(ta *domain.TahunAjaran) error {
	return r.db.Save(ta).Error
}

func (r *MasterRepository) DeleteTahunAjaran(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.TahunAjaran{}).Error
}

// DeactivateAllTahunAjaran keeps the single-active invariant before a
// new year is switched on.
func (r *MasterRepository) DeactivateAllTahunAjaran() error {
	return r.db.Model(&domain.TahunAjaran{}).Where("deleted_at IS NULL").Update("is_active", false).Error
}

func (r *MasterRepository) TahunAjaranHasKelas(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Kelas{}).Where("tahun_ajaran_id = ? AND deleted_at IS NULL", id).Count(&count).Error
	return count > 0, err
}

// Guru
func (r *MasterRepository) CreateGuru(guru *domain.Guru) error {
	return r.db.Create(guru).Error
}

func (r *MasterRepository) FindGuruByID(id uuid.UUID) (*domain.Guru, error) {
	var guru domain.Guru
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&guru).Error
	if err != nil {
		return nil, err
	}
	return &guru, nil
}

func (r *MasterRepository) ListGuru(search string) ([]domain.Guru, error) {
	var guru []domain.Guru
	query := r.db.Where("deleted_at IS NULL")
	if search != "" {
		query = query.Where("nama ILIKE ?", "%"+search+"%")
	}
	err := query.Order("nama ASC").Find(&guru).Error
	return guru, err
}

func (r *MasterRepository) UpdateGuru(guru *domain.Guru) error {
	return r.db.Save(guru).Error
}

func (r *MasterRepository) DeleteGuru(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.Guru{}).Error
}

func (r *MasterRepository) GuruHasCatatan(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.CatatanPoin{}).Where("guru_id = ? AND deleted_at IS NULL", id).Count(&count).Error
	return count > 0, err
}

// Kelas
func (r *MasterRepository) CreateKelas(kelas *domain.Kelas) error {
	return r.db.Create(kelas).Error
}

func (r *MasterRepository) FindKelasByID(id uuid.UUID) (*domain.Kelas, error) {
	var kelas domain.Kelas
	err := r.db.Preload("TahunAjaran").Preload("Wali").
		Where("id = ? AND deleted_at IS NULL", id).First(&kelas).Error
	if err != nil {
		return nil, err
	}
	return &kelas, nil
}

func (r *MasterRepository) ListKelas(tahunAjaranID *uuid.UUID, tingkat *int) ([]domain.Kelas, error) {
	var kelas []domain.Kelas
	query := r.db.Preload("TahunAjaran").Preload("Wali").Where("deleted_at IS NULL")
	if tahunAjaranID != nil {
		query = query.Where("tahun_ajaran_id = ?", *tahunAjaranID)
	}
	if tingkat != nil {
		query = query.Where("tingkat = ?", *tingkat)
	}
	err := query.Order("tingkat ASC, nama ASC").Find(&kelas).Error
	return kelas, err
}

// ListKelasForTahunAjaran returns the plain class list the import
// pipeline resolves against.
func (r *MasterRepository) ListKelasForTahunAjaran(tahunAjaranID uuid.UUID) ([]domain.Kelas, error) {
	var kelas []domain.Kelas
	err := r.db.Where("tahun_ajaran_id = ? AND deleted_at IS NULL", tahunAjaranID).
		Order("nama ASC").Find(&kelas).Error
	return kelas, err
}

func (r *MasterRepository) UpdateKelas(kelas *domain.Kelas) error {
	return r.db.Save(kelas).Error
}

func (r *MasterRepository) DeleteKelas(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.Kelas{}).Error
}

func (r *MasterRepository) KelasNamaExists(tahunAjaranID uuid.UUID, nama string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Kelas{}).
		Where("tahun_ajaran_id = ? AND LOWER(nama) = LOWER(?) AND deleted_at IS NULL", tahunAjaranID, nama)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *MasterRepository) KelasHasSiswa(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Siswa{}).Where("kelas_id = ? AND deleted_at IS NULL", id).Count(&count).Error
	return count > 0, err
}

// Jenis Poin
func (r *MasterRepository) CreateJenisPoin(jenis *domain.JenisPoin) error {
	return r.db.Create(jenis).Error
}

func (r *MasterRepository) FindJenisPoinByID(id uuid.UUID) (*domain.JenisPoin, error) {
	var jenis domain.JenisPoin
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&jenis).Error
	if err != nil {
		return nil, err
	}
	return &jenis, nil
}

func (r *MasterRepository) ListJenisPoin(kategori *domain.PoinKategori) ([]domain.JenisPoin, error) {
	var jenis []domain.JenisPoin
	query := r.db.Where("deleted_at IS NULL")
	if kategori != nil {
		query = query.Where("kategori = ?", *kategori)
	}
	err := query.Order("kategori ASC, poin DESC, nama ASC").Find(&jenis).Error
	return jenis, err
}

func (r *MasterRepository) UpdateJenisPoin(jenis *domain.JenisPoin) error {
	return r.db.Save(jenis).Error
}

func (r *MasterRepository) DeleteJenisPoin(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.JenisPoin{}).Error
}

// Counts for the dashboard
func (r *MasterRepository) CountGuru() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Guru{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *MasterRepository) CountKelas(tahunAjaranID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Kelas{}).
		Where("tahun_ajaran_id = ? AND deleted_at IS NULL", tahunAjaranID).
		Count(&count).Error
	return count, err
}

func (r *MasterRepository) JenisPoinHasCatatan(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.CatatanPoin{}).Where("jenis_id = ? AND deleted_at IS NULL", id).Count(&count).Error
	return count > 0, err
}
