package repository

import (
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(siswa *domain.Siswa) error {
	return r.db.Create(siswa).Error
}

// BulkInsert persists one import batch inside a single transaction, so a
// batch either lands whole or not at all.
func (r *StudentRepository) BulkInsert(siswa []domain.Siswa) error {
	if len(siswa) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range siswa {
			if err := tx.Create(&siswa[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StudentRepository) FindByID(id uuid.UUID) (*domain.Siswa, error) {
	var siswa domain.Siswa
	err := r.db.Preload("Kelas").Where("id = ? AND deleted_at IS NULL", id).First(&siswa).Error
	if err != nil {
		return nil, err
	}
	return &siswa, nil
}

func (r *StudentRepository) FindByKodeRegistrasi(kode string) (*domain.Siswa, error) {
	var siswa domain.Siswa
	err := r.db.Preload("Kelas").
		Where("kode_registrasi = ? AND deleted_at IS NULL", kode).First(&siswa).Error
	if err != nil {
		return nil, err
	}
	return &siswa, nil
}

func (r *StudentRepository) List(search string, kelasID *uuid.UUID, page, limit int) ([]domain.Siswa, int64, error) {
	var siswa []domain.Siswa
	var total int64

	query := r.db.Model(&domain.Siswa{}).Where("siswa.deleted_at IS NULL")
	if search != "" {
		query = query.Where("nama ILIKE ?", "%"+search+"%")
	}
	if kelasID != nil {
		query = query.Where("kelas_id = ?", *kelasID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Kelas").Order("nama ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&siswa).Error
	return siswa, total, err
}

// ListAll returns every student (optionally one class), for exports.
func (r *StudentRepository) ListAll(kelasID *uuid.UUID) ([]domain.Siswa, error) {
	var siswa []domain.Siswa
	query := r.db.Preload("Kelas").Where("deleted_at IS NULL")
	if kelasID != nil {
		query = query.Where("kelas_id = ?", *kelasID)
	}
	err := query.Order("nama ASC").Find(&siswa).Error
	return siswa, err
}

func (r *StudentRepository) Update(siswa *domain.Siswa) error {
	return r.db.Save(siswa).Error
}

func (r *StudentRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.Siswa{}).Error
}

func (r *StudentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Siswa{}).Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

// TopByPoin returns the students with the highest accumulated penalty
// points. Prestasi records carry negative poin and pull the total down.
func (r *StudentRepository) TopByPoin(limit int) ([]domain.Siswa, error) {
	var siswa []domain.Siswa
	err := r.db.Preload("Kelas").Where("deleted_at IS NULL AND total_poin > 0").
		Order("total_poin DESC").Limit(limit).Find(&siswa).Error
	return siswa, err
}
