package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/gorm"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Create stores the record and moves the student's running total in the
// same transaction.
func (r *RecordRepository) Create(catatan *domain.CatatanPoin) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(catatan).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Siswa{}).
			Where("id = ?", catatan.SiswaID).
			Update("total_poin", gorm.Expr("total_poin + ?", catatan.Poin)).Error
	})
}

func (r *RecordRepository) FindByID(id uuid.UUID) (*domain.CatatanPoin, error) {
	var catatan domain.CatatanPoin
	err := r.db.Preload("Siswa").Preload("Siswa.Kelas").Preload("Jenis").Preload("Guru").
		Where("id = ? AND deleted_at IS NULL", id).First(&catatan).Error
	if err != nil {
		return nil, err
	}
	return &catatan, nil
}

type RecordFilter struct {
	SiswaID  *uuid.UUID
	KelasID  *uuid.UUID
	GuruID   *uuid.UUID
	Kategori *domain.PoinKategori
	From     *time.Time
	To       *time.Time
}

func (r *RecordRepository) List(filter RecordFilter, page, limit int) ([]domain.CatatanPoin, int64, error) {
	var catatan []domain.CatatanPoin
	var total int64

	query := r.db.Model(&domain.CatatanPoin{}).Where("catatan_poin.deleted_at IS NULL")
	if filter.SiswaID != nil {
		query = query.Where("siswa_id = ?", *filter.SiswaID)
	}
	if filter.KelasID != nil {
		query = query.Joins("JOIN siswa ON siswa.id = catatan_poin.siswa_id").
			Where("siswa.kelas_id = ?", *filter.KelasID)
	}
	if filter.GuruID != nil {
		query = query.Where("guru_id = ?", *filter.GuruID)
	}
	if filter.Kategori != nil {
		query = query.Joins("JOIN jenis_poin ON jenis_poin.id = catatan_poin.jenis_id").
			Where("jenis_poin.kategori = ?", *filter.Kategori)
	}
	if filter.From != nil {
		query = query.Where("tanggal >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("tanggal <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Siswa").Preload("Siswa.Kelas").Preload("Jenis").Preload("Guru").
		Order("tanggal DESC, catatan_poin.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&catatan).Error
	return catatan, total, err
}

func (r *RecordRepository) ListBySiswa(siswaID uuid.UUID) ([]domain.CatatanPoin, error) {
	var catatan []domain.CatatanPoin
	err := r.db.Preload("Jenis").Preload("Guru").
		Where("siswa_id = ? AND deleted_at IS NULL", siswaID).
		Order("tanggal DESC, created_at DESC").
		Find(&catatan).Error
	return catatan, err
}

// Delete removes the record and gives the points back in one transaction.
func (r *RecordRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var catatan domain.CatatanPoin
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&catatan).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&domain.CatatanPoin{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Siswa{}).
			Where("id = ?", catatan.SiswaID).
			Update("total_poin", gorm.Expr("total_poin - ?", catatan.Poin)).Error
	})
}

func (r *RecordRepository) CountByKategoriSince(kategori domain.PoinKategori, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.CatatanPoin{}).
		Joins("JOIN jenis_poin ON jenis_poin.id = catatan_poin.jenis_id").
		Where("catatan_poin.deleted_at IS NULL AND jenis_poin.kategori = ? AND tanggal >= ?", kategori, since).
		Count(&count).Error
	return count, err
}

// ListSince returns bare records (with type) in a window, for the
// dashboard's daily bucketing.
func (r *RecordRepository) ListSince(since time.Time) ([]domain.CatatanPoin, error) {
	var catatan []domain.CatatanPoin
	err := r.db.Preload("Jenis").
		Where("deleted_at IS NULL AND tanggal >= ?", since).
		Order("tanggal ASC").
		Find(&catatan).Error
	return catatan, err
}
