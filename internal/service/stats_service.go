package service

import (
	"time"

	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
)

// BuildDailyBuckets folds records into one bucket per calendar day over
// a trailing window ending at now, empty days included, oldest first.
// The dashboard chart renders these as-is.
func BuildDailyBuckets(records []domain.CatatanPoin, days int, now time.Time) []dto.DailyBucketDTO {
	if days <= 0 {
		return nil
	}

	start := now.AddDate(0, 0, -(days - 1))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())

	buckets := make([]dto.DailyBucketDTO, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = dto.DailyBucketDTO{Date: date}
		index[date] = i
	}

	for _, record := range records {
		i, ok := index[record.Tanggal.Format("2006-01-02")]
		if !ok {
			continue
		}
		if isPrestasi(record) {
			buckets[i].Prestasi++
		} else {
			buckets[i].Pelanggaran++
		}
	}

	return buckets
}

func isPrestasi(record domain.CatatanPoin) bool {
	if record.Jenis != nil {
		return record.Jenis.Kategori == domain.KategoriPrestasi
	}
	// Jenis not preloaded: fall back to the signed point snapshot.
	return record.Poin < 0
}
