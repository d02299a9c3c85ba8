package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatibku/backend/internal/domain"
)

func dayRecord(daysAgo int, now time.Time, kategori domain.PoinKategori) domain.CatatanPoin {
	return domain.CatatanPoin{
		Tanggal: now.AddDate(0, 0, -daysAgo),
		Jenis:   &domain.JenisPoin{Kategori: kategori},
	}
}

func TestBuildDailyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	records := []domain.CatatanPoin{
		dayRecord(0, now, domain.KategoriPelanggaran),
		dayRecord(0, now, domain.KategoriPelanggaran),
		dayRecord(0, now, domain.KategoriPrestasi),
		dayRecord(2, now, domain.KategoriPelanggaran),
		dayRecord(6, now, domain.KategoriPrestasi),
	}

	buckets := BuildDailyBuckets(records, 7, now)
	require.Len(t, buckets, 7)

	// Oldest first
	assert.Equal(t, "2026-03-04", buckets[0].Date)
	assert.Equal(t, "2026-03-10", buckets[6].Date)

	assert.Equal(t, 0, buckets[0].Pelanggaran)
	assert.Equal(t, 1, buckets[0].Prestasi)
	assert.Equal(t, 1, buckets[4].Pelanggaran)
	assert.Equal(t, 2, buckets[6].Pelanggaran)
	assert.Equal(t, 1, buckets[6].Prestasi)

	// Empty days are present, not skipped
	assert.Equal(t, 0, buckets[1].Pelanggaran)
	assert.Equal(t, 0, buckets[1].Prestasi)
}

func TestBuildDailyBuckets_OutOfWindowIgnored(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	records := []domain.CatatanPoin{
		dayRecord(10, now, domain.KategoriPelanggaran),
		dayRecord(0, now, domain.KategoriPelanggaran),
	}

	buckets := BuildDailyBuckets(records, 7, now)
	total := 0
	for _, b := range buckets {
		total += b.Pelanggaran + b.Prestasi
	}
	assert.Equal(t, 1, total)
}

func TestBuildDailyBuckets_ZeroDays(t *testing.T) {
	assert.Nil(t, BuildDailyBuckets(nil, 0, time.Now()))
	assert.Nil(t, BuildDailyBuckets(nil, -3, time.Now()))
}

// Without a preloaded Jenis the signed point snapshot decides the side.
func TestBuildDailyBuckets_FallbackOnSignedPoin(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	records := []domain.CatatanPoin{
		{Tanggal: now, Poin: 10},
		{Tanggal: now, Poin: -20},
	}

	buckets := BuildDailyBuckets(records, 1, now)
	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].Pelanggaran)
	assert.Equal(t, 1, buckets[0].Prestasi)
}
