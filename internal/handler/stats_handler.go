package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/service"
)

type StatsHandler struct {
	studentRepo *repository.StudentRepository
	masterRepo  *repository.MasterRepository
	recordRepo  *repository.RecordRepository
}

func NewStatsHandler(studentRepo *repository.StudentRepository, masterRepo *repository.MasterRepository, recordRepo *repository.RecordRepository) *StatsHandler {
	return &StatsHandler{
		studentRepo: studentRepo,
		masterRepo:  masterRepo,
		recordRepo:  recordRepo,
	}
}

// GetDashboardStats assembles the landing-page numbers and the per-day
// chart buckets.
func (h *StatsHandler) GetDashboardStats(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "14"))
	if days < 1 || days > 90 {
		days = 14
	}

	siswaCount, _ := h.studentRepo.Count()
	guruCount, _ := h.masterRepo.CountGuru()

	var kelasCount int64
	if ta, err := h.masterRepo.GetActiveTahunAjaran(); err == nil {
		kelasCount, _ = h.masterRepo.CountKelas(ta.ID)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	pelanggaranBulan, _ := h.recordRepo.CountByKategoriSince(domain.KategoriPelanggaran, monthStart)
	prestasiBulan, _ := h.recordRepo.CountByKategoriSince(domain.KategoriPrestasi, monthStart)

	top, _ := h.studentRepo.TopByPoin(5)
	topDTO := make([]dto.TopSiswaDTO, 0, len(top))
	for _, s := range top {
		item := dto.TopSiswaDTO{SiswaID: s.ID, Nama: s.Nama, TotalPoin: s.TotalPoin}
		if s.Kelas != nil {
			item.KelasNama = &s.Kelas.Nama
		}
		topDTO = append(topDTO, item)
	}

	since := now.AddDate(0, 0, -(days - 1))
	records, err := h.recordRepo.ListSince(time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, now.Location()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data catatan"))
	}

	return c.JSON(dto.SuccessResponse(dto.DashboardStatsDTO{
		Siswa:            dto.CountDTO{Total: siswaCount},
		Guru:             dto.CountDTO{Total: guruCount},
		Kelas:            dto.CountDTO{Total: kelasCount},
		PelanggaranBulan: pelanggaranBulan,
		PrestasiBulan:    prestasiBulan,
		TopPelanggar:     topDTO,
		Harian:           service.BuildDailyBuckets(records, days, now),
	}, ""))
}
