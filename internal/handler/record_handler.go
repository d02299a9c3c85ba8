package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
)

type RecordHandler struct {
	recordRepo  *repository.RecordRepository
	studentRepo *repository.StudentRepository
	masterRepo  *repository.MasterRepository
}

func NewRecordHandler(recordRepo *repository.RecordRepository, studentRepo *repository.StudentRepository, masterRepo *repository.MasterRepository) *RecordHandler {
	return &RecordHandler{
		recordRepo:  recordRepo,
		studentRepo: studentRepo,
		masterRepo:  masterRepo,
	}
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCatatanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if _, err := h.studentRepo.FindByID(req.SiswaID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}
	jenis, err := h.masterRepo.FindJenisPoinByID(req.JenisID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Jenis poin tidak ditemukan"))
	}
	if _, err := h.masterRepo.FindGuruByID(req.GuruID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Guru tidak ditemukan"))
	}

	tanggal := time.Now()
	if req.Tanggal != nil {
		tanggal = *req.Tanggal
	}

	// Pelanggaran adds penalty points, prestasi takes them away.
	poin := jenis.Poin
	if jenis.Kategori == domain.KategoriPrestasi {
		poin = -poin
	}

	catatan := &domain.CatatanPoin{
		SiswaID:    req.SiswaID,
		JenisID:    req.JenisID,
		GuruID:     req.GuruID,
		Tanggal:    tanggal,
		Keterangan: req.Keterangan,
		Poin:       poin,
	}
	if err := h.recordRepo.Create(catatan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menyimpan catatan"))
	}

	created, err := h.recordRepo.FindByID(catatan.ID)
	if err != nil {
		return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(nil, "Catatan berhasil disimpan"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(toCatatanDTO(created), "Catatan berhasil disimpan"))
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var filter repository.RecordFilter
	if id := c.Query("siswa_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "siswa_id tidak valid"))
		}
		filter.SiswaID = &parsed
	}
	if id := c.Query("kelas_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "kelas_id tidak valid"))
		}
		filter.KelasID = &parsed
	}
	if id := c.Query("guru_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "guru_id tidak valid"))
		}
		filter.GuruID = &parsed
	}
	if k := c.Query("kategori"); k != "" {
		kategori := domain.PoinKategori(k)
		if kategori != domain.KategoriPelanggaran && kategori != domain.KategoriPrestasi {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Kategori harus pelanggaran atau prestasi"))
		}
		filter.Kategori = &kategori
	}
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "from harus berformat YYYY-MM-DD"))
		}
		filter.From = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "to harus berformat YYYY-MM-DD"))
		}
		filter.To = &parsed
	}

	catatan, total, err := h.recordRepo.List(filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil catatan"))
	}

	result := make([]dto.CatatanDTO, 0, len(catatan))
	for i := range catatan {
		result = append(result, toCatatanDTO(&catatan[i]))
	}

	return c.JSON(dto.SuccessWithMeta(result, dto.NewMeta(page, limit, total)))
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	if err := h.recordRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Catatan tidak ditemukan"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Catatan berhasil dihapus"))
}

func toCatatanDTO(catatan *domain.CatatanPoin) dto.CatatanDTO {
	result := dto.CatatanDTO{
		ID:         catatan.ID,
		SiswaID:    catatan.SiswaID,
		Tanggal:    catatan.Tanggal,
		Keterangan: catatan.Keterangan,
		Poin:       catatan.Poin,
		CreatedAt:  catatan.CreatedAt,
	}
	if catatan.Siswa != nil {
		result.SiswaNama = catatan.Siswa.Nama
		if catatan.Siswa.Kelas != nil {
			result.KelasNama = &catatan.Siswa.Kelas.Nama
		}
	}
	if catatan.Jenis != nil {
		result.JenisNama = catatan.Jenis.Nama
		result.Kategori = string(catatan.Jenis.Kategori)
	}
	if catatan.Guru != nil {
		result.GuruNama = catatan.Guru.Nama
	}
	return result
}
