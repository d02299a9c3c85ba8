package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/service"
)

type ExportHandler struct {
	studentRepo *repository.StudentRepository
	masterRepo  *repository.MasterRepository
	recordRepo  *repository.RecordRepository
}

func NewExportHandler(studentRepo *repository.StudentRepository, masterRepo *repository.MasterRepository, recordRepo *repository.RecordRepository) *ExportHandler {
	return &ExportHandler{
		studentRepo: studentRepo,
		masterRepo:  masterRepo,
		recordRepo:  recordRepo,
	}
}

// ExportRoster streams the student roster as XLSX, optionally filtered
// to one class.
func (h *ExportHandler) ExportRoster(c *fiber.Ctx) error {
	var kelasID *uuid.UUID
	if id := c.Query("kelas_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "kelas_id tidak valid"))
		}
		kelasID = &parsed
	}

	siswa, err := h.studentRepo.ListAll(kelasID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data siswa"))
	}

	f, err := service.BuildRosterXLSX(siswa)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat file XLSX"))
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat file XLSX"))
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename=daftar_siswa.xlsx")
	return c.Send(buf.Bytes())
}

// ExportRecapPDF streams a per-class behavior recap as PDF.
func (h *ExportHandler) ExportRecapPDF(c *fiber.Ctx) error {
	kelasID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	kelas, err := h.masterRepo.FindKelasByID(kelasID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Kelas tidak ditemukan"))
	}

	records, _, err := h.recordRepo.List(repository.RecordFilter{KelasID: &kelasID}, 1, 10000)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil catatan"))
	}

	buf, err := service.BuildRecapPDF(kelas.Nama, records, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat file PDF"))
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=rekap_%s.pdf", kelas.Nama))
	return c.Send(buf.Bytes())
}
