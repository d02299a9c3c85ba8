package handler

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
)

// ParentHandler serves the public page where parents check a student's
// record with the registration code + PIN from the school slip.
type ParentHandler struct {
	studentRepo *repository.StudentRepository
	recordRepo  *repository.RecordRepository
}

func NewParentHandler(studentRepo *repository.StudentRepository, recordRepo *repository.RecordRepository) *ParentHandler {
	return &ParentHandler{studentRepo: studentRepo, recordRepo: recordRepo}
}

func (h *ParentHandler) Check(c *fiber.Ctx) error {
	var req dto.ParentCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	kode := strings.ToUpper(strings.TrimSpace(req.KodeRegistrasi))
	pin := strings.TrimSpace(req.PIN)
	if kode == "" || pin == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Kode registrasi dan PIN wajib diisi"))
	}

	// Bad code and bad PIN are indistinguishable on purpose
	siswa, err := h.studentRepo.FindByKodeRegistrasi(kode)
	if err != nil || subtle.ConstantTimeCompare([]byte(siswa.PIN), []byte(pin)) != 1 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Data tidak ditemukan. Periksa kembali kode dan PIN Anda."))
	}

	catatan, err := h.recordRepo.ListBySiswa(siswa.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil riwayat"))
	}

	riwayat := make([]dto.CatatanDTO, 0, len(catatan))
	for i := range catatan {
		item := toCatatanDTO(&catatan[i])
		item.SiswaNama = siswa.Nama
		riwayat = append(riwayat, item)
	}

	resp := dto.ParentCheckResponse{
		Nama:      siswa.Nama,
		FotoURL:   siswa.FotoURL,
		TotalPoin: siswa.TotalPoin,
		Riwayat:   riwayat,
	}
	if siswa.Kelas != nil {
		resp.KelasNama = &siswa.Kelas.Nama
	}

	return c.JSON(dto.SuccessResponse(resp, ""))
}
