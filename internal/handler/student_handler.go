package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/service"
)

type StudentHandler struct {
	studentRepo *repository.StudentRepository
	masterRepo  *repository.MasterRepository
}

func NewStudentHandler(studentRepo *repository.StudentRepository, masterRepo *repository.MasterRepository) *StudentHandler {
	return &StudentHandler{studentRepo: studentRepo, masterRepo: masterRepo}
}

func (h *StudentHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var kelasID *uuid.UUID
	if id := c.Query("kelas_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "kelas_id tidak valid"))
		}
		kelasID = &parsed
	}

	siswa, total, err := h.studentRepo.List(c.Query("search"), kelasID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data siswa"))
	}

	result := make([]dto.SiswaDTO, 0, len(siswa))
	for i := range siswa {
		result = append(result, toSiswaDTO(&siswa[i]))
	}

	return c.JSON(dto.SuccessWithMeta(result, dto.NewMeta(page, limit, total)))
}

func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	siswa, err := h.studentRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}
	return c.JSON(dto.SuccessResponse(toSiswaDTO(siswa), ""))
}

// Create registers one student by hand. The parent credential is
// generated here and returned exactly once.
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSiswaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	nama := service.SanitizeText(req.Nama)
	if nama == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Nama wajib diisi"))
	}

	if req.KelasID != nil {
		if _, err := h.masterRepo.FindKelasByID(*req.KelasID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Kelas tidak ditemukan"))
		}
	}

	siswa := &domain.Siswa{
		Nama:           nama,
		Gender:         service.ResolveGender(req.Gender),
		KelasID:        req.KelasID,
		KodeRegistrasi: service.NewKodeRegistrasi(),
		PIN:            service.NewPIN(),
		TotalPoin:      0,
	}
	if req.Telepon != nil {
		if telepon := service.NormalizePhone(*req.Telepon); telepon != "" {
			siswa.Telepon = &telepon
		}
	}

	if err := h.studentRepo.Create(siswa); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat siswa"))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(dto.CredentialDTO{
		SiswaID:        siswa.ID,
		Nama:           siswa.Nama,
		KodeRegistrasi: siswa.KodeRegistrasi,
		PIN:            siswa.PIN,
	}, "Siswa berhasil dibuat"))
}

func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	siswa, err := h.studentRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}

	var req dto.UpdateSiswaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if req.Nama != nil {
		if nama := service.SanitizeText(*req.Nama); nama != "" {
			siswa.Nama = nama
		}
	}
	if req.Gender != nil {
		siswa.Gender = service.ResolveGender(*req.Gender)
	}
	if req.Telepon != nil {
		if telepon := service.NormalizePhone(*req.Telepon); telepon != "" {
			siswa.Telepon = &telepon
		} else {
			siswa.Telepon = nil
		}
	}
	if req.KelasID != nil {
		if _, err := h.masterRepo.FindKelasByID(*req.KelasID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Kelas tidak ditemukan"))
		}
		siswa.KelasID = req.KelasID
	}
	if req.FotoURL != nil {
		siswa.FotoURL = req.FotoURL
	}

	if err := h.studentRepo.Update(siswa); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengupdate siswa"))
	}
	return c.JSON(dto.SuccessResponse(toSiswaDTO(siswa), "Siswa berhasil diupdate"))
}

func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	if err := h.studentRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus siswa"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Siswa berhasil dihapus"))
}

// ResetCredential issues a fresh registration code and PIN, e.g. when a
// parent lost the original slip.
func (h *StudentHandler) ResetCredential(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	siswa, err := h.studentRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}

	siswa.KodeRegistrasi = service.NewKodeRegistrasi()
	siswa.PIN = service.NewPIN()
	if err := h.studentRepo.Update(siswa); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mereset kredensial"))
	}

	return c.JSON(dto.SuccessResponse(dto.CredentialDTO{
		SiswaID:        siswa.ID,
		Nama:           siswa.Nama,
		KodeRegistrasi: siswa.KodeRegistrasi,
		PIN:            siswa.PIN,
	}, "Kredensial berhasil direset"))
}

func toSiswaDTO(siswa *domain.Siswa) dto.SiswaDTO {
	result := dto.SiswaDTO{
		ID:             siswa.ID,
		Nama:           siswa.Nama,
		Gender:         string(siswa.Gender),
		Telepon:        siswa.Telepon,
		KelasID:        siswa.KelasID,
		FotoURL:        siswa.FotoURL,
		KodeRegistrasi: siswa.KodeRegistrasi,
		TotalPoin:      siswa.TotalPoin,
		CreatedAt:      siswa.CreatedAt,
	}
	if siswa.Kelas != nil {
		result.KelasNama = &siswa.Kelas.Nama
	}
	return result
}
