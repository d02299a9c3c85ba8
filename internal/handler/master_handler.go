package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
)

// MasterHandler covers the master-data screens: tahun ajaran, guru,
// kelas, and jenis poin.
type MasterHandler struct {
	masterRepo *repository.MasterRepository
}

func NewMasterHandler(masterRepo *repository.MasterRepository) *MasterHandler {
	return &MasterHandler{masterRepo: masterRepo}
}

// ============================================================================
// TAHUN AJARAN
// ============================================================================

func (h *MasterHandler) ListTahunAjaran(c *fiber.Ctx) error {
	ta, err := h.masterRepo.ListTahunAjaran()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data tahun ajaran"))
	}
	return c.JSON(dto.SuccessResponse(ta, ""))
}

func (h *MasterHandler) CreateTahunAjaran(c *fiber.Ctx) error {
	var req dto.TahunAjaranRequest
	if err := c.BodyParser(&req); err != nil || req.Nama == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Nama tahun ajaran wajib diisi"))
	}

	ta := &domain.TahunAjaran{Nama: req.Nama}
	if req.IsActive != nil && *req.IsActive {
		// Only one year can be active at a time
		if err := h.masterRepo.DeactivateAllTahunAjaran(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menonaktifkan tahun ajaran lama"))
		}
		ta.IsActive = true
	}

	if err := h.masterRepo.CreateTahunAjaran(ta); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat tahun ajaran"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(ta, "Tahun ajaran berhasil dibuat"))
}

func (h *MasterHandler) UpdateTahunAjaran(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	ta, err := h.masterRepo.FindTahunAjaranByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Tahun ajaran tidak ditemukan"))
	}

	var req dto.TahunAjaranRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if req.Nama != "" {
		ta.Nama = req.Nama
	}
	if req.IsActive != nil {
		if *req.IsActive && !ta.IsActive {
			if err := h.masterRepo.DeactivateAllTahunAjaran(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menonaktifkan tahun ajaran lama"))
			}
		}
		ta.IsActive = *req.IsActive
	}

	if err := h.masterRepo.UpdateTahunAjaran(ta); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengupdate tahun ajaran"))
	}
	return c.JSON(dto.SuccessResponse(ta, "Tahun ajaran berhasil diupdate"))
}

func (h *MasterHandler) DeleteTahunAjaran(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	hasKelas, err := h.masterRepo.TahunAjaranHasKelas(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa relasi"))
	}
	if hasKelas {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("IN_USE", "Tahun ajaran masih memiliki kelas"))
	}

	if err := h.masterRepo.DeleteTahunAjaran(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus tahun ajaran"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Tahun ajaran berhasil dihapus"))
}

// ============================================================================
// GURU
// ============================================================================

func (h *MasterHandler) ListGuru(c *fiber.Ctx) error {
	guru, err := h.masterRepo.ListGuru(c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data guru"))
	}
	return c.JSON(dto.SuccessResponse(guru, ""))
}

func (h *MasterHandler) CreateGuru(c *fiber.Ctx) error {
	var req dto.GuruRequest
	if err := c.BodyParser(&req); err != nil || req.Nama == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Nama guru wajib diisi"))
	}

	guru := &domain.Guru{Nama: req.Nama, NIP: req.NIP, Telepon: req.Telepon}
	if err := h.masterRepo.CreateGuru(guru); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat guru"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(guru, "Guru berhasil dibuat"))
}

func (h *MasterHandler) UpdateGuru(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	guru, err := h.masterRepo.FindGuruByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Guru tidak ditemukan"))
	}

	var req dto.GuruRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if req.Nama != "" {
		guru.Nama = req.Nama
	}
	if req.NIP != nil {
		guru.NIP = req.NIP
	}
	if req.Telepon != nil {
		guru.Telepon = req.Telepon
	}

	if err := h.masterRepo.UpdateGuru(guru); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengupdate guru"))
	}
	return c.JSON(dto.SuccessResponse(guru, "Guru berhasil diupdate"))
}

func (h *MasterHandler) DeleteGuru(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	hasCatatan, err := h.masterRepo.GuruHasCatatan(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa relasi"))
	}
	if hasCatatan {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("IN_USE", "Guru masih memiliki catatan"))
	}

	if err := h.masterRepo.DeleteGuru(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus guru"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Guru berhasil dihapus"))
}

// ============================================================================
// KELAS
// ============================================================================

func (h *MasterHandler) ListKelas(c *fiber.Ctx) error {
	var tahunAjaranID *uuid.UUID
	var tingkat *int

	if id := c.Query("tahun_ajaran_id"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "tahun_ajaran_id tidak valid"))
		}
		tahunAjaranID = &parsed
	}
	if t := c.Query("tingkat"); t != "" {
		parsed, _ := strconv.Atoi(t)
		tingkat = &parsed
	}

	kelas, err := h.masterRepo.ListKelas(tahunAjaranID, tingkat)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data kelas"))
	}

	result := make([]dto.KelasDTO, 0, len(kelas))
	for _, k := range kelas {
		item := dto.KelasDTO{ID: k.ID, Nama: k.Nama, Tingkat: k.Tingkat, WaliID: k.WaliID}
		if k.TahunAjaran != nil {
			item.TahunAjaran = k.TahunAjaran.Nama
		}
		if k.Wali != nil {
			item.WaliNama = &k.Wali.Nama
		}
		result = append(result, item)
	}
	return c.JSON(dto.SuccessResponse(result, ""))
}

func (h *MasterHandler) CreateKelas(c *fiber.Ctx) error {
	var req dto.KelasRequest
	if err := c.BodyParser(&req); err != nil || req.Nama == "" || req.TahunAjaranID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Nama dan tahun ajaran wajib diisi"))
	}

	if _, err := h.masterRepo.FindTahunAjaranByID(req.TahunAjaranID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOT_FOUND", "Tahun ajaran tidak ditemukan"))
	}

	exists, err := h.masterRepo.KelasNamaExists(req.TahunAjaranID, req.Nama, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa nama kelas"))
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("DUPLICATE", "Nama kelas sudah dipakai di tahun ajaran ini"))
	}

	kelas := &domain.Kelas{
		TahunAjaranID: req.TahunAjaranID,
		Nama:          req.Nama,
		Tingkat:       req.Tingkat,
		WaliID:        req.WaliID,
	}
	if err := h.masterRepo.CreateKelas(kelas); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat kelas"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(kelas, "Kelas berhasil dibuat"))
}

func (h *MasterHandler) UpdateKelas(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	kelas, err := h.masterRepo.FindKelasByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Kelas tidak ditemukan"))
	}

	var req dto.KelasRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if req.Nama != "" && req.Nama != kelas.Nama {
		exists, err := h.masterRepo.KelasNamaExists(kelas.TahunAjaranID, req.Nama, &kelas.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa nama kelas"))
		}
		if exists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("DUPLICATE", "Nama kelas sudah dipakai di tahun ajaran ini"))
		}
		kelas.Nama = req.Nama
	}
	if req.Tingkat != 0 {
		kelas.Tingkat = req.Tingkat
	}
	if req.WaliID != nil {
		kelas.WaliID = req.WaliID
	}

	if err := h.masterRepo.UpdateKelas(kelas); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengupdate kelas"))
	}
	return c.JSON(dto.SuccessResponse(kelas, "Kelas berhasil diupdate"))
}

func (h *MasterHandler) DeleteKelas(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	hasSiswa, err := h.masterRepo.KelasHasSiswa(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa relasi"))
	}
	if hasSiswa {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("IN_USE", "Kelas masih memiliki siswa"))
	}

	if err := h.masterRepo.DeleteKelas(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus kelas"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Kelas berhasil dihapus"))
}

// ============================================================================
// JENIS POIN
// ============================================================================

func (h *MasterHandler) ListJenisPoin(c *fiber.Ctx) error {
	var kategori *domain.PoinKategori
	if k := c.Query("kategori"); k != "" {
		parsed := domain.PoinKategori(k)
		if parsed != domain.KategoriPelanggaran && parsed != domain.KategoriPrestasi {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Kategori harus pelanggaran atau prestasi"))
		}
		kategori = &parsed
	}

	jenis, err := h.masterRepo.ListJenisPoin(kategori)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data jenis poin"))
	}
	return c.JSON(dto.SuccessResponse(jenis, ""))
}

func (h *MasterHandler) CreateJenisPoin(c *fiber.Ctx) error {
	var req dto.JenisPoinRequest
	if err := c.BodyParser(&req); err != nil || req.Nama == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Nama jenis poin wajib diisi"))
	}

	kategori := domain.PoinKategori(req.Kategori)
	if kategori != domain.KategoriPelanggaran && kategori != domain.KategoriPrestasi {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Kategori harus pelanggaran atau prestasi"))
	}
	if req.Poin <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Poin harus lebih dari 0"))
	}

	jenis := &domain.JenisPoin{Nama: req.Nama, Kategori: kategori, Poin: req.Poin}
	if err := h.masterRepo.CreateJenisPoin(jenis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat jenis poin"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(jenis, "Jenis poin berhasil dibuat"))
}

func (h *MasterHandler) UpdateJenisPoin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	jenis, err := h.masterRepo.FindJenisPoinByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Jenis poin tidak ditemukan"))
	}

	var req dto.JenisPoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if req.Nama != "" {
		jenis.Nama = req.Nama
	}
	if req.Kategori != "" {
		kategori := domain.PoinKategori(req.Kategori)
		if kategori != domain.KategoriPelanggaran && kategori != domain.KategoriPrestasi {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Kategori harus pelanggaran atau prestasi"))
		}
		jenis.Kategori = kategori
	}
	if req.Poin > 0 {
		jenis.Poin = req.Poin
	}

	if err := h.masterRepo.UpdateJenisPoin(jenis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengupdate jenis poin"))
	}
	return c.JSON(dto.SuccessResponse(jenis, "Jenis poin berhasil diupdate"))
}

func (h *MasterHandler) DeleteJenisPoin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	hasCatatan, err := h.masterRepo.JenisPoinHasCatatan(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal memeriksa relasi"))
	}
	if hasCatatan {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse("IN_USE", "Jenis poin masih dipakai catatan"))
	}

	if err := h.masterRepo.DeleteJenisPoin(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus jenis poin"))
	}
	return c.JSON(dto.SuccessResponse(nil, "Jenis poin berhasil dihapus"))
}
