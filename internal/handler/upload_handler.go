package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/storage"
)

// UploadHandler manages student photos. The browser uploads straight to
// MinIO with a presigned URL, then confirms so the student record points
// at the stored object.
type UploadHandler struct {
	photos      *storage.PhotoStore
	studentRepo *repository.StudentRepository
}

func NewUploadHandler(photos *storage.PhotoStore, studentRepo *repository.StudentRepository) *UploadHandler {
	return &UploadHandler{photos: photos, studentRepo: studentRepo}
}

func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	var req dto.PresignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	if _, err := h.studentRepo.FindByID(req.SiswaID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}

	uploadURL, objectKey, expiresIn, err := h.photos.PresignUpload(req.SiswaID, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedPhotoType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE_TYPE", "Foto harus JPEG, PNG, atau WebP"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat URL upload"))
	}

	return c.JSON(dto.SuccessResponse(dto.PresignResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ExpiresIn: expiresIn,
	}, ""))
}

func (h *UploadHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "Request body tidak valid"))
	}

	siswa, err := h.studentRepo.FindByID(req.SiswaID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}

	exists, err := h.photos.Exists(req.ObjectKey)
	if err != nil || !exists {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("OBJECT_NOT_FOUND", "File belum terupload"))
	}

	// Drop the old photo only after the new one is confirmed
	oldURL := siswa.FotoURL

	fotoURL := h.photos.PublicURL(req.ObjectKey)
	siswa.FotoURL = &fotoURL
	if err := h.studentRepo.Update(siswa); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menyimpan foto"))
	}

	if oldURL != nil {
		if key, ok := h.photos.KeyFromURL(*oldURL); ok {
			_ = h.photos.Remove(key)
		}
	}

	return c.JSON(dto.SuccessResponse(toSiswaDTO(siswa), "Foto berhasil disimpan"))
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID tidak valid"))
	}

	siswa, err := h.studentRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Siswa tidak ditemukan"))
	}

	if siswa.FotoURL != nil {
		if key, ok := h.photos.KeyFromURL(*siswa.FotoURL); ok {
			_ = h.photos.Remove(key)
		}
		siswa.FotoURL = nil
		if err := h.studentRepo.Update(siswa); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal menghapus foto"))
		}
	}

	return c.JSON(dto.SuccessResponse(nil, "Foto berhasil dihapus"))
}
