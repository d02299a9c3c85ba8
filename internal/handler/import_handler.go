package handler

import (
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tatibku/backend/internal/dto"
	"github.com/tatibku/backend/internal/repository"
	"github.com/tatibku/backend/internal/service"
)

// ImportHandler drives the bulk roster import: upload, dry-run preview,
// commit, and the fill-in template.
type ImportHandler struct {
	studentRepo *repository.StudentRepository
	masterRepo  *repository.MasterRepository
}

func NewImportHandler(studentRepo *repository.StudentRepository, masterRepo *repository.MasterRepository) *ImportHandler {
	return &ImportHandler{
		studentRepo: studentRepo,
		masterRepo:  masterRepo,
	}
}

// ImportSiswa handles student import from CSV/XLSX. With dry_run=true it
// only builds the preview; otherwise it re-validates and commits.
func (h *ImportHandler) ImportSiswa(c *fiber.Ctx) error {
	dryRun := c.FormValue("dry_run") == "true"

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE", "File tidak ditemukan"))
	}

	// Max 5MB
	if file.Size > 5*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("FILE_TOO_LARGE", "Ukuran file maksimal 5MB"))
	}

	rawRows, err := parseRosterFile(file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("EMPTY_FILE", "File tidak memiliki data"))
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE", err.Error()))
	}

	// Classes are resolved against the active academic year only
	tahunAjaran, err := h.masterRepo.GetActiveTahunAjaran()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NO_ACTIVE_TAHUN_AJARAN", "Tidak ada tahun ajaran aktif"))
	}
	knownClasses, err := h.masterRepo.ListKelasForTahunAjaran(tahunAjaran.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal mengambil data kelas"))
	}

	preview := service.BuildPreview(rawRows, knownClasses)

	if dryRun {
		return c.JSON(dto.SuccessResponse(toPreviewResponse(preview), "Dry run selesai"))
	}

	committer := service.NewImportCommitter(h.studentRepo, func(done, total int) {
		log.Printf("import siswa: %d/%d tersimpan", done, total)
	})

	result, err := committer.Commit(preview)
	switch {
	case errors.Is(err, service.ErrNothingToImport):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("NOTHING_TO_IMPORT", err.Error()))
	case errors.Is(err, service.ErrPreviewHasErrors):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse("VALIDATION_PENDING", err.Error()))
	case err != nil:
		// Batches before the failure stay committed; tell the operator
		// how far it got.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse("IMPORT_ABORTED", err.Error()))
	}

	credentials := make([]dto.CredentialDTO, 0, len(result.Siswa))
	for _, s := range result.Siswa {
		credentials = append(credentials, dto.CredentialDTO{
			SiswaID:        s.ID,
			Nama:           s.Nama,
			KodeRegistrasi: s.KodeRegistrasi,
			PIN:            s.PIN,
		})
	}

	return c.JSON(dto.SuccessResponse(dto.ImportCommitResponse{
		TotalRows:       len(preview.Rows),
		CreatedStudents: result.Created,
		Batches:         result.Batches,
		Credentials:     credentials,
	}, "Import selesai"))
}

// DownloadTemplate returns the XLSX the operator fills in before import.
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	f, err := service.BuildImportTemplate()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat template"))
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Gagal membuat template"))
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename=template_import_siswa.xlsx")
	return c.Send(buf.Bytes())
}

func parseRosterFile(file *multipart.FileHeader) ([]service.RawRow, error) {
	filename := strings.ToLower(file.Filename)
	isCSV := strings.HasSuffix(filename, ".csv")
	isXLSX := strings.HasSuffix(filename, ".xlsx")
	if !isCSV && !isXLSX {
		return nil, errors.New("file harus berformat CSV atau XLSX")
	}

	f, err := file.Open()
	if err != nil {
		return nil, errors.New("gagal membuka file")
	}
	defer f.Close()

	if isCSV {
		return service.ParseCSV(f)
	}
	return service.ParseXLSX(f)
}

func toPreviewResponse(preview service.ImportPreview) dto.ImportPreviewResponse {
	rows := make([]dto.ImportRowDTO, 0, len(preview.Rows))
	for _, r := range preview.Rows {
		rows = append(rows, dto.ImportRowDTO{
			Nama:      r.Nama,
			Gender:    string(r.Gender),
			Telepon:   r.Telepon,
			KelasNama: r.KelasNama,
			Resolved:  r.KelasID != nil,
		})
	}

	issues := make([]dto.ImportIssueDTO, 0, len(preview.Issues))
	for _, issue := range preview.Issues {
		issues = append(issues, dto.ImportIssueDTO{
			RowNumber: issue.RowNumber,
			Severity:  string(issue.Severity),
			Messages:  issue.Messages,
		})
	}

	return dto.ImportPreviewResponse{
		TotalRows:   len(preview.Rows),
		Committable: len(service.CommittableRows(preview)),
		Rows:        rows,
		Issues:      issues,
	}
}
