package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/tatibku/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// BuildRosterXLSX renders the student roster to a spreadsheet.
func BuildRosterXLSX(siswa []domain.Siswa) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetName(sheet, "Siswa")
	sheet = "Siswa"

	header := []interface{}{"No", "Nama", "L/P", "Kelas", "No HP", "Kode Registrasi", "Total Poin"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, s := range siswa {
		kelas := ""
		if s.Kelas != nil {
			kelas = s.Kelas.Nama
		}
		telepon := ""
		if s.Telepon != nil {
			telepon = *s.Telepon
		}
		row := []interface{}{i + 1, s.Nama, string(s.Gender), kelas, telepon, s.KodeRegistrasi, s.TotalPoin}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "G1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "F", 22); err != nil {
		return nil, err
	}

	return f, nil
}

// BuildRecapPDF renders a per-class behavior recap: school header, one
// table line per record, point totals at the bottom.
func BuildRecapPDF(kelasNama string, records []domain.CatatanPoin, generatedAt time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Rekap Catatan "+kelasNama, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Rekap Catatan Tata Tertib", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Kelas %s - dicetak %s", kelasNama, generatedAt.Format("02-01-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{10, 25, 55, 70, 45, 55, 17}
	titles := []string{"No", "Tanggal", "Siswa", "Jenis", "Kategori", "Guru", "Poin"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range titles {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	total := 0
	for i, r := range records {
		siswa, jenis, kategori, guru := "", "", "", ""
		if r.Siswa != nil {
			siswa = r.Siswa.Nama
		}
		if r.Jenis != nil {
			jenis = r.Jenis.Nama
			kategori = string(r.Jenis.Kategori)
		}
		if r.Guru != nil {
			guru = r.Guru.Nama
		}
		total += r.Poin

		cells := []string{
			fmt.Sprintf("%d", i+1),
			r.Tanggal.Format("02-01-2006"),
			siswa,
			jenis,
			kategori,
			guru,
			fmt.Sprintf("%d", r.Poin),
		}
		for j, cell := range cells {
			align := "L"
			if j == 0 || j == 6 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4]+widths[5], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 7, fmt.Sprintf("%d", total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
