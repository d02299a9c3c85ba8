package service

import (
	"github.com/xuri/excelize/v2"
)

// BuildImportTemplate produces the spreadsheet operators fill in before
// an import: the expected headers plus two example rows.
func BuildImportTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{"nama", "jenis_kelamin", "kelas", "no_hp"},
		{"Budi Santoso", "L", "X IPA 1", "081234567890"},
		{"Siti Aminah", "P", "X IPA 1", "+6281298765432"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
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
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "D", 20); err != nil {
		return nil, err
	}

	return f, nil
}
