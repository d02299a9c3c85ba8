package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyFile marks a file with no data rows under the header. The
// pipeline treats this as a hard stop before any preview is built.
var ErrEmptyFile = errors.New("file tidak memiliki data")

// ParseCSV reads a comma-separated roster file into raw rows keyed by
// the header row.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows

	var header []string
	var rows []RawRow

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gagal membaca file CSV: %w", err)
		}

		if header == nil {
			header = normalizeHeader(record)
			continue
		}
		rows = append(rows, recordToRawRow(header, record))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of a spreadsheet into raw rows keyed
// by the header row.
func ParseXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("gagal membaca file XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("gagal membaca sheet: %w", err)
	}

	var header []string
	var rows []RawRow
	for _, record := range records {
		if header == nil {
			header = normalizeHeader(record)
			continue
		}
		rows = append(rows, recordToRawRow(header, record))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func normalizeHeader(record []string) []string {
	header := make([]string, len(record))
	for i, h := range record {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return header
}

func recordToRawRow(header, record []string) RawRow {
	row := make(RawRow, len(header))
	for i, key := range header {
		if key == "" {
			continue
		}
		if i < len(record) {
			row[key] = record[i]
		} else {
			row[key] = ""
		}
	}
	return row
}
