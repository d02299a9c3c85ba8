package dto

import "github.com/google/uuid"

// Tahun Ajaran
type TahunAjaranRequest struct {
	Nama     string `json:"nama"`
	IsActive *bool  `json:"is_active"`
}

// Kelas
type KelasRequest struct {
	TahunAjaranID uuid.UUID  `json:"tahun_ajaran_id"`
	Nama          string     `json:"nama"`
	Tingkat       int        `json:"tingkat"`
	WaliID        *uuid.UUID `json:"wali_id"`
}

type KelasDTO struct {
	ID           uuid.UUID  `json:"id"`
	Nama         string     `json:"nama"`
	Tingkat      int        `json:"tingkat"`
	TahunAjaran  string     `json:"tahun_ajaran,omitempty"`
	WaliID       *uuid.UUID `json:"wali_id,omitempty"`
	WaliNama     *string    `json:"wali_nama,omitempty"`
	StudentCount int64      `json:"student_count"`
}

// Guru
type GuruRequest struct {
	Nama    string  `json:"nama"`
	NIP     *string `json:"nip"`
	Telepon *string `json:"telepon"`
}

// Jenis Poin
type JenisPoinRequest struct {
	Nama     string `json:"nama"`
	Kategori string `json:"kategori"`
	Poin     int    `json:"poin"`
}
