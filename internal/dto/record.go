package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCatatanRequest struct {
	SiswaID    uuid.UUID  `json:"siswa_id"`
	JenisID    uuid.UUID  `json:"jenis_id"`
	GuruID     uuid.UUID  `json:"guru_id"`
	Tanggal    *time.Time `json:"tanggal"`
	Keterangan *string    `json:"keterangan"`
}

type CatatanDTO struct {
	ID         uuid.UUID `json:"id"`
	SiswaID    uuid.UUID `json:"siswa_id"`
	SiswaNama  string    `json:"siswa_nama"`
	KelasNama  *string   `json:"kelas_nama,omitempty"`
	JenisNama  string    `json:"jenis_nama"`
	Kategori   string    `json:"kategori"`
	GuruNama   string    `json:"guru_nama"`
	Tanggal    time.Time `json:"tanggal"`
	Keterangan *string   `json:"keterangan,omitempty"`
	Poin       int       `json:"poin"`
	CreatedAt  time.Time `json:"created_at"`
}
