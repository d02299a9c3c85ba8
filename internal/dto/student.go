package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSiswaRequest struct {
	Nama    string     `json:"nama"`
	Gender  string     `json:"gender"`
	Telepon *string    `json:"telepon"`
	KelasID *uuid.UUID `json:"kelas_id"`
}

type UpdateSiswaRequest struct {
	Nama    *string    `json:"nama"`
	Gender  *string    `json:"gender"`
	Telepon *string    `json:"telepon"`
	KelasID *uuid.UUID `json:"kelas_id"`
	FotoURL *string    `json:"foto_url"`
}

type SiswaDTO struct {
	ID             uuid.UUID  `json:"id"`
	Nama           string     `json:"nama"`
	Gender         string     `json:"gender"`
	Telepon        *string    `json:"telepon,omitempty"`
	KelasID        *uuid.UUID `json:"kelas_id,omitempty"`
	KelasNama      *string    `json:"kelas_nama,omitempty"`
	FotoURL        *string    `json:"foto_url,omitempty"`
	KodeRegistrasi string     `json:"kode_registrasi"`
	TotalPoin      int        `json:"total_poin"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CredentialDTO is returned once after create/import so the school can
// hand the access code to the parent. The PIN is never listed afterwards.
type CredentialDTO struct {
	SiswaID        uuid.UUID `json:"siswa_id"`
	Nama           string    `json:"nama"`
	KodeRegistrasi string    `json:"kode_registrasi"`
	PIN            string    `json:"pin"`
}
