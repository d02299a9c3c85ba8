package dto

import "github.com/google/uuid"

type PresignRequest struct {
	SiswaID     uuid.UUID `json:"siswa_id"`
	ContentType string    `json:"content_type"`
}

type PresignResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
	ExpiresIn int64  `json:"expires_in"`
}

type ConfirmUploadRequest struct {
	SiswaID   uuid.UUID `json:"siswa_id"`
	ObjectKey string    `json:"object_key"`
}
