package dto

type ParentCheckRequest struct {
	KodeRegistrasi string `json:"kode_registrasi"`
	PIN            string `json:"pin"`
}

type ParentCheckResponse struct {
	Nama      string       `json:"nama"`
	KelasNama *string      `json:"kelas_nama,omitempty"`
	FotoURL   *string      `json:"foto_url,omitempty"`
	TotalPoin int          `json:"total_poin"`
	Riwayat   []CatatanDTO `json:"riwayat"`
}
