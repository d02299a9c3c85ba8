package dto

import "github.com/google/uuid"

type DashboardStatsDTO struct {
	Siswa            CountDTO         `json:"siswa"`
	Guru             CountDTO         `json:"guru"`
	Kelas            CountDTO         `json:"kelas"`
	PelanggaranBulan int64            `json:"pelanggaran_bulan_ini"`
	PrestasiBulan    int64            `json:"prestasi_bulan_ini"`
	TopPelanggar     []TopSiswaDTO    `json:"top_pelanggar"`
	Harian           []DailyBucketDTO `json:"harian"`
}

type CountDTO struct {
	Total int64 `json:"total"`
}

type TopSiswaDTO struct {
	SiswaID   uuid.UUID `json:"siswa_id"`
	Nama      string    `json:"nama"`
	KelasNama *string   `json:"kelas_nama,omitempty"`
	TotalPoin int       `json:"total_poin"`
}

// DailyBucketDTO is one day of the dashboard chart.
type DailyBucketDTO struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Pelanggaran int    `json:"pelanggaran"`
	Prestasi    int    `json:"prestasi"`
}
