package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tatibku/backend/internal/config"
	"github.com/tatibku/backend/internal/database"
	"github.com/tatibku/backend/internal/domain"
	"github.com/tatibku/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		printMenu()
		fmt.Print("Pilih menu: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			createDatabase(cfg)
		case "2":
			migrateSchema(cfg)
		case "3":
			migrateFresh(cfg)
		case "4":
			truncateTables(cfg)
		case "5":
			seedData(cfg)
		case "6":
			deleteDatabase(cfg)
		case "0":
			fmt.Println("Keluar...")
			os.Exit(0)
		default:
			fmt.Println("Pilihan tidak valid")
		}

		fmt.Println()
		fmt.Print("Tekan Enter untuk melanjutkan...")
		reader.ReadString('\n')
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("      TATIBKU DATABASE CLI MANAGER")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("1. Buat Database (jika belum ada) + Migrasi Schema")
	fmt.Println("2. Migrasi Schema (tanpa buat database)")
	fmt.Println("3. Migrate Fresh (drop semua + migrasi ulang)")
	fmt.Println("4. Truncate Tables (kecuali reference data)")
	fmt.Println("5. Seed Data (generate dummy data)")
	fmt.Println("6. Hapus Database")
	fmt.Println("0. Keluar")
	fmt.Println()
	fmt.Println("----------------------------------------")
}

func getPostgresConn(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode,
	)
	return sql.Open("postgres", connStr)
}

func databaseExists(cfg *config.Config) (bool, error) {
	db, err := getPostgresConn(cfg)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.Name).Scan(&exists)
	return exists, err
}

func createDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Buat Database + Migrasi Schema ---")

	exists, err := databaseExists(cfg)
	if err != nil {
		fmt.Printf("Error cek database: %v\n", err)
		return
	}

	if exists {
		fmt.Printf("Database '%s' sudah ada.\n", cfg.Database.Name)
		fmt.Print("Lanjutkan migrasi schema? (y/n): ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			fmt.Println("Dibatalkan.")
			return
		}
	} else {
		db, err := getPostgresConn(cfg)
		if err != nil {
			fmt.Printf("Error koneksi: %v\n", err)
			return
		}
		defer db.Close()

		_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name))
		if err != nil {
			fmt.Printf("Error buat database: %v\n", err)
			return
		}
		fmt.Printf("Database '%s' berhasil dibuat.\n", cfg.Database.Name)
	}

	migrateSchema(cfg)
}

func migrateSchema(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrasi Schema ---")

	db, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Error koneksi: %v\n", err)
		return
	}

	fmt.Println("Menjalankan migrasi...")
	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrasi: %v\n", err)
		return
	}

	fmt.Println("Memasukkan reference data...")
	if err := seedReferenceData(db); err != nil {
		fmt.Printf("Error seed reference data: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Migrasi schema selesai!")
}

func migrateFresh(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrate Fresh ---")
	fmt.Println("PERINGATAN: Semua data akan dihapus!")
	fmt.Print("Ketik 'FRESH' untuk konfirmasi: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "FRESH" {
		fmt.Println("Dibatalkan.")
		return
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Error koneksi: %v\n", err)
		return
	}

	fmt.Println("Menghapus semua tables...")
	tables := []string{
		"token_blacklist",
		"refresh_tokens",
		"catatan_poin",
		"siswa",
		"jenis_poin",
		"kelas",
		"guru",
		"tahun_ajaran",
		"users",
	}
	for _, table := range tables {
		db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table))
	}

	fmt.Println("Memulai migrasi ulang...")
	migrateSchema(cfg)
}

func truncateTables(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Truncate Tables ---")
	fmt.Println("Data berikut akan DIHAPUS:")
	fmt.Println("- siswa, catatan_poin")
	fmt.Println("- refresh_tokens, token_blacklist")
	fmt.Println()
	fmt.Println("Data berikut akan DIPERTAHANKAN:")
	fmt.Println("- users, tahun_ajaran, guru, kelas, jenis_poin")
	fmt.Println()
	fmt.Print("Ketik 'TRUNCATE' untuk konfirmasi: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "TRUNCATE" {
		fmt.Println("Dibatalkan.")
		return
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Error koneksi: %v\n", err)
		return
	}

	tablesToTruncate := []string{
		"token_blacklist",
		"refresh_tokens",
		"catatan_poin",
		"siswa",
	}

	for _, table := range tablesToTruncate {
		fmt.Printf("Truncating %s...\n", table)
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			fmt.Printf("Error truncate %s: %v\n", table, err)
		}
	}

	fmt.Println()
	fmt.Println("Truncate selesai!")
}

func deleteDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Hapus Database ---")
	fmt.Printf("PERINGATAN: Database '%s' akan dihapus permanen!\n", cfg.Database.Name)
	fmt.Print("Ketik nama database untuk konfirmasi: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != cfg.Database.Name {
		fmt.Println("Nama database tidak cocok. Dibatalkan.")
		return
	}

	db, err := getPostgresConn(cfg)
	if err != nil {
		fmt.Printf("Error koneksi: %v\n", err)
		return
	}
	defer db.Close()

	// Terminate existing connections
	_, _ = db.Exec(fmt.Sprintf(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = '%s'
		AND pid <> pg_backend_pid()
	`, cfg.Database.Name))

	_, err = db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", cfg.Database.Name))
	if err != nil {
		fmt.Printf("Error hapus database: %v\n", err)
		return
	}

	fmt.Printf("Database '%s' berhasil dihapus.\n", cfg.Database.Name)
}

func seedReferenceData(db *gorm.DB) error {
	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count > 0 {
		fmt.Println("  Reference data sudah ada, skip seeding.")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
		Nama:         "Administrator",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin error: %v", err)
	}

	tahunAjaran := domain.TahunAjaran{Nama: "2026/2027", IsActive: true}
	if err := db.Create(&tahunAjaran).Error; err != nil {
		return fmt.Errorf("seed tahun ajaran error: %v", err)
	}

	jenisPoin := []domain.JenisPoin{
		{Nama: "Terlambat masuk sekolah", Kategori: domain.KategoriPelanggaran, Poin: 5},
		{Nama: "Tidak memakai atribut lengkap", Kategori: domain.KategoriPelanggaran, Poin: 5},
		{Nama: "Membolos tanpa keterangan", Kategori: domain.KategoriPelanggaran, Poin: 15},
		{Nama: "Merokok di lingkungan sekolah", Kategori: domain.KategoriPelanggaran, Poin: 50},
		{Nama: "Berkelahi", Kategori: domain.KategoriPelanggaran, Poin: 75},
		{Nama: "Petugas upacara", Kategori: domain.KategoriPrestasi, Poin: 10},
		{Nama: "Juara lomba tingkat sekolah", Kategori: domain.KategoriPrestasi, Poin: 20},
		{Nama: "Juara lomba tingkat kota/kabupaten", Kategori: domain.KategoriPrestasi, Poin: 50},
	}
	for i := range jenisPoin {
		if err := db.Create(&jenisPoin[i]).Error; err != nil {
			return fmt.Errorf("seed jenis poin error: %v", err)
		}
	}

	fmt.Println("  Reference data berhasil di-seed.")
	return nil
}

// Seeder configuration
type SeederConfig struct {
	Guru    int
	Kelas   int
	Siswa   int
	Catatan int
}

var seederPresets = map[string]SeederConfig{
	"1": {Guru: 5, Kelas: 3, Siswa: 30, Catatan: 50},
	"2": {Guru: 15, Kelas: 9, Siswa: 200, Catatan: 500},
	"3": {Guru: 40, Kelas: 24, Siswa: 800, Catatan: 3000},
}

var firstNames = []string{
	"Ahmad", "Budi", "Citra", "Dewi", "Eka", "Fajar", "Gita", "Hadi", "Indah", "Joko",
	"Kartika", "Lina", "Maya", "Nadia", "Omar", "Putri", "Qori", "Rina", "Sari", "Tono",
	"Umar", "Vina", "Wati", "Yudi", "Zahra", "Andi", "Bella", "Cahya", "Dian", "Eko",
}

var lastNames = []string{
	"Pratama", "Wijaya", "Kusuma", "Santoso", "Hidayat", "Putra", "Sari", "Wibowo", "Nugroho", "Setiawan",
	"Rahayu", "Permana", "Saputra", "Lestari", "Kurniawan", "Utami", "Firmansyah", "Anggraini", "Ramadhan", "Puspita",
}

var keteranganTemplates = []string{
	"Dicatat oleh guru piket pagi.",
	"Laporan dari wali kelas.",
	"Kejadian saat jam istirahat.",
	"Hasil razia ketertiban.",
	"Dilaporkan oleh guru mata pelajaran.",
}

func seedData(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Seed Data ---")
	fmt.Println()
	fmt.Println("Pilih jumlah data:")
	fmt.Println("1. Sedikit - 5 guru, 3 kelas, 30 siswa, 50 catatan")
	fmt.Println("2. Sedang  - 15 guru, 9 kelas, 200 siswa, 500 catatan")
	fmt.Println("3. Banyak  - 40 guru, 24 kelas, 800 siswa, 3000 catatan")
	fmt.Println("0. Batal")
	fmt.Println()
	fmt.Print("Pilih (1-3): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "0" {
		fmt.Println("Dibatalkan.")
		return
	}

	preset, ok := seederPresets[input]
	if !ok {
		fmt.Println("Pilihan tidak valid.")
		return
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Error koneksi: %v\n", err)
		return
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	fmt.Println()
	fmt.Println("Memulai seeding...")

	var tahunAjaran domain.TahunAjaran
	if err := db.Where("is_active = ?", true).First(&tahunAjaran).Error; err != nil {
		fmt.Println("Error: Jalankan migrasi schema terlebih dahulu untuk seed reference data.")
		return
	}

	var jenisPoin []domain.JenisPoin
	if err := db.Find(&jenisPoin).Error; err != nil || len(jenisPoin) == 0 {
		fmt.Println("Error: Jalankan migrasi schema terlebih dahulu untuk seed reference data.")
		return
	}

	fmt.Printf("Seeding %d guru...\n", preset.Guru)
	guru := seedGuru(db, rnd, preset.Guru)
	if len(guru) == 0 {
		fmt.Println("Error seed guru.")
		return
	}

	fmt.Printf("Seeding %d kelas...\n", preset.Kelas)
	kelas := seedKelas(db, rnd, preset.Kelas, tahunAjaran.ID, guru)
	if len(kelas) == 0 {
		fmt.Println("Error seed kelas.")
		return
	}

	fmt.Printf("Seeding %d siswa...\n", preset.Siswa)
	siswa := seedSiswa(db, rnd, preset.Siswa, kelas)

	fmt.Printf("Seeding %d catatan poin...\n", preset.Catatan)
	seedCatatan(db, rnd, preset.Catatan, siswa, guru, jenisPoin)

	fmt.Println()
	fmt.Println("Seeding selesai!")
}

func randomNama(rnd *rand.Rand) string {
	return firstNames[rnd.Intn(len(firstNames))] + " " + lastNames[rnd.Intn(len(lastNames))]
}

func seedGuru(db *gorm.DB, rnd *rand.Rand, count int) []domain.Guru {
	var result []domain.Guru
	for i := 0; i < count; i++ {
		nip := fmt.Sprintf("19%07d%09d", rnd.Intn(9999999), rnd.Intn(999999999))
		telepon := fmt.Sprintf("0812%08d", rnd.Intn(99999999))
		g := domain.Guru{
			Nama:    randomNama(rnd),
			NIP:     &nip,
			Telepon: &telepon,
		}
		if err := db.Create(&g).Error; err != nil {
			continue
		}
		result = append(result, g)
	}
	return result
}

func seedKelas(db *gorm.DB, rnd *rand.Rand, count int, tahunAjaranID uuid.UUID, guru []domain.Guru) []domain.Kelas {
	var result []domain.Kelas
	tingkatNames := map[int]string{7: "VII", 8: "VIII", 9: "IX"}
	rombel := []string{"A", "B", "C", "D", "E", "F", "G", "H"}

	for i := 0; i < count; i++ {
		tingkat := 7 + i%3
		nama := fmt.Sprintf("%s-%s", tingkatNames[tingkat], rombel[(i/3)%len(rombel)])
		waliID := guru[rnd.Intn(len(guru))].ID
		k := domain.Kelas{
			TahunAjaranID: tahunAjaranID,
			Nama:          nama,
			Tingkat:       tingkat,
			WaliID:        &waliID,
		}
		if err := db.Create(&k).Error; err != nil {
			continue
		}
		result = append(result, k)
	}
	return result
}

func seedSiswa(db *gorm.DB, rnd *rand.Rand, count int, kelas []domain.Kelas) []domain.Siswa {
	var result []domain.Siswa
	for i := 0; i < count; i++ {
		gender := domain.GenderL
		if rnd.Intn(2) == 1 {
			gender = domain.GenderP
		}
		telepon := fmt.Sprintf("0813%08d", rnd.Intn(99999999))
		kelasID := kelas[rnd.Intn(len(kelas))].ID
		s := domain.Siswa{
			Nama:           randomNama(rnd),
			Gender:         gender,
			Telepon:        &telepon,
			KelasID:        &kelasID,
			KodeRegistrasi: service.NewKodeRegistrasi(),
			PIN:            service.NewPIN(),
			TotalPoin:      0,
		}
		if err := db.Create(&s).Error; err != nil {
			continue
		}
		result = append(result, s)
	}
	return result
}

func seedCatatan(db *gorm.DB, rnd *rand.Rand, count int, siswa []domain.Siswa, guru []domain.Guru, jenisPoin []domain.JenisPoin) {
	if len(siswa) == 0 {
		return
	}
	for i := 0; i < count; i++ {
		s := siswa[rnd.Intn(len(siswa))]
		j := jenisPoin[rnd.Intn(len(jenisPoin))]
		g := guru[rnd.Intn(len(guru))]
		keterangan := keteranganTemplates[rnd.Intn(len(keteranganTemplates))]

		// Snapshot the point value; prestasi reduces the running total
		poin := j.Poin
		if j.Kategori == domain.KategoriPrestasi {
			poin = -poin
		}

		catatan := domain.CatatanPoin{
			SiswaID:    s.ID,
			JenisID:    j.ID,
			GuruID:     g.ID,
			Tanggal:    time.Now().AddDate(0, 0, -rnd.Intn(60)),
			Keterangan: &keterangan,
			Poin:       poin,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&catatan).Error; err != nil {
				return err
			}
			return tx.Model(&domain.Siswa{}).
				Where("id = ?", s.ID).
				Update("total_poin", gorm.Expr("total_poin + ?", poin)).Error
		})
		if err != nil {
			continue
		}
	}
}
