package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enum types
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleGuru  UserRole = "guru"
)

type Gender string

const (
	GenderL Gender = "L"
	GenderP Gender = "P"
)

type PoinKategori string

const (
	KategoriPelanggaran PoinKategori = "pelanggaran"
	KategoriPrestasi    PoinKategori = "prestasi"
)

// Base model with soft delete
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TahunAjaran (academic year, e.g. "2025/2026")
type TahunAjaran struct {
	BaseModel
	Nama     string `gorm:"type:varchar(20);not null" json:"nama"`
	IsActive bool   `gorm:"not null;default:false" json:"is_active"`
}

func (TahunAjaran) TableName() string { return "tahun_ajaran" }

// Guru (teacher, master data; may or may not have a login account)
type Guru struct {
	BaseModel
	Nama    string  `gorm:"type:varchar(100);not null" json:"nama"`
	NIP     *string `gorm:"type:varchar(30)" json:"nip,omitempty"`
	Telepon *string `gorm:"type:varchar(20)" json:"telepon,omitempty"`
}

func (Guru) TableName() string { return "guru" }

// Kelas (class/homeroom within one academic year)
type Kelas struct {
	BaseModel
	TahunAjaranID uuid.UUID    `gorm:"type:uuid;not null" json:"tahun_ajaran_id"`
	Nama          string       `gorm:"type:varchar(30);not null" json:"nama"`
	Tingkat       int          `gorm:"type:smallint;not null" json:"tingkat"`
	WaliID        *uuid.UUID   `gorm:"type:uuid" json:"wali_id,omitempty"`
	TahunAjaran   *TahunAjaran `gorm:"foreignKey:TahunAjaranID" json:"tahun_ajaran,omitempty"`
	Wali          *Guru        `gorm:"foreignKey:WaliID" json:"wali,omitempty"`
}

func (Kelas) TableName() string { return "kelas" }

// JenisPoin (violation or achievement type with its point weight)
type JenisPoin struct {
	BaseModel
	Nama     string       `gorm:"type:varchar(150);not null" json:"nama"`
	Kategori PoinKategori `gorm:"type:varchar(15);not null" json:"kategori"`
	Poin     int          `gorm:"not null" json:"poin"`
}

func (JenisPoin) TableName() string { return "jenis_poin" }

// Siswa (student)
type Siswa struct {
	BaseModel
	Nama           string     `gorm:"type:varchar(100);not null" json:"nama"`
	Gender         Gender     `gorm:"type:char(1);not null;default:'L'" json:"gender"`
	Telepon        *string    `gorm:"type:varchar(20)" json:"telepon,omitempty"`
	KelasID        *uuid.UUID `gorm:"type:uuid" json:"kelas_id,omitempty"`
	FotoURL        *string    `gorm:"type:text" json:"foto_url,omitempty"`
	KodeRegistrasi string     `gorm:"type:varchar(15);not null;uniqueIndex" json:"kode_registrasi"`
	PIN            string     `gorm:"type:char(4);not null" json:"-"`
	TotalPoin      int        `gorm:"not null;default:0" json:"total_poin"`
	Kelas          *Kelas     `gorm:"foreignKey:KelasID" json:"kelas,omitempty"`
}

func (Siswa) TableName() string { return "siswa" }

// CatatanPoin (one recorded violation/achievement for a student).
// Poin is a signed snapshot of the type's weight at record time, so
// later edits to JenisPoin never rewrite history.
type CatatanPoin struct {
	BaseModel
	SiswaID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"siswa_id"`
	JenisID    uuid.UUID  `gorm:"type:uuid;not null" json:"jenis_id"`
	GuruID     uuid.UUID  `gorm:"type:uuid;not null" json:"guru_id"`
	Tanggal    time.Time  `gorm:"type:date;not null;index" json:"tanggal"`
	Keterangan *string    `gorm:"type:text" json:"keterangan,omitempty"`
	Poin       int        `gorm:"not null" json:"poin"`
	Siswa      *Siswa     `gorm:"foreignKey:SiswaID" json:"siswa,omitempty"`
	Jenis      *JenisPoin `gorm:"foreignKey:JenisID" json:"jenis,omitempty"`
	Guru       *Guru      `gorm:"foreignKey:GuruID" json:"guru,omitempty"`
}

func (CatatanPoin) TableName() string { return "catatan_poin" }

// User (staff login account)
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(30);not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Nama         string     `gorm:"type:varchar(100);not null" json:"nama"`
	Role         UserRole   `gorm:"type:varchar(10);not null;default:'guru'" json:"role"`
	GuruID       *uuid.UUID `gorm:"type:uuid" json:"guru_id,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string     `gorm:"type:char(64);not null;uniqueIndex" json:"-"`
	FamilyID  uuid.UUID  `gorm:"type:uuid;not null" json:"family_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (rt *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

type TokenBlacklist struct {
	JTI       string    `gorm:"type:varchar(40);primaryKey" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }
