// file: internals/databases/gateway/gateway.go
//
// Wrapper tipis untuk semua operasi ke store remote. Tugasnya satu: pastikan
// SETIAP error (termasuk pelanggaran policy/RLS di Supabase) tercatat lengkap
// dengan message/code/details/hint sebelum diteruskan ke pemanggil — tanpa
// mengubah alur kontrol, tanpa retry, tanpa menelan error.
package gateway

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kode SQLSTATE yang dipakai untuk interpretasi error dari Postgres.
const (
	CodeInsufficientPrivilege = "42501" // RLS / permission ditolak
	CodeUniqueViolation       = "23505"
)

// StoreError membawa field diagnostik dari store (gaya PostgREST/Supabase:
// message, code, details, hint) plus label operasi untuk korelasi log.
type StoreError struct {
	Label   string
	Message string
	Code    string
	Details string
	Hint    string
	Err     error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Code != "" {
		b.WriteString(" (code: " + e.Code + ")")
	}
	if e.Details != "" {
		b.WriteString(" details: " + e.Details)
	}
	if e.Hint != "" {
		b.WriteString(" hint: " + e.Hint)
	}
	return b.String()
}

func (e *StoreError) Unwrap() error { return e.Err }

// PolicyViolation: operasi ditolak aturan otorisasi per-baris di store.
// Pemanggil wajib menampilkan pesan remediasi khusus, bukan error generik.
func (e *StoreError) PolicyViolation() bool {
	if e.Code == CodeInsufficientPrivilege {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "row-level security") || strings.Contains(msg, "row level security")
}

// UniqueViolation: konflik key unik (mis. sesi/absensi duplikat saat race).
func (e *StoreError) UniqueViolation() bool { return e.Code == CodeUniqueViolation }

// IsNotFound: record tidak ditemukan adalah hasil yang DIHARAPKAN di banyak
// alur (cek sesi, cek profile) — bukan kegagalan.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// AsStoreError mengambil *StoreError dari chain error (nil kalau tidak ada).
func AsStoreError(err error) *StoreError {
	var se *StoreError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// Execute menjalankan satu operasi store dengan label + meta untuk log.
// NotFound diteruskan apa adanya (tanpa log error); kegagalan lain dibungkus
// jadi *StoreError dan dicatat sekali, lalu diteruskan tanpa dimodifikasi.
func Execute(label string, meta map[string]any, run func() error) error {
	err := run()
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return err
	}

	se := wrap(label, err)
	log.Printf("[store] %s error message=%q code=%q details=%q hint=%q%s",
		label, se.Message, se.Code, se.Details, se.Hint, formatMeta(meta))
	return se
}

func wrap(label string, err error) *StoreError {
	se := &StoreError{Label: label, Message: err.Error(), Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Message = pgErr.Message
		se.Code = pgErr.Code
		se.Details = pgErr.Detail
		se.Hint = pgErr.Hint
	}
	return se
}

func formatMeta(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, meta[k]))
	}
	return b.String()
}
