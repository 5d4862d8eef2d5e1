package service

import (
	"errors"
	"fmt"
)

// Error khas alur kehadiran. Controller memetakan tiap error ke status
// HTTP dan pesan remediasi yang jelas; service tidak pernah menelan error.
var (
	// ErrNoSemesterAvailable: tidak ada semester yang bisa dipakai untuk
	// membuat sesi (tidak ada dari enrollment dan tidak ada yang aktif).
	ErrNoSemesterAvailable = errors.New("tidak ada semester yang tersedia untuk sesi ini")

	// ErrRosterUnavailable: daftar enrollment course tidak bisa dibaca.
	ErrRosterUnavailable = errors.New("roster course tidak dapat dimuat")

	// ErrNoRecordsToSave: seluruh baris kehadiran kosong, tidak ada yang disimpan.
	ErrNoRecordsToSave = errors.New("tidak ada baris kehadiran untuk disimpan")

	// ErrAlreadyMarked: student sudah menandai kehadiran pada sesi ini.
	ErrAlreadyMarked = errors.New("kehadiran sudah ditandai untuk hari ini")

	// ErrInvalidDate: self-marking hanya berlaku untuk tanggal hari ini.
	ErrInvalidDate = errors.New("kehadiran hanya bisa ditandai untuk hari ini")

	// ErrNotEnrolled: student tidak terdaftar pada course yang dimaksud.
	ErrNotEnrolled = errors.New("anda tidak terdaftar di course ini")
)

// SessionCreateError membungkus kegagalan insert sesi dengan konteks
// course dan tanggal, agar log dan respons bisa menunjuk sesi yang mana.
type SessionCreateError struct {
	CourseID    string
	SessionDate string
	Err         error
}

func (e *SessionCreateError) Error() string {
	return fmt.Sprintf("gagal membuat sesi course=%s tanggal=%s: %v", e.CourseID, e.SessionDate, e.Err)
}

func (e *SessionCreateError) Unwrap() error { return e.Err }
