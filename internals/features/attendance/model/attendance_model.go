package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceModel satu baris status kehadiran student pada sebuah sesi.
// Unik per (session_id, student_id); penulisan ulang memakai upsert.
type AttendanceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;column:session_id;uniqueIndex:uq_attendance_session_student" json:"session_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;column:student_id;uniqueIndex:uq_attendance_session_student" json:"student_id"`
	Status    string    `gorm:"size:10;not null;default:'absent';column:status" json:"status"`
	MarkedAt  time.Time `gorm:"autoCreateTime;column:marked_at" json:"marked_at"`
}

func (AttendanceModel) TableName() string { return "attendance" }
