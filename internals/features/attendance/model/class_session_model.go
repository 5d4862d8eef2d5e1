package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClassSessionModel adalah sesi kehadiran satu course pada satu tanggal.
// Constraint unik (course_id, session_date) memastikan resolusi sesi
// tidak pernah membuat duplikat untuk tanggal yang sama.
type ClassSessionModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;column:course_id;uniqueIndex:uq_session_course_date" json:"course_id"`
	SemesterID  uuid.UUID      `gorm:"type:uuid;not null;column:semester_id" json:"semester_id"`
	SessionDate datatypes.Date `gorm:"type:date;not null;column:session_date;uniqueIndex:uq_session_course_date" json:"session_date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }
