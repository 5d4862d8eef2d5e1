package model

import (
	"time"

	"github.com/google/uuid"
)

// GradeModel nilai satu student untuk satu assignment.
// Unik per (assignment_id, student_id); penilaian ulang memakai upsert.
type GradeModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;column:assignment_id;uniqueIndex:uq_grade_assignment_student" json:"assignment_id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;column:student_id;uniqueIndex:uq_grade_assignment_student" json:"student_id"`
	Marks        float64   `gorm:"not null;column:marks_obtained" json:"marks_obtained"`
	GradedAt     time.Time `gorm:"autoCreateTime;column:graded_at" json:"graded_at"`
}

func (GradeModel) TableName() string { return "grades" }
