package model

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;column:student_id;uniqueIndex:uq_enrollment" json:"student_id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;column:course_id;uniqueIndex:uq_enrollment" json:"course_id"`
	SemesterID uuid.UUID `gorm:"type:uuid;not null;column:semester_id;uniqueIndex:uq_enrollment" json:"semester_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
