package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Code         string     `gorm:"size:20;not null;column:code" json:"code"`
	Name         string     `gorm:"size:255;not null;column:name" json:"name"`
	Credits      int        `gorm:"not null;default:3;column:credits" json:"credits"`
	Description  string     `gorm:"type:text;column:description" json:"description"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;column:department_id" json:"department_id,omitempty"`
	// Faculty pemilik course; nullable (course bisa belum ditugaskan)
	FacultyID *uuid.UUID `gorm:"type:uuid;column:faculty_id" json:"faculty_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (CourseModel) TableName() string { return "courses" }
