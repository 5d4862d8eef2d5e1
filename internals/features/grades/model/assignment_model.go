package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AssignmentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	CourseID  uuid.UUID       `gorm:"type:uuid;not null;column:course_id" json:"course_id"`
	Title     string          `gorm:"size:255;not null;column:title" json:"title"`
	MaxMarks  float64         `gorm:"not null;default:100;column:max_marks" json:"max_marks"`
	DueDate   *datatypes.Date `gorm:"type:date;column:due_date" json:"due_date,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }
