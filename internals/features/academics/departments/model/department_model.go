package model

import (
	"time"

	"github.com/google/uuid"
)

type DepartmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Code      string    `gorm:"size:20;not null;uniqueIndex;column:code" json:"code"`
	Name      string    `gorm:"size:255;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (DepartmentModel) TableName() string { return "departments" }
