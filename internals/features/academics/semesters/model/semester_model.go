package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SemesterModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name      string         `gorm:"size:100;not null;column:name" json:"name"`
	StartDate datatypes.Date `gorm:"type:date;column:start_date" json:"start_date"`
	EndDate   datatypes.Date `gorm:"type:date;column:end_date" json:"end_date"`
	// Flag aktif hanya DIBACA oleh engine resolve sesi; tidak ada jaminan
	// single-active di level store.
	IsActive  bool      `gorm:"not null;default:false;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (SemesterModel) TableName() string { return "semesters" }
