package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel merepresentasikan tabel profiles.
// id = identity id dari tabel users (satu user ↔ satu profile).
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	FullName  string    `gorm:"size:255;column:full_name" json:"full_name"`
	Email     string    `gorm:"size:255;column:email" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'student';column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (ProfileModel) TableName() string { return "profiles" }
