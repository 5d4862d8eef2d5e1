package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	profileModel "kampusku_backend/internals/features/users/profile/model"
)

// resolveTimeout: batas waktu resolve identity → profile. Lewat dari ini request
// dianggap unauthenticated, bukan menggantung menunggu store.
const resolveTimeout = 5 * time.Second

// ProfileResolver memetakan identity terautentikasi ke row profile ber-role.
// Semua komponen lain digate lewat hasil resolve ini.
type ProfileResolver struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewProfileResolver(db *gorm.DB) *ProfileResolver {
	return &ProfileResolver{DB: db, Timeout: resolveTimeout}
}

// GetProfile mengambil profile untuk userID. Profile yang belum ada adalah
// kondisi normal (akun baru) → (nil, nil), bukan error.
func (r *ProfileResolver) GetProfile(ctx context.Context, userID uuid.UUID) (*profileModel.ProfileModel, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var p profileModel.ProfileModel
	err := gateway.Execute("profiles:getByID", map[string]any{"user_id": userID}, func() error {
		return r.DB.WithContext(ctx).Where("id = ?", userID).Take(&p).Error
	})
	if gateway.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
