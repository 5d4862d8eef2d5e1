package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	"kampusku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah
// melewati TTL, sekali sehari. TTL diatur lewat env
// TOKEN_BLACKLIST_TTL_DAYS (default 7 hari).
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	ttlDays := blacklistTTLDays()

	go func() {
		for {
			if removed, err := purgeExpiredTokens(db, ttlDays); err != nil {
				log.Printf("[CLEANUP] pembersihan token_blacklist gagal: %v", err)
			} else if removed > 0 {
				log.Printf("[CLEANUP] %d token kadaluarsa dihapus", removed)
			}
			time.Sleep(24 * time.Hour)
		}
	}()
}

// blacklistTTLDays membaca TTL dari env; nilai kosong, bukan angka,
// atau <= 0 jatuh ke default 7 hari.
func blacklistTTLDays() int {
	if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 7
}

// purgeExpiredTokens mengambil maksimal 100 token kadaluarsa lalu
// menghapusnya (soft delete). Batch kecil supaya tidak mengunci tabel
// terlalu lama; sisa batch tertangkap putaran berikutnya.
func purgeExpiredTokens(db *gorm.DB, ttlDays int) (int, error) {
	deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	var expired []model.TokenBlacklist
	err := gateway.Execute("token_blacklist:listExpired", map[string]any{"before": deleteBefore.Format(time.RFC3339)}, func() error {
		return db.
			Where("expired_at < ?", deleteBefore).
			Limit(100).
			Find(&expired).Error
	})
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err = gateway.Execute("token_blacklist:purge", map[string]any{"count": len(expired)}, func() error {
		return db.Delete(&expired).Error
	})
	if err != nil {
		return 0, err
	}
	return len(expired), nil
}
