// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	TokenBlacklistModel "kampusku_backend/internals/features/users/auth/model"
	authService "kampusku_backend/internals/features/users/auth/service"
)

// AuthMiddleware memverifikasi JWT lalu me-resolve identity → profile ber-role.
// Resolve profile dibatasi timeout: kalau store tidak merespons, request ditolak
// sebagai unauthenticated, bukan dibiarkan menggantung.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	resolver := authService.NewProfileResolver(db)

	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			var existing TokenBlacklistModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 3) Parse & verifikasi JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) Ambil user_id
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		// 6) Resolve profile (role-tagged) dengan timeout
		profile, err := resolver.GetProfile(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Println("[ERROR] Resolve profile timeout untuk user:", userID)
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Profile resolve timeout")
			}
			log.Println("[ERROR] Resolve profile:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat profile")
		}
		if profile == nil {
			// Akun ada tapi profile belum dibuat → tidak punya role apa pun
			return fiber.NewError(fiber.StatusForbidden, "Profile belum tersedia untuk akun ini")
		}

		// 7) Simpan info ke context request
		c.Locals("userRole", profile.Role)
		c.Locals("user_name", profile.FullName)
		c.Locals("profile", profile)

		return c.Next()
	}
}
