package service

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/databases/gateway"
	authModel "kampusku_backend/internals/features/users/auth/model"
	profileModel "kampusku_backend/internals/features/users/profile/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

/* ==========================
   DTO
========================== */

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=3,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* ==========================
   REGISTER
========================== */

// Register membuat user + seed profile (role default: student) dalam satu transaksi.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := authModel.UserModel{
		Email:    req.Email,
		Password: passwordHash,
	}

	var profile profileModel.ProfileModel
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := gateway.Execute("users:insert", map[string]any{"email": req.Email}, func() error {
			return tx.Create(&user).Error
		}); err != nil {
			return err
		}
		profile = profileModel.ProfileModel{
			ID:       user.ID,
			FullName: strings.TrimSpace(req.FullName),
			Email:    req.Email,
			Role:     constants.RoleStudent,
		}
		return gateway.Execute("profiles:insertSeed", map[string]any{"user_id": user.ID}, func() error {
			return tx.Create(&profile).Error
		})
	})
	if txErr != nil {
		if se := gateway.AsStoreError(txErr); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonStoreError(c, "Registrasi gagal", txErr)
	}

	return helper.JsonCreated(c, "Registrasi berhasil", profile)
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user authModel.UserModel
	err := gateway.Execute("users:getByEmail", map[string]any{"email": req.Email}, func() error {
		return db.WithContext(c.UserContext()).
			Where("email = ? AND is_active = TRUE", req.Email).
			Take(&user).Error
	})
	if gateway.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		return helper.JsonStoreError(c, "Login gagal", err)
	}

	if err := ComparePassword(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	// Resolve profile (role dibutuhkan untuk claim token)
	resolver := NewProfileResolver(db)
	profile, err := resolver.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return helper.JsonStoreError(c, "Gagal memuat profile", err)
	}
	role := constants.RoleStudent
	if profile != nil {
		role = profile.Role
	}

	accessToken, err := CreateAccessToken(user.ID, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refreshToken, err := CreateRefreshToken(user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"profile":       profile,
	})
}

/* ==========================
   REFRESH
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	userID, err := ParseRefreshToken(req.RefreshToken)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	resolver := NewProfileResolver(db)
	profile, err := resolver.GetProfile(c.UserContext(), userID)
	if err != nil {
		return helper.JsonStoreError(c, "Gagal memuat profile", err)
	}
	role := constants.RoleStudent
	if profile != nil {
		role = profile.Role
	}

	accessToken, err := CreateAccessToken(userID, role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}

	return helper.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token": accessToken,
	})
}

/* ==========================
   LOGOUT
========================== */

// Logout memasukkan access token aktif ke blacklist sampai kadaluarsa alaminya.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Token tidak ditemukan")
	}

	// Ambil exp dari claims (tanpa verifikasi ulang; middleware sudah memverifikasi)
	expiredAt := time.Now().Add(accessTTLDefault)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := gateway.Execute("token_blacklist:insert", nil, func() error {
		return db.Create(&entry).Error
	}); err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonOK(c, "Logout berhasil", nil)
		}
		return helper.JsonStoreError(c, "Logout gagal", err)
	}

	return helper.JsonOK(c, "Logout berhasil", nil)
}
