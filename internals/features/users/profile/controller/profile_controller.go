package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	profileDTO "kampusku_backend/internals/features/users/profile/dto"
	profileModel "kampusku_backend/internals/features/users/profile/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// Me mengembalikan profil yang dimuat middleware auth.
func (ctrl *ProfileController) Me(c *fiber.Ctx) error {
	profile, ok := c.Locals("profile").(*profileModel.ProfileModel)
	if !ok || profile == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Profil tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", profile)
}

// UpdateMe memperbarui profil sendiri. Role tidak bisa diubah lewat sini.
func (ctrl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var req profileDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var rows int64
	err = gateway.Execute("profiles:updateSelf", map[string]any{"id": userID}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Model(&profileModel.ProfileModel{}).
			Where("id = ?", userID).
			Updates(updates)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal memperbarui profil", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", fiber.Map{"id": userID})
}

// ListUsers: admin melihat seluruh profil, dengan filter ?role= opsional.
func (ctrl *ProfileController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&profileModel.ProfileModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	var profiles []profileModel.ProfileModel
	err := gateway.Execute("profiles:list", map[string]any{"page": paging.Page}, func() error {
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("full_name ASC").
			Offset(paging.Offset).
			Limit(paging.Limit).
			Find(&profiles).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil daftar user", err)
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", profiles, &pagination)
}

// ChangeRole: admin mengubah role user lain. Admin tidak bisa menurunkan
// role dirinya sendiri (menghindari mengunci diri keluar).
func (ctrl *ProfileController) ChangeRole(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	if targetID == adminID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa mengubah role sendiri")
	}

	var req profileDTO.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var rows int64
	err = gateway.Execute("profiles:changeRole", map[string]any{
		"id":   targetID,
		"role": req.Role,
	}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Model(&profileModel.ProfileModel{}).
			Where("id = ?", targetID).
			Update("role", req.Role)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengubah role", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Role berhasil diubah", fiber.Map{"id": targetID, "role": req.Role})
}
