package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	"kampusku_backend/internals/features/academics/departments/dto"
	"kampusku_backend/internals/features/academics/departments/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

/* ===================== LIST ===================== */
// GET /departments
func (ctrl *DepartmentController) List(c *fiber.Ctx) error {
	var rows []model.DepartmentModel
	err := gateway.Execute("departments:list", nil, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Order("code").Find(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal memuat departments", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== CREATE ===================== */
// POST /departments
func (ctrl *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	err := gateway.Execute("departments:insert", map[string]any{"code": m.Code}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(m).Error
	})
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Kode department sudah dipakai")
		}
		return helper.JsonStoreError(c, "Gagal membuat department", err)
	}

	return helper.JsonCreated(c, "Department berhasil dibuat", m)
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /departments/:id
func (ctrl *DepartmentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", fiber.Map{"id": id})
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.DepartmentModel{}).
		Where("id = ?", id).
		Updates(updates)
	if err := gateway.Execute("departments:update", map[string]any{"id": id}, func() error { return tx.Error }); err != nil {
		return helper.JsonStoreError(c, "Gagal mengubah department", err)
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Department tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Department berhasil diubah", fiber.Map{"id": id})
}

/* ===================== DELETE ===================== */
// DELETE /departments/:id
func (ctrl *DepartmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("id = ?", id).
		Delete(&model.DepartmentModel{})
	if err := gateway.Execute("departments:delete", map[string]any{"id": id}, func() error { return tx.Error }); err != nil {
		return helper.JsonStoreError(c, "Gagal menghapus department", err)
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Department tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Department berhasil dihapus", fiber.Map{"id": id})
}
