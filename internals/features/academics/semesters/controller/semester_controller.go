package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	"kampusku_backend/internals/features/academics/semesters/dto"
	"kampusku_backend/internals/features/academics/semesters/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type SemesterController struct {
	DB *gorm.DB
}

func NewSemesterController(db *gorm.DB) *SemesterController {
	return &SemesterController{DB: db}
}

/* ===================== LIST ===================== */
// GET /semesters?active=true
func (ctrl *SemesterController) List(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Order("name")
	if c.Query("active") == "true" {
		q = q.Where("is_active = TRUE")
	}

	var rows []model.SemesterModel
	err := gateway.Execute("semesters:list", map[string]any{"active": c.Query("active")}, func() error {
		return q.Find(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal memuat semesters", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* ===================== CREATE ===================== */
// POST /semesters
func (ctrl *SemesterController) Create(c *fiber.Ctx) error {
	var req dto.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	err := gateway.Execute("semesters:insert", map[string]any{"name": m.Name}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(m).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal membuat semester", err)
	}

	return helper.JsonCreated(c, "Semester berhasil dibuat", m)
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /semesters/:id
func (ctrl *SemesterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateSemesterRequest
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
		Model(&model.SemesterModel{}).
		Where("id = ?", id).
		Updates(updates)
	if err := gateway.Execute("semesters:update", map[string]any{"id": id}, func() error { return tx.Error }); err != nil {
		return helper.JsonStoreError(c, "Gagal mengubah semester", err)
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Semester tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Semester berhasil diubah", fiber.Map{"id": id})
}

/* ===================== DELETE ===================== */
// DELETE /semesters/:id
func (ctrl *SemesterController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("id = ?", id).
		Delete(&model.SemesterModel{})
	if err := gateway.Execute("semesters:delete", map[string]any{"id": id}, func() error { return tx.Error }); err != nil {
		return helper.JsonStoreError(c, "Gagal menghapus semester", err)
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Semester tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Semester berhasil dihapus", fiber.Map{"id": id})
}
