package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	courseDTO "kampusku_backend/internals/features/academics/courses/dto"
	courseModel "kampusku_backend/internals/features/academics/courses/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// courseWithDepartment dipakai untuk list yang menyertakan nama jurusan.
type courseWithDepartment struct {
	courseModel.CourseModel
	DepartmentName *string `json:"department_name,omitempty"`
	FacultyName    *string `json:"faculty_name,omitempty"`
}

// List mengembalikan seluruh course (katalog). Student memakai endpoint ini
// untuk memilih course saat enroll.
func (ctrl *CourseController) List(c *fiber.Ctx) error {
	var courses []courseWithDepartment
	err := gateway.Execute("courses:list", nil, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("courses").
			Select("courses.*, departments.name AS department_name, profiles.full_name AS faculty_name").
			Joins("LEFT JOIN departments ON departments.id = courses.department_id").
			Joins("LEFT JOIN profiles ON profiles.id = courses.faculty_id").
			Order("courses.code ASC").
			Scan(&courses).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil data course", err)
	}
	return helper.JsonList(c, "ok", courses, nil)
}

// ListMine mengembalikan course milik faculty yang sedang login.
func (ctrl *CourseController) ListMine(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var courses []courseWithDepartment
	err = gateway.Execute("courses:listByFaculty", map[string]any{"faculty_id": facultyID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("courses").
			Select("courses.*, departments.name AS department_name").
			Joins("LEFT JOIN departments ON departments.id = courses.department_id").
			Where("courses.faculty_id = ?", facultyID).
			Order("courses.code ASC").
			Scan(&courses).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil course Anda", err)
	}
	return helper.JsonList(c, "ok", courses, nil)
}

func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course courseModel.CourseModel
	err = gateway.Execute("courses:getByID", map[string]any{"id": id}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).First(&course, "id = ?", id).Error
	})
	if err != nil {
		if gateway.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonStoreError(c, "Gagal mengambil course", err)
	}
	return helper.JsonOK(c, "OK", course)
}

func (ctrl *CourseController) Create(c *fiber.Ctx) error {
	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	course, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID referensi tidak valid")
	}

	err = gateway.Execute("courses:insert", map[string]any{"code": course.Code}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(course).Error
	})
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Kode course sudah terdaftar")
		}
		return helper.JsonStoreError(c, "Gagal membuat course", err)
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", course)
}

func (ctrl *CourseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	updates, err := req.Updates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID referensi tidak valid")
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	var rows int64
	err = gateway.Execute("courses:update", map[string]any{"id": id}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Model(&courseModel.CourseModel{}).
			Where("id = ?", id).
			Updates(updates)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Kode course sudah terdaftar")
		}
		return helper.JsonStoreError(c, "Gagal memperbarui course", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Course berhasil diperbarui", fiber.Map{"id": id})
}

func (ctrl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var rows int64
	err = gateway.Execute("courses:delete", map[string]any{"id": id}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Where("id = ?", id).
			Delete(&courseModel.CourseModel{})
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menghapus course", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"id": id})
}
