package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	gradeDTO "kampusku_backend/internals/features/grades/dto"
	gradeModel "kampusku_backend/internals/features/grades/model"
	gradeService "kampusku_backend/internals/features/grades/service"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type GradeController struct {
	DB      *gorm.DB
	Service *gradeService.GradeService
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db, Service: gradeService.NewGradeService(db)}
}

// ListAssignments: ?course_id= wajib; faculty melihat assignment course-nya.
func (ctrl *GradeController) ListAssignments(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var assignments []gradeModel.AssignmentModel
	err = gateway.Execute("assignments:listByCourse", map[string]any{"course_id": courseID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Where("course_id = ?", courseID).
			Order("created_at DESC").
			Find(&assignments).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil assignment", err)
	}
	return helper.JsonList(c, "ok", assignments, nil)
}

func (ctrl *GradeController) CreateAssignment(c *fiber.Ctx) error {
	var req gradeDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	assignment := &gradeModel.AssignmentModel{
		CourseID: uuid.MustParse(req.CourseID),
		Title:    req.Title,
		MaxMarks: 100,
	}
	if req.MaxMarks != nil {
		assignment.MaxMarks = *req.MaxMarks
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "due_date tidak valid (format YYYY-MM-DD)")
		}
		d := datatypes.Date(due)
		assignment.DueDate = &d
	}

	err := gateway.Execute("assignments:insert", map[string]any{"course_id": assignment.CourseID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(assignment).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal membuat assignment", err)
	}
	return helper.JsonCreated(c, "Assignment berhasil dibuat", assignment)
}

func (ctrl *GradeController) DeleteAssignment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID assignment tidak valid")
	}

	var rows int64
	err = gateway.Execute("assignments:delete", map[string]any{"id": id}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Where("id = ?", id).
			Delete(&gradeModel.AssignmentModel{})
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menghapus assignment", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Assignment berhasil dihapus", fiber.Map{"id": id})
}

// LoadSheet: lembar penilaian satu assignment (roster + skor existing).
func (ctrl *GradeController) LoadSheet(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Query("assignment_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "assignment_id tidak valid")
	}

	sheet, err := ctrl.Service.LoadSheet(c.UserContext(), assignmentID)
	if err != nil {
		if errors.Is(err, gradeService.ErrAssignmentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonStoreError(c, "Gagal memuat lembar penilaian", err)
	}
	return helper.JsonOK(c, "OK", sheet)
}

func (ctrl *GradeController) SaveGrades(c *fiber.Ctx) error {
	var req gradeDTO.SaveGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	inputs := make([]gradeService.MarksInput, 0, len(req.Grades))
	for _, row := range req.Grades {
		inputs = append(inputs, gradeService.MarksInput{
			StudentID: uuid.MustParse(row.StudentID),
			Marks:     row.Marks,
		})
	}

	saved, err := ctrl.Service.SaveGrades(c.UserContext(), uuid.MustParse(req.AssignmentID), inputs)
	if err != nil {
		switch {
		case errors.Is(err, gradeService.ErrAssignmentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, gradeService.ErrNoGradesToSave):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonStoreError(c, "Gagal menyimpan nilai", err)
		}
	}
	return helper.JsonOK(c, "Nilai berhasil disimpan", fiber.Map{"saved": saved})
}

// myGradeRow riwayat nilai student.
type myGradeRow struct {
	GradeID    uuid.UUID `json:"grade_id"`
	Marks      float64   `json:"marks"`
	MaxMarks   float64   `json:"max_marks"`
	Title      string    `json:"title"`
	CourseCode string    `json:"course_code"`
	CourseName string    `json:"course_name"`
	GradedAt   time.Time `json:"graded_at"`
}

func (ctrl *GradeController) MyGrades(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var rows []myGradeRow
	err = gateway.Execute("grades:myGrades", map[string]any{"student_id": studentID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("grades").
			Select(`grades.id AS grade_id,
				grades.marks_obtained AS marks,
				grades.graded_at,
				assignments.max_marks,
				assignments.title,
				courses.code AS course_code,
				courses.name AS course_name`).
			Joins("JOIN assignments ON assignments.id = grades.assignment_id").
			Joins("JOIN courses ON courses.id = assignments.course_id").
			Where("grades.student_id = ?", studentID).
			Order("grades.graded_at DESC").
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil nilai Anda", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
