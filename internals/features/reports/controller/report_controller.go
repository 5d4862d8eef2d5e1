package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	helper "kampusku_backend/internals/helpers"
)

// ReportController menyusun baris data siap-export untuk admin.
// Output JSON datar; konversi ke CSV/XLSX urusan frontend.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type studentReportRow struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Enrollments int64     `json:"enrollments"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ctrl *ReportController) Students(c *fiber.Ctx) error {
	var rows []studentReportRow
	err := gateway.Execute("reports:students", nil, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("profiles").
			Select(`profiles.id,
				profiles.full_name,
				profiles.email,
				profiles.created_at,
				COUNT(enrollments.id) AS enrollments`).
			Joins("LEFT JOIN enrollments ON enrollments.student_id = profiles.id").
			Where("profiles.role = ?", "student").
			Group("profiles.id").
			Order("profiles.full_name ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menyusun laporan student", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

type courseReportRow struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Credits        int       `json:"credits"`
	DepartmentName *string   `json:"department_name"`
	FacultyName    *string   `json:"faculty_name"`
	Enrolled       int64     `json:"enrolled"`
}

func (ctrl *ReportController) Courses(c *fiber.Ctx) error {
	var rows []courseReportRow
	err := gateway.Execute("reports:courses", nil, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("courses").
			Select(`courses.id,
				courses.code,
				courses.name,
				courses.credits,
				departments.name AS department_name,
				profiles.full_name AS faculty_name,
				COUNT(enrollments.id) AS enrolled`).
			Joins("LEFT JOIN departments ON departments.id = courses.department_id").
			Joins("LEFT JOIN profiles ON profiles.id = courses.faculty_id").
			Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
			Group("courses.id, departments.name, profiles.full_name").
			Order("courses.code ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menyusun laporan course", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

type enrollmentReportRow struct {
	ID           uuid.UUID `json:"id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	CourseCode   string    `json:"course_code"`
	CourseName   string    `json:"course_name"`
	SemesterName string    `json:"semester_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ctrl *ReportController) Enrollments(c *fiber.Ctx) error {
	var rows []enrollmentReportRow
	err := gateway.Execute("reports:enrollments", nil, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("enrollments").
			Select(`enrollments.id,
				enrollments.created_at,
				profiles.full_name AS student_name,
				profiles.email AS student_email,
				courses.code AS course_code,
				courses.name AS course_name,
				semesters.name AS semester_name`).
			Joins("LEFT JOIN profiles ON profiles.id = enrollments.student_id").
			Joins("LEFT JOIN courses ON courses.id = enrollments.course_id").
			Joins("LEFT JOIN semesters ON semesters.id = enrollments.semester_id").
			Order("enrollments.created_at DESC").
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menyusun laporan enrollment", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
