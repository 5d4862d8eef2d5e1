package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	enrollmentDTO "kampusku_backend/internals/features/academics/enrollments/dto"
	enrollmentModel "kampusku_backend/internals/features/academics/enrollments/model"
	semesterModel "kampusku_backend/internals/features/academics/semesters/model"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// enrollmentRow hasil join untuk tampilan list (nama student, course, semester).
type enrollmentRow struct {
	enrollmentModel.EnrollmentModel
	StudentName  string `json:"student_name"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	SemesterName string `json:"semester_name"`
}

func (ctrl *EnrollmentController) List(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).
		Table("enrollments").
		Select(`enrollments.*,
			profiles.full_name AS student_name,
			courses.code AS course_code,
			courses.name AS course_name,
			semesters.name AS semester_name`).
		Joins("LEFT JOIN profiles ON profiles.id = enrollments.student_id").
		Joins("LEFT JOIN courses ON courses.id = enrollments.course_id").
		Joins("LEFT JOIN semesters ON semesters.id = enrollments.semester_id").
		Order("enrollments.created_at DESC")

	if courseID := c.Query("course_id"); courseID != "" {
		id, err := uuid.Parse(courseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		q = q.Where("enrollments.course_id = ?", id)
	}

	var rows []enrollmentRow
	err := gateway.Execute("enrollments:list", nil, func() error {
		return q.Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil data enrollment", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

func (ctrl *EnrollmentController) Create(c *fiber.Ctx) error {
	var req enrollmentDTO.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	enr := &enrollmentModel.EnrollmentModel{
		StudentID:  uuid.MustParse(req.StudentID),
		CourseID:   uuid.MustParse(req.CourseID),
		SemesterID: uuid.MustParse(req.SemesterID),
	}

	err := gateway.Execute("enrollments:insert", map[string]any{
		"student_id": enr.StudentID,
		"course_id":  enr.CourseID,
	}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(enr).Error
	})
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Student sudah terdaftar di course ini")
		}
		return helper.JsonStoreError(c, "Gagal membuat enrollment", err)
	}
	return helper.JsonCreated(c, "Enrollment berhasil dibuat", enr)
}

func (ctrl *EnrollmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var rows int64
	err = gateway.Execute("enrollments:delete", map[string]any{"id": id}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Where("id = ?", id).
			Delete(&enrollmentModel.EnrollmentModel{})
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal menghapus enrollment", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Enrollment berhasil dihapus", fiber.Map{"id": id})
}

// SelfEnroll mendaftarkan student yang login ke sebuah course.
// Jika semester_id kosong, dipakai semester aktif.
func (ctrl *EnrollmentController) SelfEnroll(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var req enrollmentDTO.SelfEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var semesterID uuid.UUID
	if req.SemesterID != "" {
		semesterID = uuid.MustParse(req.SemesterID)
	} else {
		var sem semesterModel.SemesterModel
		err := gateway.Execute("semesters:getActive", nil, func() error {
			return ctrl.DB.WithContext(c.UserContext()).
				Where("is_active = ?", true).
				Order("start_date DESC").
				First(&sem).Error
		})
		if err != nil {
			if gateway.IsNotFound(err) {
				return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tidak ada semester aktif. Hubungi admin.")
			}
			return helper.JsonStoreError(c, "Gagal mengambil semester aktif", err)
		}
		semesterID = sem.ID
	}

	enr := &enrollmentModel.EnrollmentModel{
		StudentID:  studentID,
		CourseID:   uuid.MustParse(req.CourseID),
		SemesterID: semesterID,
	}

	err = gateway.Execute("enrollments:selfEnroll", map[string]any{
		"student_id": studentID,
		"course_id":  enr.CourseID,
	}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).Create(enr).Error
	})
	if err != nil {
		if se := gateway.AsStoreError(err); se != nil && se.UniqueViolation() {
			return helper.JsonError(c, fiber.StatusConflict, "Anda sudah terdaftar di course ini")
		}
		return helper.JsonStoreError(c, "Gagal mendaftar course", err)
	}
	return helper.JsonCreated(c, "Berhasil mendaftar course", enr)
}

// SelfUnenroll membatalkan pendaftaran course milik student yang login.
// Filter student_id dari token mencegah menghapus enrollment orang lain.
func (ctrl *EnrollmentController) SelfUnenroll(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var rows int64
	err = gateway.Execute("enrollments:selfUnenroll", map[string]any{
		"student_id": studentID,
		"course_id":  courseID,
	}, func() error {
		res := ctrl.DB.WithContext(c.UserContext()).
			Where("student_id = ? AND course_id = ?", studentID, courseID).
			Delete(&enrollmentModel.EnrollmentModel{})
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal membatalkan pendaftaran", err)
	}
	if rows == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Pendaftaran dibatalkan", fiber.Map{"course_id": courseID})
}

// myCourseRow untuk list course milik student.
type myCourseRow struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	CourseID     uuid.UUID `json:"course_id"`
	CourseCode   string    `json:"course_code"`
	CourseName   string    `json:"course_name"`
	Credits      int       `json:"credits"`
	SemesterID   uuid.UUID `json:"semester_id"`
	SemesterName string    `json:"semester_name"`
	FacultyName  *string   `json:"faculty_name,omitempty"`
}

func (ctrl *EnrollmentController) MyCourses(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var rows []myCourseRow
	err = gateway.Execute("enrollments:myCourses", map[string]any{"student_id": studentID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("enrollments").
			Select(`enrollments.id AS enrollment_id,
				courses.id AS course_id,
				courses.code AS course_code,
				courses.name AS course_name,
				courses.credits,
				semesters.id AS semester_id,
				semesters.name AS semester_name,
				profiles.full_name AS faculty_name`).
			Joins("JOIN courses ON courses.id = enrollments.course_id").
			Joins("LEFT JOIN semesters ON semesters.id = enrollments.semester_id").
			Joins("LEFT JOIN profiles ON profiles.id = courses.faculty_id").
			Where("enrollments.student_id = ?", studentID).
			Order("courses.code ASC").
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil course Anda", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}
