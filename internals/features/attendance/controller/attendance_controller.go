package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	attendanceDTO "kampusku_backend/internals/features/attendance/dto"
	"kampusku_backend/internals/features/attendance/service"
	helper "kampusku_backend/internals/helpers"
)

var validate = validator.New()

type AttendanceController struct {
	DB      *gorm.DB
	Service *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	resolver := service.NewSessionResolver(
		service.NewSessionStore(db),
		service.NewEnrollmentStore(db),
		service.NewSemesterStore(db),
	)
	svc := service.NewAttendanceService(
		resolver,
		service.NewEnrollmentStore(db),
		service.NewAttendanceStore(db),
		service.NewProfileStore(db),
	)
	return &AttendanceController{DB: db, Service: svc}
}

func parseDateOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// LoadRoster: faculty membuka lembar kehadiran course untuk satu tanggal.
// Sesi dibuat otomatis kalau belum ada.
func (ctrl *AttendanceController) LoadRoster(c *fiber.Ctx) error {
	var req attendanceDTO.LoadRosterRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	courseID := uuid.MustParse(req.CourseID)
	date, err := parseDateOrToday(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}

	roster, err := ctrl.Service.LoadRoster(c.UserContext(), courseID, date)
	if err != nil {
		return ctrl.mapAttendanceError(c, err)
	}
	return helper.JsonOK(c, "OK", roster)
}

func (ctrl *AttendanceController) Save(c *fiber.Ctx) error {
	var req attendanceDTO.SaveAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	inputs := make([]service.StatusInput, 0, len(req.Records))
	for _, row := range req.Records {
		inputs = append(inputs, service.StatusInput{
			StudentID: uuid.MustParse(row.StudentID),
			Status:    row.Status,
		})
	}

	saved, err := ctrl.Service.SaveAttendance(c.UserContext(), uuid.MustParse(req.SessionID), inputs)
	if err != nil {
		return ctrl.mapAttendanceError(c, err)
	}
	return helper.JsonOK(c, "Kehadiran berhasil disimpan", fiber.Map{"saved": saved})
}

// MarkSelf: student menandai dirinya hadir untuk hari ini.
func (ctrl *AttendanceController) MarkSelf(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var req attendanceDTO.SelfMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	date, err := parseDateOrToday(req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal tidak valid (format YYYY-MM-DD)")
	}

	record, err := ctrl.Service.MarkSelf(c.UserContext(), studentID, uuid.MustParse(req.CourseID), date, req.Status)
	if err != nil {
		return ctrl.mapAttendanceError(c, err)
	}
	return helper.JsonCreated(c, "Kehadiran berhasil ditandai", record)
}

// historyRow untuk riwayat kehadiran student.
type historyRow struct {
	AttendanceID uuid.UUID `json:"attendance_id"`
	Status       string    `json:"status"`
	MarkedAt     time.Time `json:"marked_at"`
	SessionDate  time.Time `json:"session_date"`
	CourseCode   string    `json:"course_code"`
	CourseName   string    `json:"course_name"`
}

// MyHistory mengembalikan 50 kehadiran terakhir student yang login.
func (ctrl *AttendanceController) MyHistory(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var rows []historyRow
	err = gateway.Execute("attendance:myHistory", map[string]any{"student_id": studentID}, func() error {
		return ctrl.DB.WithContext(c.UserContext()).
			Table("attendance").
			Select(`attendance.id AS attendance_id,
				attendance.status,
				attendance.marked_at,
				class_sessions.session_date,
				courses.code AS course_code,
				courses.name AS course_name`).
			Joins("JOIN class_sessions ON class_sessions.id = attendance.session_id").
			Joins("JOIN courses ON courses.id = class_sessions.course_id").
			Where("attendance.student_id = ?", studentID).
			Order("attendance.marked_at DESC").
			Limit(50).
			Scan(&rows).Error
	})
	if err != nil {
		return helper.JsonStoreError(c, "Gagal mengambil riwayat kehadiran", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// mapAttendanceError memetakan error alur kehadiran ke status HTTP.
func (ctrl *AttendanceController) mapAttendanceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoRecordsToSave):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotEnrolled):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyMarked):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoSemesterAvailable):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity,
			"Tidak ada semester yang tersedia. Buat atau aktifkan semester terlebih dahulu.")
	case errors.Is(err, service.ErrRosterUnavailable):
		return helper.JsonStoreError(c, "Roster tidak dapat dimuat", err)
	default:
		var sce *service.SessionCreateError
		if errors.As(err, &sce) {
			return helper.JsonStoreError(c, "Gagal membuat sesi kehadiran", sce.Err)
		}
		return helper.JsonStoreError(c, "Operasi kehadiran gagal", err)
	}
}
