package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"kampusku_backend/internals/databases/gateway"
	helper "kampusku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (ctrl *DashboardController) count(ctx context.Context, label, table string, where string, args ...any) (int64, error) {
	var n int64
	err := gateway.Execute(label, nil, func() error {
		q := ctrl.DB.WithContext(ctx).Table(table)
		if where != "" {
			q = q.Where(where, args...)
		}
		return q.Count(&n).Error
	})
	return n, err
}

// AdminStats menghitung ringkasan untuk dashboard admin. Semua count
// berjalan paralel. Kalau count student di profiles ditolak policy,
// fallback ke distinct student_id di enrollments supaya dashboard
// tetap berisi angka, bukan error.
func (ctrl *DashboardController) AdminStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var students, courses, departments, enrollments, activeSemesters int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:countStudents", "profiles", "role = ?", "student")
		if err != nil {
			if se := gateway.AsStoreError(err); se != nil && se.PolicyViolation() {
				log.Printf("[dashboard] count profiles ditolak policy, fallback ke enrollments")
				return gateway.Execute("dashboard:countStudentsFallback", nil, func() error {
					return ctrl.DB.WithContext(gctx).
						Table("enrollments").
						Distinct("student_id").
						Count(&students).Error
				})
			}
			return err
		}
		students = n
		return nil
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:countCourses", "courses", "")
		courses = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:countDepartments", "departments", "")
		departments = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:countEnrollments", "enrollments", "")
		enrollments = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:countActiveSemesters", "semesters", "is_active = ?", true)
		activeSemesters = n
		return err
	})
	if err := g.Wait(); err != nil {
		return helper.JsonStoreError(c, "Gagal memuat statistik dashboard", err)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"students":         students,
		"courses":          courses,
		"departments":      departments,
		"enrollments":      enrollments,
		"active_semesters": activeSemesters,
	})
}

// FacultyStats: ringkasan untuk faculty yang login.
func (ctrl *DashboardController) FacultyStats(c *fiber.Ctx) error {
	facultyID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	ctx := c.UserContext()

	var courses, students, enrollments, assignments int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:facultyCourses", "courses", "faculty_id = ?", facultyID)
		courses = n
		return err
	})
	g.Go(func() error {
		return gateway.Execute("dashboard:facultyEnrollments", map[string]any{"faculty_id": facultyID}, func() error {
			return ctrl.DB.WithContext(gctx).
				Table("enrollments").
				Joins("JOIN courses ON courses.id = enrollments.course_id").
				Where("courses.faculty_id = ?", facultyID).
				Count(&enrollments).Error
		})
	})
	g.Go(func() error {
		return gateway.Execute("dashboard:facultyStudents", map[string]any{"faculty_id": facultyID}, func() error {
			return ctrl.DB.WithContext(gctx).
				Table("enrollments").
				Joins("JOIN courses ON courses.id = enrollments.course_id").
				Where("courses.faculty_id = ?", facultyID).
				Distinct("enrollments.student_id").
				Count(&students).Error
		})
	})
	g.Go(func() error {
		return gateway.Execute("dashboard:facultyAssignments", map[string]any{"faculty_id": facultyID}, func() error {
			return ctrl.DB.WithContext(gctx).
				Table("assignments").
				Joins("JOIN courses ON courses.id = assignments.course_id").
				Where("courses.faculty_id = ?", facultyID).
				Count(&assignments).Error
		})
	})
	if err := g.Wait(); err != nil {
		return helper.JsonStoreError(c, "Gagal memuat statistik dashboard", err)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"courses":     courses,
		"students":    students,
		"enrollments": enrollments,
		"assignments": assignments,
	})
}

// StudentStats: ringkasan untuk student yang login, termasuk rasio hadir.
func (ctrl *DashboardController) StudentStats(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	ctx := c.UserContext()

	var courses, attended, totalSessions, grades int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:studentCourses", "enrollments", "student_id = ?", studentID)
		courses = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:studentAttended", "attendance",
			"student_id = ? AND status IN ?", studentID, []string{"present", "late"})
		attended = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:studentSessionsTotal", "attendance", "student_id = ?", studentID)
		totalSessions = n
		return err
	})
	g.Go(func() error {
		n, err := ctrl.count(gctx, "dashboard:studentGrades", "grades", "student_id = ?", studentID)
		grades = n
		return err
	})
	if err := g.Wait(); err != nil {
		return helper.JsonStoreError(c, "Gagal memuat statistik dashboard", err)
	}

	attendanceRate := 0.0
	if totalSessions > 0 {
		attendanceRate = float64(attended) / float64(totalSessions) * 100
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"courses":         courses,
		"sessions_total":  totalSessions,
		"sessions_hadir":  attended,
		"attendance_rate": attendanceRate,
		"grades":          grades,
	})
}
