package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kampusku_backend/internals/features/academics/courses/controller"
	enrollmentController "kampusku_backend/internals/features/academics/enrollments/controller"
	attendanceController "kampusku_backend/internals/features/attendance/controller"
	gradeController "kampusku_backend/internals/features/grades/controller"
	homeController "kampusku_backend/internals/features/home/controller"
)

// FacultyRoutes: kehadiran dan penilaian course milik faculty. Router
// sudah dibungkus AuthMiddleware + OnlyRoles(faculty, admin).
func FacultyRoutes(faculty fiber.Router, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	faculty.Get("/courses", courseCtrl.ListMine)

	enrollmentCtrl := enrollmentController.NewEnrollmentController(db)
	faculty.Get("/enrollments", enrollmentCtrl.List)

	attendanceCtrl := attendanceController.NewAttendanceController(db)
	attendance := faculty.Group("/attendance")
	attendance.Get("/roster", attendanceCtrl.LoadRoster)
	attendance.Post("/save", attendanceCtrl.Save)

	gradeCtrl := gradeController.NewGradeController(db)
	assignments := faculty.Group("/assignments")
	assignments.Get("/", gradeCtrl.ListAssignments)
	assignments.Post("/", gradeCtrl.CreateAssignment)
	assignments.Delete("/:id", gradeCtrl.DeleteAssignment)

	grades := faculty.Group("/grades")
	grades.Get("/sheet", gradeCtrl.LoadSheet)
	grades.Post("/save", gradeCtrl.SaveGrades)

	dashboardCtrl := homeController.NewDashboardController(db)
	faculty.Get("/dashboard", dashboardCtrl.FacultyStats)
}
