package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kampusku_backend/internals/features/academics/courses/controller"
	enrollmentController "kampusku_backend/internals/features/academics/enrollments/controller"
	attendanceController "kampusku_backend/internals/features/attendance/controller"
	gradeController "kampusku_backend/internals/features/grades/controller"
	homeController "kampusku_backend/internals/features/home/controller"
	profileController "kampusku_backend/internals/features/users/profile/controller"
)

// StudentRoutes: katalog, enroll mandiri, absen mandiri, nilai sendiri.
// Router sudah dibungkus AuthMiddleware + OnlyRoles(student).
func StudentRoutes(student fiber.Router, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	student.Get("/courses", courseCtrl.List)

	enrollmentCtrl := enrollmentController.NewEnrollmentController(db)
	student.Get("/my-courses", enrollmentCtrl.MyCourses)
	student.Post("/enroll", enrollmentCtrl.SelfEnroll)
	student.Delete("/enroll/:course_id", enrollmentCtrl.SelfUnenroll)

	attendanceCtrl := attendanceController.NewAttendanceController(db)
	attendance := student.Group("/attendance")
	attendance.Post("/mark", attendanceCtrl.MarkSelf)
	attendance.Get("/history", attendanceCtrl.MyHistory)

	gradeCtrl := gradeController.NewGradeController(db)
	student.Get("/grades", gradeCtrl.MyGrades)

	profileCtrl := profileController.NewProfileController(db)
	student.Get("/profile", profileCtrl.Me)
	student.Put("/profile", profileCtrl.UpdateMe)

	dashboardCtrl := homeController.NewDashboardController(db)
	student.Get("/dashboard", dashboardCtrl.StudentStats)
}
