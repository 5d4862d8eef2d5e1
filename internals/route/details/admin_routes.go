package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kampusku_backend/internals/features/academics/courses/controller"
	departmentController "kampusku_backend/internals/features/academics/departments/controller"
	enrollmentController "kampusku_backend/internals/features/academics/enrollments/controller"
	semesterController "kampusku_backend/internals/features/academics/semesters/controller"
	homeController "kampusku_backend/internals/features/home/controller"
	reportController "kampusku_backend/internals/features/reports/controller"
	profileController "kampusku_backend/internals/features/users/profile/controller"
)

// AdminRoutes: manajemen master data, user, dan laporan. Router sudah
// dibungkus AuthMiddleware + OnlyRoles(admin) oleh pemanggil.
func AdminRoutes(admin fiber.Router, db *gorm.DB) {
	departmentCtrl := departmentController.NewDepartmentController(db)
	departments := admin.Group("/departments")
	departments.Get("/", departmentCtrl.List)
	departments.Post("/", departmentCtrl.Create)
	departments.Put("/:id", departmentCtrl.Update)
	departments.Delete("/:id", departmentCtrl.Delete)

	semesterCtrl := semesterController.NewSemesterController(db)
	semesters := admin.Group("/semesters")
	semesters.Get("/", semesterCtrl.List)
	semesters.Post("/", semesterCtrl.Create)
	semesters.Put("/:id", semesterCtrl.Update)
	semesters.Delete("/:id", semesterCtrl.Delete)

	courseCtrl := courseController.NewCourseController(db)
	courses := admin.Group("/courses")
	courses.Get("/", courseCtrl.List)
	courses.Get("/:id", courseCtrl.GetByID)
	courses.Post("/", courseCtrl.Create)
	courses.Put("/:id", courseCtrl.Update)
	courses.Delete("/:id", courseCtrl.Delete)

	enrollmentCtrl := enrollmentController.NewEnrollmentController(db)
	enrollments := admin.Group("/enrollments")
	enrollments.Get("/", enrollmentCtrl.List)
	enrollments.Post("/", enrollmentCtrl.Create)
	enrollments.Delete("/:id", enrollmentCtrl.Delete)

	profileCtrl := profileController.NewProfileController(db)
	users := admin.Group("/users")
	users.Get("/", profileCtrl.ListUsers)
	users.Put("/:id/role", profileCtrl.ChangeRole)

	reportCtrl := reportController.NewReportController(db)
	reports := admin.Group("/reports")
	reports.Get("/students", reportCtrl.Students)
	reports.Get("/courses", reportCtrl.Courses)
	reports.Get("/enrollments", reportCtrl.Enrollments)

	dashboardCtrl := homeController.NewDashboardController(db)
	admin.Get("/dashboard", dashboardCtrl.AdminStats)
}
