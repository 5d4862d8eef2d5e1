// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	departmentController "kampusku_backend/internals/features/academics/departments/controller"
	semesterController "kampusku_backend/internals/features/academics/semesters/controller"
	authRoute "kampusku_backend/internals/features/users/auth/route"
	profileController "kampusku_backend/internals/features/users/profile/controller"
	authMiddleware "kampusku_backend/internals/middlewares/auth"
	routeDetails "kampusku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== SHARED (semua role) =====================
	log.Println("[INFO] Setting up SHARED group...")
	shared := app.Group("/api/me", authMiddleware.AuthMiddleware(db))
	profileCtrl := profileController.NewProfileController(db)
	shared.Get("/", profileCtrl.Me)
	shared.Put("/", profileCtrl.UpdateMe)

	// Lookup data master, read-only untuk semua user login.
	lookup := app.Group("/api/lookup", authMiddleware.AuthMiddleware(db))
	lookup.Get("/departments", departmentController.NewDepartmentController(db).List)
	lookup.Get("/semesters", semesterController.NewSemesterController(db).List)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("fitur admin"),
			constants.AdminOnly...,
		),
	)
	routeDetails.AdminRoutes(admin, db)

	// ===================== FACULTY =====================
	log.Println("[INFO] Setting up FACULTY group (Auth + RoleCheck)...")
	faculty := app.Group("/api/f",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorFaculty("fitur faculty"),
			constants.FacultyAndAbove...,
		),
	)
	routeDetails.FacultyRoutes(faculty, db)

	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up STUDENT group (Auth + RoleCheck)...")
	student := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorStudent("fitur student"),
			constants.StudentOnly...,
		),
	)
	routeDetails.StudentRoutes(student, db)
}
