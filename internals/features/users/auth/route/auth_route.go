// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "kampusku_backend/internals/features/users/auth/controller"
	rateLimiter "kampusku_backend/internals/middlewares"
	authMiddleware "kampusku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// rate limiter global
	app.Use(rateLimiter.GlobalRateLimiter())

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// 🔒 Butuh token valid
	baseAuth.Post("/logout", authMiddleware.AuthMiddleware(db), authController.Logout)
	baseAuth.Get("/me", authMiddleware.AuthMiddleware(db), authController.Me)
}
