package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	service "kampusku_backend/internals/features/users/auth/service"
	profileModel "kampusku_backend/internals/features/users/profile/model"
	helper "kampusku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

// POST /api/auth/refresh-token
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

// GET /api/auth/me — profile aktif hasil resolve middleware
func (ac *AuthController) Me(c *fiber.Ctx) error {
	profile, ok := c.Locals("profile").(*profileModel.ProfileModel)
	if !ok || profile == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "ok", profile)
}
