package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nivasa/backend/internal/config"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/tenant"
	"gorm.io/gorm"
)

// AdminRequired gates admin operations. It accepts, in order:
// 1. the X-Admin-Token operator override from config,
// 2. an admin role claim in the verified session token,
// 3. an admin role on the user row (covers tokens issued before a
//    demotion or promotion).
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		claims, err := tenant.GetClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "Unauthorized",
			})
		}

		if claims.Role == models.RoleAdmin {
			return c.Next()
		}

		var user models.User
		err = db.Scopes(tenant.ForApartment(claims.ApartmentCode)).
			Where("phone_number = ?", claims.Phone).First(&user).Error
		if err == nil && user.Role == models.RoleAdmin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Admin access required",
		})
	}
}
