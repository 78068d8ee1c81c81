package middleware

import (
	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired lets Admin and SuperAdmin profiles through. The role claim is
// cross-checked against the profile row so a revoked admin is locked out as
// soon as the row changes, not when the token expires.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return requireRole(db, func(role string) bool {
		return role == models.RoleAdmin || role == models.RoleSuperAdmin
	})
}

// SuperAdminRequired guards destructive operations: staff deletion, note
// deletion, admin provisioning.
func SuperAdminRequired(db *gorm.DB) fiber.Handler {
	return requireRole(db, func(role string) bool {
		return role == models.RoleSuperAdmin
	})
}

func requireRole(db *gorm.DB, allowed func(string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		act, err := actor.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var profile models.Profile
		if err := db.First(&profile, "id = ?", act.ID).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		if profile.Status != models.StatusActive || !allowed(profile.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		// Services authorize against the current row, not a stale claim.
		actor.Store(c, actor.Actor{ID: act.ID, Role: profile.Role})
		return c.Next()
	}
}
