package middleware

import (
	"strings"

	"listinghub/internal/config"
	"listinghub/internal/dto"
	"listinghub/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireModerator loads the authenticated user and rejects the request
// unless the moderator-or-admin predicate holds. The DB row is the source
// of truth; the JWT flags are display hints only.
func RequireModerator(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := loadCurrentUser(c, db)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.CanModerate() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Moderator access required",
			})
		}
		c.Locals("current_user", user)
		return c.Next()
	}
}

// RequireAdmin rejects the request unless the user has the admin flag or
// appears in the config-based admin email list.
func RequireAdmin(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		user, err := loadCurrentUser(c, db)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsAdmin && !contains(adminEmails, user.Email) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		c.Locals("current_user", user)
		return c.Next()
	}
}

// CurrentUser returns the user cached by a role middleware, if any.
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("current_user").(*models.User); ok {
		return u
	}
	return nil
}

func loadCurrentUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	userID, err := UserID(c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
