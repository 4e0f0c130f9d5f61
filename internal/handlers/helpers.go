package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/middleware"
	"listinghub/internal/models"
	"listinghub/internal/services"
)

// currentUser resolves the authenticated user, preferring the row cached
// by a role middleware over a fresh lookup.
func currentUser(c *fiber.Ctx, db *gorm.DB) (*models.User, error) {
	if u := middleware.CurrentUser(c); u != nil {
		return u, nil
	}
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// fail maps a service error to its HTTP status and JSON body.
func fail(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   true,
			"message": "Validation failed",
			"fields":  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrRatingNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUnknownCategory):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyReported):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrSelfRoleChange),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrAdminProtected):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// paged is the standard list envelope.
func paged(items interface{}, total int64, page, perPage int) fiber.Map {
	return fiber.Map{
		"data":     items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	}
}
