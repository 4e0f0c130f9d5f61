package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/services"
)

type RatingHandler struct {
	ratingService *services.RatingService
	db            *gorm.DB
}

func NewRatingHandler(ratingService *services.RatingService, db *gorm.DB) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, db: db}
}

func (h *RatingHandler) Rate(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, err)
	}

	rating, err := h.ratingService.Rate(user, req.ItemType, req.ItemID, req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rating)
}

// Summary is the public aggregate view for a target.
func (h *RatingHandler) Summary(c *fiber.Ctx) error {
	var q dto.RatingTargetQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := dto.Validate(&q); err != nil {
		return fail(c, err)
	}

	summary, err := h.ratingService.Summary(q.ItemType, q.ItemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}

// UserRating returns the caller's own rating for a target.
func (h *RatingHandler) UserRating(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	var q dto.RatingTargetQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := dto.Validate(&q); err != nil {
		return fail(c, err)
	}

	rating, err := h.ratingService.UserRating(user.ID, q.ItemType, q.ItemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rating)
}

func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	ratingID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid rating id")
	}

	if err := h.ratingService.Delete(user, uint(ratingID)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Rating deleted successfully"})
}

func (h *RatingHandler) MyRatings(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	ratings, err := h.ratingService.ListByUser(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ratings": ratings})
}

// SetModeratorRating records the single official rating for a target.
func (h *RatingHandler) SetModeratorRating(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ModeratorRateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, err)
	}

	rating, err := h.ratingService.SetModeratorRating(user, req.ItemType, req.ItemID, req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rating)
}
