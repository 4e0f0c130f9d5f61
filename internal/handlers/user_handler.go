package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	db          *gorm.DB
}

func NewUserHandler(userService *services.UserService, db *gorm.DB) *UserHandler {
	return &UserHandler{userService: userService, db: db}
}

// Activity is the authenticated user's own dashboard.
func (h *UserHandler) Activity(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	activity, err := h.userService.Activity(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(activity)
}

// List is the admin user-management listing.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	users, total, err := h.userService.List(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(users, total, q.Page, q.PerPage))
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	actor, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateRole(actor, uint(userID), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User role updated", "user": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	if err := h.userService.Delete(actor, uint(userID)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
