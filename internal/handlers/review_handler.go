package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
	db            *gorm.DB
}

func NewReviewHandler(reviewService *services.ReviewService, db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, db: db}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, err)
	}

	review, err := h.reviewService.Create(user, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, err)
	}

	review, err := h.reviewService.Update(user, uint(reviewID), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(review)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	if err := h.reviewService.Delete(user, uint(reviewID)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Review deleted successfully"})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	var q dto.ReviewListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := dto.Validate(&q); err != nil {
		return fail(c, err)
	}

	reviews, total, err := h.reviewService.ListForItem(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(reviews, total, q.Page, q.PerPage))
}

func (h *ReviewHandler) MyReviews(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviews, err := h.reviewService.ListByUser(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

func (h *ReviewHandler) Report(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	report, err := h.reviewService.Report(user, uint(reviewID))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReviewHandler) ModerationList(c *fiber.Ctx) error {
	var page dto.PageQuery
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	reviews, total, err := h.reviewService.ListForModeration(c.Query("status"), &page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(reviews, total, page.Page, page.PerPage))
}

func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	review, err := h.reviewService.ApproveReview(user, uint(reviewID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review approved", "review": review})
}

func (h *ReviewHandler) Reject(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reviewID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	review, err := h.reviewService.RejectReview(user, uint(reviewID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review rejected", "review": review})
}

func (h *ReviewHandler) Reports(c *fiber.Ctx) error {
	var page dto.PageQuery
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	reports, total, err := h.reviewService.ListReports(c.Query("status"), &page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(reports, total, page.Page, page.PerPage))
}

func (h *ReviewHandler) ResolveReport(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	reportID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid report id")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, err)
	}

	report, err := h.reviewService.ResolveReport(user, uint(reportID), req.Action)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report resolved", "report": report})
}
