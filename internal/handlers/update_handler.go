package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/dto"
	"listinghub/internal/services"
)

type UpdateHandler struct {
	updateService *services.UpdateService
	db            *gorm.DB
}

func NewUpdateHandler(updateService *services.UpdateService, db *gorm.DB) *UpdateHandler {
	return &UpdateHandler{updateService: updateService, db: db}
}

func (h *UpdateHandler) Submit(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	req, images, perr := parseUpdatePayload(c)
	if perr != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, err)
	}

	result, err := h.updateService.Submit(c.Context(), user, req, images)
	if err != nil {
		return fail(c, err)
	}

	status := fiber.StatusCreated
	message := "Update request submitted for review"
	if result.AutoApproved {
		status = fiber.StatusOK
		message = "Update applied"
	}
	return c.Status(status).JSON(fiber.Map{
		"message":       message,
		"auto_approved": result.AutoApproved,
		"request":       result.Request,
		"item":          result.Item,
	})
}

// List shows the moderation queue; regular users only see their own
// requests.
func (h *UpdateHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	if !user.CanModerate() {
		requests, err := h.updateService.ListByUser(user.ID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"requests": requests})
	}

	var q dto.UpdateListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	requests, total, err := h.updateService.List(&q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(requests, total, q.Page, q.PerPage))
}

func (h *UpdateHandler) Approve(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid request id")
	}

	request, err := h.updateService.Approve(user, uint(requestID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Update request approved", "request": request})
}

func (h *UpdateHandler) Reject(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid request id")
	}

	var req dto.RejectUpdateRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.updateService.Reject(user, uint(requestID), req.AdminNotes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Update request rejected", "request": request})
}

// parseUpdatePayload accepts JSON or a multipart form whose proposed_data
// value is a JSON object, with optional "images" files.
func parseUpdatePayload(c *fiber.Ctx) (*dto.SubmitUpdateRequest, []*multipart.FileHeader, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		req := &dto.SubmitUpdateRequest{ProposedData: map[string]interface{}{}}
		if v := form.Value["item_type"]; len(v) > 0 {
			req.ItemType = v[0]
		}
		if v := form.Value["item_id"]; len(v) > 0 {
			id, err := strconv.ParseUint(v[0], 10, 64)
			if err != nil {
				return nil, nil, err
			}
			req.ItemID = uint(id)
		}
		if v := form.Value["proposed_data"]; len(v) > 0 {
			if err := json.Unmarshal([]byte(v[0]), &req.ProposedData); err != nil {
				return nil, nil, err
			}
		}
		return req, form.File["images"], nil
	}

	var req dto.SubmitUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}
