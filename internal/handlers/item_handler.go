package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"listinghub/internal/catalog"
	"listinghub/internal/dto"
	"listinghub/internal/services"
)

type ItemHandler struct {
	itemService   *services.ItemService
	ratingService *services.RatingService
	db            *gorm.DB
}

func NewItemHandler(itemService *services.ItemService, ratingService *services.RatingService, db *gorm.DB) *ItemHandler {
	return &ItemHandler{itemService: itemService, ratingService: ratingService, db: db}
}

// Categories lists every registered category with its schema field names.
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	cats := catalog.All()
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		fields := make([]string, 0, len(cat.Fields))
		for _, f := range cat.Fields {
			fields = append(fields, f.Name)
		}
		out = append(out, dto.CategoryResponse{
			Slug:   cat.Slug,
			Name:   cat.Name,
			Fields: fields,
		})
	}
	return c.JSON(fiber.Map{"categories": out})
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ListItemsQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	items, total, err := h.itemService.List(c.Params("slug"), &q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(paged(items, total, q.Page, q.PerPage))
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, attachments, err := h.itemService.GetBySlug(c.Params("slug"), c.Params("itemSlug"))
	if err != nil {
		return fail(c, err)
	}

	summary, err := h.ratingService.Summary(c.Params("slug"), item.ID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"item":    item,
		"images":  attachments,
		"ratings": summary,
	})
}

func (h *ItemHandler) Search(c *fiber.Ctx) error {
	results, err := h.itemService.Search(c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	req, images, perr := parseItemPayload(c)
	if perr != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return fail(c, err)
	}

	item, cat, err := h.itemService.Create(c.Context(), user, req, images)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"category": cat.Slug,
		"item":     item,
	})
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	if err := h.itemService.Delete(user, c.Params("category"), uint(itemID)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Item deleted successfully"})
}

func (h *ItemHandler) Submissions(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	items, err := h.itemService.Submissions(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"submissions": items})
}

// ModerationList is the admin queue across every category table.
func (h *ItemHandler) ModerationList(c *fiber.Ctx) error {
	var q dto.ModerationListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	items, err := h.itemService.ListForModeration(q.Status, q.Category)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *ItemHandler) Approve(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	item, err := h.itemService.Approve(user, c.Params("category"), uint(itemID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item approved successfully", "item": item})
}

func (h *ItemHandler) Reject(c *fiber.Ctx) error {
	user, err := currentUser(c, h.db)
	if err != nil {
		return unauthorized(c)
	}

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	item, err := h.itemService.Reject(user, c.Params("category"), uint(itemID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item rejected", "item": item})
}

// parseItemPayload accepts either a JSON body or a multipart form. In the
// form case every non-file value becomes a schema field (form values are
// strings; the catalog coercion layer types them) and files under "images"
// become the upload set.
func parseItemPayload(c *fiber.Ctx) (*dto.CreateItemRequest, []*multipart.FileHeader, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		req := &dto.CreateItemRequest{Fields: map[string]interface{}{}}
		for key, values := range form.Value {
			if len(values) == 0 {
				continue
			}
			if key == "category" {
				req.Category = values[0]
				continue
			}
			if len(values) == 1 {
				req.Fields[key] = values[0]
			} else {
				req.Fields[key] = values
			}
		}
		return req, form.File["images"], nil
	}

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}
