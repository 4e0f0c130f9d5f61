package dto

// CreateItemRequest wraps a category slug plus the schema-validated field
// payload. Fields is deliberately loose here; the category schema decides
// what is accepted.
type CreateItemRequest struct {
	Category string                 `json:"category" validate:"required"`
	Fields   map[string]interface{} `json:"fields" validate:"required"`
}

type ListItemsQuery struct {
	Search    string `query:"search"`
	Division  string `query:"division"`
	District  string `query:"district"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
	PageQuery
}

type ModerationListQuery struct {
	Status   string `query:"status"`
	Category string `query:"category"`
}

type CategoryResponse struct {
	Slug   string   `json:"slug"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}
