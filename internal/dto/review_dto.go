package dto

type CreateReviewRequest struct {
	ItemType string `json:"item_type" validate:"required"`
	ItemID   uint   `json:"item_id" validate:"required"`
	Comment  string `json:"comment" validate:"required,max=2000"`
	ParentID *uint  `json:"parent_id"`
}

type UpdateReviewRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

type ReviewListQuery struct {
	ItemType string `query:"item_type" validate:"required"`
	ItemID   uint   `query:"item_id" validate:"required"`
	PageQuery
}

type ResolveReportRequest struct {
	// dismiss leaves the review alone; delete removes it and marks the
	// report reviewed.
	Action string `json:"action" validate:"required,oneof=dismiss delete"`
}
