package dto

type SubmitUpdateRequest struct {
	ItemType     string                 `json:"item_type" validate:"required"`
	ItemID       uint                   `json:"item_id" validate:"required"`
	ProposedData map[string]interface{} `json:"proposed_data" validate:"required"`
}

type RejectUpdateRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=2000"`
}

type UpdateListQuery struct {
	Status string `query:"status"`
	PageQuery
}
