package dto

type RateRequest struct {
	ItemType string `json:"item_type" validate:"required"`
	ItemID   uint   `json:"item_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

type ModeratorRateRequest struct {
	ItemType string `json:"item_type" validate:"required"`
	ItemID   uint   `json:"item_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

type RatingTargetQuery struct {
	ItemType string `query:"item_type" validate:"required"`
	ItemID   uint   `query:"item_id" validate:"required"`
}
