package dto

type UpdateRoleRequest struct {
	IsModerator *bool `json:"is_moderator"`
	IsAdmin     *bool `json:"is_admin"`
	IsActive    *bool `json:"is_active"`
}

type UserListQuery struct {
	Search string `query:"search"`
	PageQuery
}

type UserStatsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	TotalModerators int64 `json:"total_moderators"`
	TotalAdmins     int64 `json:"total_admins"`
	ActiveUsers     int64 `json:"active_users"`
}
