package services

import "errors"

// Shared domain errors. Handlers map these to HTTP statuses; the message
// text is part of the observable API contract.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")

	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrRatingNotFound  = errors.New("rating not found")
	ErrRequestNotFound = errors.New("update request not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrUnknownCategory = errors.New("unknown category")

	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrAlreadyReported  = errors.New("You have already reported this review")

	ErrSelfRoleChange = errors.New("You cannot modify your own role")
	ErrSelfDelete     = errors.New("You cannot delete your own account")
	ErrAdminProtected = errors.New("You cannot delete an admin account")
)
