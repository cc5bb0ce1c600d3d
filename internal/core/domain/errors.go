package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidUsername   = errors.New("username must contain only latin characters and numbers")
	ErrDuplicateUsername = errors.New("username already used")
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("there is no post with this id")
	ErrCommentForbidden  = errors.New("forbidden to send comments in this post")
	ErrRouteNotFound     = errors.New("route not found")
	ErrRateLimited       = errors.New("too many comments, slow down")
)
