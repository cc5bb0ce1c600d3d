package domain

import (
	"strings"
	"time"
)

// CommentAccess is the commenting state of a (user, post) pair.
type CommentAccess string

const (
	CommentAllowed   CommentAccess = "allowed"
	CommentForbidden CommentAccess = "forbidden"
)

// Post is a forum post. ForbiddenFor only ever grows.
type Post struct {
	ID           string
	UserID       string
	Title        string
	Text         string
	Tags         []string
	PostDate     time.Time
	ForbiddenFor []string
}

// CommentAccessFor reports whether userID may comment on p. Once a user is in
// ForbiddenFor there is no way back to CommentAllowed.
//
// Identifiers are hex strings, so the comparison ignores case.
func (p *Post) CommentAccessFor(userID string) CommentAccess {
	for _, id := range p.ForbiddenFor {
		if strings.EqualFold(id, userID) {
			return CommentForbidden
		}
	}
	return CommentAllowed
}
