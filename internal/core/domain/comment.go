package domain

import "time"

// Comment is a reply to a post.
type Comment struct {
	ID          string
	UserID      string
	PostID      string
	Text        string
	CommentDate time.Time
}
