package ports

import (
	"context"
	"time"
)

type CreateCommentInput struct {
	UserID string
	PostID string
	Text   string
}

// CommentView is a comment as shown to clients.
type CommentView struct {
	ID          string
	Text        string
	CommentDate time.Time
	Username    *string
}

type CommentService interface {
	// CreateComment fails with domain.ErrPostNotFound or
	// domain.ErrCommentForbidden before anything is written.
	CreateComment(ctx context.Context, in CreateCommentInput) (string, error)
	GetComments(ctx context.Context, postID string, page PageInput) ([]CommentView, error)
}
