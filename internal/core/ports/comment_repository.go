package ports

import (
	"context"

	"github.com/sirpyerre/forum-api/internal/core/domain"
)

type CommentFilter struct {
	PostID string
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (string, error)
	Find(ctx context.Context, filter CommentFilter, page Page) ([]*domain.Comment, error)
}
