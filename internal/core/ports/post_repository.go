package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/forum-api/internal/core/domain"
)

// SortDirection orders results by their date field. SortNone keeps the
// store's natural order.
type SortDirection int

const (
	SortDescending SortDirection = -1
	SortNone       SortDirection = 0
	SortAscending  SortDirection = 1
)

// Page selects a window of a sorted result set.
type Page struct {
	Sort  SortDirection
	Skip  int64
	Limit int64
}

// PostFilter narrows a post search. Zero fields are not applied.
type PostFilter struct {
	UserID  string
	Tags    []string
	MinDate *time.Time
	MaxDate *time.Time
	// Title matches as a case-insensitive substring.
	Title string
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (string, error)
	// FindByID returns domain.ErrPostNotFound when nothing matches.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// AppendForbidden pushes every id onto the post's forbidden list, keeping
	// duplicates. Updating a missing post is not an error.
	AppendForbidden(ctx context.Context, postID string, userIDs []string) error
	Find(ctx context.Context, filter PostFilter, page Page) ([]*domain.Post, error)
}
