package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

// PageInput is the raw pagination a client asked for.
type PageInput struct {
	Sorting int
	Skip    int
	Limit   int
}

// DefaultPage is applied by the transport layer when arguments are absent.
var DefaultPage = PageInput{Sorting: int(SortDescending), Skip: 0, Limit: 10}

// CreatePostInput carries the fields of a new post. Tags may be a single
// value or a list.
type CreatePostInput struct {
	UserID string
	Title  string
	Text   string
	Tags   coerce.Value
}

type ForbidUsersInput struct {
	PostID string
	Users  coerce.Value
}

// ListPostsInput is a post search. Dates are parsed leniently; bounds that
// cannot be read are ignored.
type ListPostsInput struct {
	Tags    coerce.Value
	MinDate coerce.Value
	MaxDate coerce.Value
	Title   string
	Page    PageInput
}

// PostView is a post as shown to clients: the owner id is replaced by the
// owner's username.
type PostView struct {
	ID           string
	Title        string
	Text         string
	Tags         []string
	PostDate     time.Time
	ForbiddenFor []string
	// Username is nil when the owner no longer exists.
	Username *string
}

type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (string, error)
	// ForbidUsers returns the number of ids supplied, not the number added.
	ForbidUsers(ctx context.Context, in ForbidUsersInput) (int, error)
	GetPost(ctx context.Context, id string) (*PostView, error)
	GetPostsByUser(ctx context.Context, userID string, page PageInput) ([]PostView, error)
	GetPosts(ctx context.Context, in ListPostsInput) ([]PostView, error)
}
