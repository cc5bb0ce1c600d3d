package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/metrics"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

type postService struct {
	posts ports.PostRepository
	users *UserLookup
	log   zerolog.Logger
	now   func() time.Time
}

// NewPostService returns a PostService implementation.
func NewPostService(posts ports.PostRepository, users *UserLookup, log zerolog.Logger) ports.PostService {
	return &postService{posts: posts, users: users, log: log, now: time.Now}
}

// CreatePost stores a post with an empty forbidden list, stamped with the
// current local time at second precision.
func (s *postService) CreatePost(ctx context.Context, in ports.CreatePostInput) (string, error) {
	if in.UserID == "" {
		return "", fmt.Errorf("%w: user is required", domain.ErrValidation)
	}
	if in.Title == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	post := &domain.Post{
		UserID:       in.UserID,
		Title:        in.Title,
		Text:         in.Text,
		Tags:         coerce.ToList(in.Tags),
		PostDate:     s.now().Truncate(time.Second),
		ForbiddenFor: []string{},
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Str("post_id", id).Str("user_id", in.UserID).Msg("post created")
	return id, nil
}

func (s *postService) ForbidUsers(ctx context.Context, in ports.ForbidUsersInput) (int, error) {
	if in.PostID == "" {
		return 0, fmt.Errorf("%w: post_id is required", domain.ErrValidation)
	}

	ids := coerce.ToList(in.Users)
	if len(ids) == 0 {
		return 0, nil
	}

	if err := s.posts.AppendForbidden(ctx, in.PostID, ids); err != nil {
		return 0, fmt.Errorf("forbid users: %w", err)
	}

	metrics.UsersForbiddenTotal.Add(float64(len(ids)))
	s.log.Info().Str("post_id", in.PostID).Strs("users", ids).Msg("users forbidden")
	return len(ids), nil
}

// GetPost returns the post with its owner's username, which is empty when the
// owner cannot be found.
func (s *postService) GetPost(ctx context.Context, id string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	owner, err := s.users.GetUserByID(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	v := postView(post, owner)
	if v.Username == nil {
		empty := ""
		v.Username = &empty
	}
	return &v, nil
}

func (s *postService) GetPostsByUser(ctx context.Context, userID string, page ports.PageInput) ([]ports.PostView, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrValidation)
	}
	return s.find(ctx, ports.PostFilter{UserID: userID}, page)
}

// GetPosts searches all posts. Date bounds that do not parse are dropped
// rather than failing the request.
func (s *postService) GetPosts(ctx context.Context, in ports.ListPostsInput) ([]ports.PostView, error) {
	filter := ports.PostFilter{
		Tags:    coerce.ToList(in.Tags),
		MinDate: coerce.ToDate(in.MinDate),
		MaxDate: coerce.ToDate(in.MaxDate),
		Title:   in.Title,
	}
	return s.find(ctx, filter, in.Page)
}

func (s *postService) find(ctx context.Context, filter ports.PostFilter, in ports.PageInput) ([]ports.PostView, error) {
	page, ok, err := toPage(in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []ports.PostView{}, nil
	}

	views, err := queryAndJoin(ctx, s.users,
		func(ctx context.Context) ([]*domain.Post, error) {
			return s.posts.Find(ctx, filter, page)
		},
		func(p *domain.Post) string { return p.UserID },
		func(p *domain.Post, u *domain.User) ports.PostView { return postView(p, u) },
	)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	return views, nil
}

func postView(p *domain.Post, owner *domain.User) ports.PostView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	forbidden := p.ForbiddenFor
	if forbidden == nil {
		forbidden = []string{}
	}
	return ports.PostView{
		ID:           p.ID,
		Title:        p.Title,
		Text:         p.Text,
		Tags:         tags,
		PostDate:     p.PostDate,
		ForbiddenFor: forbidden,
		Username:     usernameOf(owner),
	}
}
