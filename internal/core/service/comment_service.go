package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/metrics"
)

// RateLimiter throttles comment authors (Redis). A nil limiter allows everything.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type commentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    *UserLookup
	limiter  RateLimiter
	log      zerolog.Logger
	now      func() time.Time
}

// NewCommentService returns a CommentService implementation. limiter may be nil.
func NewCommentService(
	comments ports.CommentRepository,
	posts ports.PostRepository,
	users *UserLookup,
	limiter RateLimiter,
	log zerolog.Logger,
) ports.CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
		users:    users,
		limiter:  limiter,
		log:      log,
		now:      time.Now,
	}
}

// CreateComment reads the post, checks the author against its forbidden list
// and inserts the comment. The read and the insert are separate store calls,
// so a forbid landing between them does not stop this comment.
func (s *commentService) CreateComment(ctx context.Context, in ports.CreateCommentInput) (string, error) {
	switch {
	case in.UserID == "":
		return "", fmt.Errorf("%w: user is required", domain.ErrValidation)
	case in.PostID == "":
		return "", fmt.Errorf("%w: post_id is required", domain.ErrValidation)
	case in.Text == "":
		return "", fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	post, err := s.posts.FindByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			metrics.CommentsRejectedTotal.WithLabelValues("post_not_found").Inc()
		}
		return "", fmt.Errorf("create comment: %w", err)
	}

	if post.CommentAccessFor(in.UserID) == domain.CommentForbidden {
		metrics.CommentsRejectedTotal.WithLabelValues("forbidden").Inc()
		s.log.Warn().Str("post_id", in.PostID).Str("user_id", in.UserID).Msg("comment rejected")
		return "", domain.ErrCommentForbidden
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, in.UserID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("rate limit check failed, allowing comment")
		case !allowed:
			metrics.CommentsRejectedTotal.WithLabelValues("rate_limited").Inc()
			return "", domain.ErrRateLimited
		}
	}

	comment := &domain.Comment{
		UserID:      in.UserID,
		PostID:      in.PostID,
		Text:        in.Text,
		CommentDate: s.now().Truncate(time.Second),
	}
	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return "", fmt.Errorf("create comment: %w", err)
	}

	metrics.CommentsCreatedTotal.Inc()
	s.log.Info().Str("comment_id", id).Str("post_id", in.PostID).Msg("comment created")
	return id, nil
}

func (s *commentService) GetComments(ctx context.Context, postID string, in ports.PageInput) ([]ports.CommentView, error) {
	if postID == "" {
		return nil, fmt.Errorf("%w: post_id is required", domain.ErrValidation)
	}

	page, ok, err := toPage(in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []ports.CommentView{}, nil
	}

	filter := ports.CommentFilter{PostID: postID}
	views, err := queryAndJoin(ctx, s.users,
		func(ctx context.Context) ([]*domain.Comment, error) {
			return s.comments.Find(ctx, filter, page)
		},
		func(c *domain.Comment) string { return c.UserID },
		func(c *domain.Comment, u *domain.User) ports.CommentView {
			return ports.CommentView{
				ID:          c.ID,
				Text:        c.Text,
				CommentDate: c.CommentDate,
				Username:    usernameOf(u),
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return views, nil
}
