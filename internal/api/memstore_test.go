package api

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory repositories with Mongo-style identifiers
// ---------------------------------------------------------------------------

type memUsers struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	findCalls int
}

func (r *memUsers) Create(_ context.Context, u *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return "", domain.ErrDuplicateUsername
		}
	}
	id := primitive.NewObjectID().Hex()
	r.byID[id] = &domain.User{ID: id, Username: u.Username}
	return id, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUsers) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memPosts struct {
	mu    sync.Mutex
	byID  map[string]*domain.Post
	order []string
}

func (r *memPosts) Create(_ context.Context, p *domain.Post) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	clone.ID = primitive.NewObjectID().Hex()
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	return clone.ID, nil
}

func (r *memPosts) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	clone.ForbiddenFor = append([]string{}, p.ForbiddenFor...)
	return &clone, nil
}

func (r *memPosts) AppendForbidden(_ context.Context, postID string, userIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[postID]; ok {
		p.ForbiddenFor = append(p.ForbiddenFor, userIDs...)
	}
	return nil
}

func (r *memPosts) Find(_ context.Context, f ports.PostFilter, page ports.Page) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, id := range r.order {
		p := r.byID[id]
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if len(f.Tags) > 0 && !hasAny(p.Tags, f.Tags) {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Title)) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	if page.Sort == ports.SortDescending {
		sort.SliceStable(out, func(i, j int) bool { return out[i].PostDate.After(out[j].PostDate) })
	}
	return paginate(out, page), nil
}

type memComments struct {
	mu    sync.Mutex
	items []*domain.Comment
}

func (r *memComments) Create(_ context.Context, c *domain.Comment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	clone.ID = primitive.NewObjectID().Hex()
	r.items = append(r.items, &clone)
	return clone.ID, nil
}

func (r *memComments) Find(_ context.Context, f ports.CommentFilter, page ports.Page) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.items {
		if c.PostID == f.PostID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return paginate(out, page), nil
}

func paginate[T any](items []T, page ports.Page) []T {
	start := min(int(page.Skip), len(items))
	end := min(start+int(page.Limit), len(items))
	return items[start:end]
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
