package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID          map[string]*domain.User
	seq           int
	findByIDCall  int
	findByIDsCall int
	lastIDs       []string
	createErr     error
	findErr       error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return "", domain.ErrDuplicateUsername
		}
	}
	r.seq++
	id := fmt.Sprintf("u%d", r.seq)
	r.byID[id] = &domain.User{ID: id, Username: u.Username}
	return id, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.findByIDCall++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.findByIDsCall++
	r.lastIDs = ids
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubPostRepo struct {
	byID      map[string]*domain.Post
	order     []string
	seq       int
	lastPage  ports.Page
	findCalls int
	appendErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (string, error) {
	r.seq++
	id := fmt.Sprintf("p%d", r.seq)
	clone := *p
	clone.ID = id
	r.byID[id] = &clone
	r.order = append(r.order, id)
	return id, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) AppendForbidden(_ context.Context, postID string, userIDs []string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if p, ok := r.byID[postID]; ok {
		p.ForbiddenFor = append(p.ForbiddenFor, userIDs...)
	}
	return nil
}

// Find applies the same filters the real Mongo repo would use.
func (r *stubPostRepo) Find(_ context.Context, f ports.PostFilter, page ports.Page) ([]*domain.Post, error) {
	r.findCalls++
	r.lastPage = page

	var matched []*domain.Post
	for _, id := range r.order {
		p := r.byID[id]
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if len(f.Tags) > 0 && !anyTag(p.Tags, f.Tags) {
			continue
		}
		if f.MinDate != nil && p.PostDate.Before(*f.MinDate) {
			continue
		}
		if f.MaxDate != nil && p.PostDate.After(*f.MaxDate) {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Title)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}

	switch page.Sort {
	case ports.SortAscending:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].PostDate.Before(matched[j].PostDate) })
	case ports.SortDescending:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].PostDate.After(matched[j].PostDate) })
	}
	return window(matched, page), nil
}

type stubCommentRepo struct {
	items     []*domain.Comment
	seq       int
	createErr error
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("c%d", r.seq)
	r.items = append(r.items, &clone)
	return clone.ID, nil
}

func (r *stubCommentRepo) Find(_ context.Context, f ports.CommentFilter, page ports.Page) ([]*domain.Comment, error) {
	var matched []*domain.Comment
	for _, c := range r.items {
		if c.PostID == f.PostID {
			clone := *c
			matched = append(matched, &clone)
		}
	}
	if page.Sort == ports.SortDescending {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return window(matched, page), nil
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func window[T any](items []T, page ports.Page) []T {
	start := min(int(page.Skip), len(items))
	end := len(items)
	if page.Limit > 0 {
		end = min(start+int(page.Limit), len(items))
	}
	return items[start:end]
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
