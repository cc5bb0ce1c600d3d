package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

const (
	testUserID = "5f1d7c3b9a1e4c0012345678"
	testPostID = "5f1d7c3b9a1e4c0087654321"
)

// ---------------------------------------------------------------------------
// Stub services
// ---------------------------------------------------------------------------

type stubPostService struct {
	lastCreate ports.CreatePostInput
	lastForbid ports.ForbidUsersInput
	lastList   ports.ListPostsInput
	lastUser   string
	lastPage   ports.PageInput
	view       *ports.PostView
	views      []ports.PostView
	err        error
}

func (s *stubPostService) CreatePost(_ context.Context, in ports.CreatePostInput) (string, error) {
	s.lastCreate = in
	return testPostID, s.err
}

func (s *stubPostService) ForbidUsers(_ context.Context, in ports.ForbidUsersInput) (int, error) {
	s.lastForbid = in
	return len(coerce.ToList(in.Users)), s.err
}

func (s *stubPostService) GetPost(_ context.Context, id string) (*ports.PostView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubPostService) GetPostsByUser(_ context.Context, userID string, page ports.PageInput) ([]ports.PostView, error) {
	s.lastUser = userID
	s.lastPage = page
	return s.views, s.err
}

func (s *stubPostService) GetPosts(_ context.Context, in ports.ListPostsInput) ([]ports.PostView, error) {
	s.lastList = in
	return s.views, s.err
}

type stubCommentService struct {
	lastCreate ports.CreateCommentInput
	lastPage   ports.PageInput
	views      []ports.CommentView
	err        error
}

func (s *stubCommentService) CreateComment(_ context.Context, in ports.CreateCommentInput) (string, error) {
	s.lastCreate = in
	return "c1", s.err
}

func (s *stubCommentService) GetComments(_ context.Context, postID string, page ports.PageInput) ([]ports.CommentView, error) {
	s.lastPage = page
	return s.views, s.err
}

// ---------------------------------------------------------------------------
// POST /post/:action
// ---------------------------------------------------------------------------

func TestPostHandler_CreatePost_TagForms(t *testing.T) {
	cases := []struct {
		name string
		tags []string
		want []string
	}{
		{"absent", nil, []string{}},
		{"single", []string{"go"}, []string{"go"}},
		{"repeated", []string{"go", "db"}, []string{"go", "db"}},
		{"json array", []string{`["go","db"]`}, []string{"go", "db"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			posts := &stubPostService{}
			h := NewPostHandler(posts, &stubCommentService{})

			form := url.Values{"user": {testUserID}, "title": {"Hello"}}
			for _, tag := range tc.tags {
				form.Add("tags", tag)
			}
			c, rec := formContext(e, "/post/create_post", "create_post", form)

			if err := h.Post(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Body.String() != testPostID {
				t.Errorf("expected raw id, got %q", rec.Body.String())
			}
			if got := coerce.ToList(posts.lastCreate.Tags); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected tags %v, got %v", tc.want, got)
			}
			if posts.lastCreate.Text != "" {
				t.Errorf("expected empty text, got %q", posts.lastCreate.Text)
			}
		})
	}
}

func TestPostHandler_CreatePost_MissingTitle(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{}, &stubCommentService{})

	c, _ := formContext(e, "/post/create_post", "create_post", url.Values{"user": {testUserID}})
	if err := h.Post(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPostHandler_CreatePost_BadOwnerID(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{}, &stubCommentService{})

	c, _ := formContext(e, "/post/create_post", "create_post", url.Values{"user": {"alice"}, "title": {"t"}})
	if err := h.Post(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPostHandler_CreateComment(t *testing.T) {
	e := newTestEcho()
	comments := &stubCommentService{}
	h := NewPostHandler(&stubPostService{}, comments)

	form := url.Values{"user": {testUserID}, "post_id": {testPostID}, "text": {"hi"}}
	c, rec := formContext(e, "/post/create_comment", "create_comment", form)
	if err := h.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "c1" {
		t.Errorf("expected c1, got %q", rec.Body.String())
	}
	want := ports.CreateCommentInput{UserID: testUserID, PostID: testPostID, Text: "hi"}
	if comments.lastCreate != want {
		t.Errorf("expected %+v, got %+v", want, comments.lastCreate)
	}
}

func TestPostHandler_CreateComment_Forbidden(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{}, &stubCommentService{err: domain.ErrCommentForbidden})

	form := url.Values{"user": {testUserID}, "post_id": {testPostID}, "text": {"hi"}}
	c, _ := formContext(e, "/post/create_comment", "create_comment", form)
	if err := h.Post(c); !errors.Is(err, domain.ErrCommentForbidden) {
		t.Fatalf("expected ErrCommentForbidden, got %v", err)
	}
}

func TestPostHandler_ForbidUser(t *testing.T) {
	e := newTestEcho()
	posts := &stubPostService{}
	h := NewPostHandler(posts, &stubCommentService{})

	form := url.Values{"post_id": {testPostID}, "users": {`["` + testUserID + `","` + testPostID + `"]`}}
	c, rec := formContext(e, "/post/forbid_user", "forbid_user", form)
	if err := h.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "2" {
		t.Errorf("expected count 2, got %q", rec.Body.String())
	}
}

func TestPostHandler_ForbidUser_NoUsers(t *testing.T) {
	e := newTestEcho()
	posts := &stubPostService{}
	h := NewPostHandler(posts, &stubCommentService{})

	c, rec := formContext(e, "/post/forbid_user", "forbid_user", url.Values{"post_id": {testPostID}})
	if err := h.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "0" {
		t.Errorf("expected 0, got %q", rec.Body.String())
	}
	if !posts.lastForbid.Users.IsNull() {
		t.Errorf("expected null users, got %v", coerce.ToList(posts.lastForbid.Users))
	}
}

func TestPostHandler_UnknownActions(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{}, &stubCommentService{})

	c, _ := formContext(e, "/post/delete", "delete", url.Values{})
	if err := h.Post(c); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("POST: expected ErrRouteNotFound, got %v", err)
	}

	// read actions are not reachable with POST and vice versa
	c, _ = formContext(e, "/post/get_post", "get_post", url.Values{})
	if err := h.Post(c); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("POST get_post: expected ErrRouteNotFound, got %v", err)
	}
	c, _ = queryContext(e, "/post/create_post", "create_post", url.Values{})
	if err := h.Get(c); !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("GET create_post: expected ErrRouteNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GET /post/:action
// ---------------------------------------------------------------------------

func TestPostHandler_GetPost(t *testing.T) {
	e := newTestEcho()
	alice := "alice"
	posts := &stubPostService{view: &ports.PostView{
		ID:           testPostID,
		Title:        "Hello",
		Tags:         []string{"intro"},
		PostDate:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		ForbiddenFor: []string{},
		Username:     &alice,
	}}
	h := NewPostHandler(posts, &stubCommentService{})

	c, rec := queryContext(e, "/post/get_post", "get_post", url.Values{"post_id": {testPostID}})
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != testPostID || resp["username"] != "alice" || resp["title"] != "Hello" {
		t.Errorf("unexpected payload: %v", resp)
	}
	if resp["post_date"] != "2024-01-02T03:04:05Z" {
		t.Errorf("expected ISO-8601 date, got %v", resp["post_date"])
	}
	if _, ok := resp["user_id"]; ok {
		t.Errorf("user_id must not be exposed: %v", resp)
	}
}

func TestPostHandler_GetPost_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(&stubPostService{err: domain.ErrPostNotFound}, &stubCommentService{})

	c, _ := queryContext(e, "/post/get_post", "get_post", url.Values{"post_id": {testPostID}})
	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_GetComments_Defaults(t *testing.T) {
	e := newTestEcho()
	comments := &stubCommentService{views: []ports.CommentView{{ID: "c1", Text: "hi"}}}
	h := NewPostHandler(&stubPostService{}, comments)

	c, rec := queryContext(e, "/post/get_comments", "get_comments", url.Values{"post_id": {testPostID}})
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if comments.lastPage != ports.DefaultPage {
		t.Errorf("expected default page, got %+v", comments.lastPage)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["_id"] != "c1" {
		t.Errorf("unexpected payload: %v", resp)
	}
	if _, ok := resp[0]["username"]; ok {
		t.Errorf("expected username omitted for unknown author: %v", resp[0])
	}
}

func TestPostHandler_GetComments_Paging(t *testing.T) {
	e := newTestEcho()
	comments := &stubCommentService{}
	h := NewPostHandler(&stubPostService{}, comments)

	q := url.Values{"post_id": {testPostID}, "sorting": {"1"}, "skip": {"20"}, "limit": {"5"}}
	c, _ := queryContext(e, "/post/get_comments", "get_comments", q)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.PageInput{Sorting: 1, Skip: 20, Limit: 5}
	if comments.lastPage != want {
		t.Errorf("expected %+v, got %+v", want, comments.lastPage)
	}
}

func TestPostHandler_GetComments_SortingForms(t *testing.T) {
	for raw, want := range map[string]int{
		"1":    1,
		"1.0":  1,
		`"-1"`: -1,
		" 0 ":  0,
	} {
		e := newTestEcho()
		comments := &stubCommentService{}
		h := NewPostHandler(&stubPostService{}, comments)

		q := url.Values{"post_id": {testPostID}, "sorting": {raw}}
		c, _ := queryContext(e, "/post/get_comments", "get_comments", q)
		if err := h.Get(c); err != nil {
			t.Fatalf("%q: handler error: %v", raw, err)
		}
		if comments.lastPage.Sorting != want {
			t.Errorf("%q: expected sorting %d, got %d", raw, want, comments.lastPage.Sorting)
		}
	}
}

func TestPostHandler_GetComments_BadPaging(t *testing.T) {
	bad := []url.Values{
		{"sorting": {"2"}},
		{"sorting": {"0.5"}},
		{"sorting": {"up"}},
		{"skip": {"-1"}},
		{"limit": {"ten"}},
	}
	for _, q := range bad {
		e := newTestEcho()
		h := NewPostHandler(&stubPostService{}, &stubCommentService{})
		q.Set("post_id", testPostID)

		c, _ := queryContext(e, "/post/get_comments", "get_comments", q)
		if err := h.Get(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%v: expected ErrValidation, got %v", q, err)
		}
	}
}
