package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/service"
)

type testServer struct {
	e     *echo.Echo
	users *memUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := &memUsers{byID: map[string]*domain.User{}}
	posts := &memPosts{byID: map[string]*domain.Post{}}
	comments := &memComments{}
	lookup := service.NewUserLookup(users)
	log := zerolog.Nop()

	e, err := NewRouter(RouterConfig{
		Users:    service.NewUserService(users, log),
		Posts:    service.NewPostService(posts, lookup, log),
		Comments: service.NewCommentService(comments, posts, lookup, nil, log),
		Logger:   log,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testServer{e: e, users: users}
}

func (s *testServer) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil))
	return rec
}

func mustOK(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestRouter_ForumScenario(t *testing.T) {
	s := newTestServer(t)

	alice := mustOK(t, s.post(t, "/user/create", url.Values{"username": {"alice"}}))
	bob := mustOK(t, s.post(t, "/user/create", url.Values{"username": {"bob"}}))
	if _, err := primitive.ObjectIDFromHex(alice); err != nil {
		t.Fatalf("expected a raw id, got %q", alice)
	}

	postID := mustOK(t, s.post(t, "/post/create_post", url.Values{
		"user":  {alice},
		"title": {"Hello"},
		"tags":  {`["intro"]`},
	}))

	var post map[string]any
	if err := json.Unmarshal([]byte(mustOK(t, s.get(t, "/post/get_post", url.Values{"post_id": {postID}}))), &post); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if post["title"] != "Hello" || post["username"] != "alice" {
		t.Errorf("unexpected post: %v", post)
	}
	if tags, _ := post["tags"].([]any); len(tags) != 1 || tags[0] != "intro" {
		t.Errorf("unexpected tags: %v", post["tags"])
	}
	if _, ok := post["user_id"]; ok {
		t.Errorf("user_id must not be exposed: %v", post)
	}

	mustOK(t, s.post(t, "/post/create_comment", url.Values{"user": {bob}, "post_id": {postID}, "text": {"hi alice"}}))

	var comments []map[string]any
	if err := json.Unmarshal([]byte(mustOK(t, s.get(t, "/post/get_comments", url.Values{"post_id": {postID}}))), &comments); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(comments) != 1 || comments[0]["username"] != "bob" || comments[0]["text"] != "hi alice" {
		t.Fatalf("unexpected comments: %v", comments)
	}

	if n := mustOK(t, s.post(t, "/post/forbid_user", url.Values{"post_id": {postID}, "users": {bob}})); n != "1" {
		t.Errorf("expected 1, got %q", n)
	}

	rec := s.post(t, "/post/create_comment", url.Values{"user": {bob}, "post_id": {postID}, "text": {"again"}})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if msg := errorOf(t, rec); msg != domain.ErrCommentForbidden.Error() {
		t.Errorf("unexpected message: %q", msg)
	}

	var byUser []map[string]any
	if err := json.Unmarshal([]byte(mustOK(t, s.get(t, "/posts/by_user", url.Values{"user": {alice}}))), &byUser); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(byUser) != 1 || byUser[0]["_id"] != postID {
		t.Errorf("unexpected posts: %v", byUser)
	}
}

func TestRouter_SearchNoMatch(t *testing.T) {
	s := newTestServer(t)
	alice := mustOK(t, s.post(t, "/user/create", url.Values{"username": {"alice"}}))
	mustOK(t, s.post(t, "/post/create_post", url.Values{"user": {alice}, "title": {"Hello"}, "tags": {"intro"}}))

	body := mustOK(t, s.get(t, "/posts/posts", url.Values{"tags": {`["nomatch"]`}}))
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
	if s.users.findCalls != 0 {
		t.Errorf("expected no user lookup for an empty page, got %d", s.users.findCalls)
	}
}

func TestRouter_ErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	mustOK(t, s.post(t, "/user/create", url.Values{"username": {"alice"}}))
	missing := primitive.NewObjectID().Hex()

	cases := []struct {
		name string
		rec  *httptest.ResponseRecorder
		code int
	}{
		{"duplicate username", s.post(t, "/user/create", url.Values{"username": {"alice"}}), http.StatusBadRequest},
		{"invalid username", s.post(t, "/user/create", url.Values{"username": {"bad name"}}), http.StatusBadRequest},
		{"missing title", s.post(t, "/post/create_post", url.Values{"user": {missing}}), http.StatusBadRequest},
		{"malformed id", s.get(t, "/post/get_post", url.Values{"post_id": {"xyz"}}), http.StatusBadRequest},
		{"missing post", s.get(t, "/post/get_post", url.Values{"post_id": {missing}}), http.StatusNotFound},
		{"comment on missing post", s.post(t, "/post/create_comment", url.Values{"user": {missing}, "post_id": {missing}, "text": {"x"}}), http.StatusNotFound},
		{"unknown user action", s.post(t, "/user/delete", url.Values{}), http.StatusNotFound},
		{"unknown post action", s.get(t, "/post/everything", url.Values{}), http.StatusNotFound},
		{"unknown posts action", s.get(t, "/posts/all", url.Values{}), http.StatusNotFound},
		{"bad sorting", s.get(t, "/posts/posts", url.Values{"sorting": {"5"}}), http.StatusBadRequest},
	}

	for _, tc := range cases {
		if tc.rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.code, tc.rec.Code, tc.rec.Body.String())
		}
		if errorOf(t, tc.rec) == "" {
			t.Errorf("%s: expected an error message", tc.name)
		}
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	if rec := s.get(t, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := s.get(t, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Errorf("readiness: expected 200, got %d", rec.Code)
	}
}

func TestRouter_GraphQL(t *testing.T) {
	s := newTestServer(t)
	alice := mustOK(t, s.post(t, "/user/create", url.Values{"username": {"alice"}}))
	postID := mustOK(t, s.post(t, "/post/create_post", url.Values{"user": {alice}, "title": {"Hello"}}))

	body := `{"query":"{ post(id: \"` + postID + `\") { title username } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
