package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

// PostHandler serves /post/:action.
type PostHandler struct {
	posts    ports.PostService
	comments ports.CommentService
}

func NewPostHandler(posts ports.PostService, comments ports.CommentService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

// Post dispatches POST /post/:action.
func (h *PostHandler) Post(c echo.Context) error {
	switch postAction(c.Param("action")) {
	case actionCreatePost:
		return h.CreatePost(c)
	case actionCreateComment:
		return h.CreateComment(c)
	case actionForbidUser:
		return h.ForbidUser(c)
	default:
		return domain.ErrRouteNotFound
	}
}

// Get dispatches GET /post/:action.
func (h *PostHandler) Get(c echo.Context) error {
	switch postAction(c.Param("action")) {
	case actionGetPost:
		return h.GetPost(c)
	case actionGetComments:
		return h.GetComments(c)
	default:
		return domain.ErrRouteNotFound
	}
}

// CreatePost handles POST /post/create_post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        user   formData  string    true   "Owner id"
// @Param        title  formData  string    true   "Title"
// @Param        text   formData  string    false  "Body"
// @Param        tags   formData  []string  false  "Tags, repeated or as a JSON array"
// @Success      200    {string}  string    "new post id"
// @Failure      400    {object}  map[string]string
// @Router       /post/create_post [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	b := echo.FormFieldBinder(c).
		String("user", &req.User).
		String("title", &req.Title).
		String("text", &req.Text).
		Strings("tags", &req.Tags)
	if err := check(c, b, &req); err != nil {
		return err
	}

	id, err := h.posts.CreatePost(c.Request().Context(), toCreatePostInput(req))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, id)
}

// CreateComment handles POST /post/create_comment.
//
// @Summary      Comment on a post
// @Description  Authors on the post's forbidden list get 503.
// @Tags         comments
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        user     formData  string  true  "Author id"
// @Param        post_id  formData  string  true  "Post id"
// @Param        text     formData  string  true  "Comment text"
// @Success      200      {string}  string  "new comment id"
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /post/create_comment [post]
func (h *PostHandler) CreateComment(c echo.Context) error {
	var req createCommentRequest
	b := echo.FormFieldBinder(c).
		String("user", &req.User).
		String("post_id", &req.PostID).
		String("text", &req.Text)
	if err := check(c, b, &req); err != nil {
		return err
	}

	id, err := h.comments.CreateComment(c.Request().Context(), ports.CreateCommentInput{
		UserID: req.User,
		PostID: req.PostID,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, id)
}

// ForbidUser handles POST /post/forbid_user.
//
// @Summary      Forbid users from commenting on a post
// @Tags         posts
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        post_id  formData  string    true   "Post id"
// @Param        users    formData  []string  false  "User ids, repeated or as a JSON array"
// @Success      200      {string}  string    "number of ids supplied"
// @Failure      400      {object}  map[string]string
// @Router       /post/forbid_user [post]
func (h *PostHandler) ForbidUser(c echo.Context) error {
	var req forbidUserRequest
	b := echo.FormFieldBinder(c).
		String("post_id", &req.PostID).
		Strings("users", &req.Users)
	if err := check(c, b, &req); err != nil {
		return err
	}

	n, err := h.posts.ForbidUsers(c.Request().Context(), ports.ForbidUsersInput{
		PostID: req.PostID,
		Users:  coerce.ParseArgs(req.Users),
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, strconv.Itoa(n))
}

// GetPost handles GET /post/get_post.
//
// @Summary      Fetch a post
// @Tags         posts
// @Produce      json
// @Param        post_id  query     string  true  "Post id"
// @Success      200      {object}  postResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /post/get_post [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	var req getPostRequest
	b := echo.FormFieldBinder(c).String("post_id", &req.PostID)
	if err := check(c, b, &req); err != nil {
		return err
	}

	view, err := h.posts.GetPost(c.Request().Context(), req.PostID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*view))
}

// GetComments handles GET /post/get_comments.
//
// @Summary      List the comments of a post
// @Tags         comments
// @Produce      json
// @Param        post_id  query     string  true   "Post id"
// @Param        sorting  query     int     false  "-1 newest first, 1 oldest first, 0 natural"  default(-1)
// @Param        skip     query     int     false  "Offset"                                      default(0)
// @Param        limit    query     int     false  "Page size"                                   default(10)
// @Success      200      {array}   commentResponse
// @Failure      400      {object}  map[string]string
// @Router       /post/get_comments [get]
func (h *PostHandler) GetComments(c echo.Context) error {
	req := getCommentsRequest{pageRequest: defaultPage()}
	b := bindPage(echo.FormFieldBinder(c).String("post_id", &req.PostID), &req.pageRequest, "limit")
	if err := check(c, b, &req); err != nil {
		return err
	}

	views, err := h.comments.GetComments(c.Request().Context(), req.PostID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponses(views))
}
