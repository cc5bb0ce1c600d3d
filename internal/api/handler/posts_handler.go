package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// PostsHandler serves the post listings under /posts/:action.
type PostsHandler struct {
	posts ports.PostService
}

func NewPostsHandler(posts ports.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// Get dispatches GET /posts/:action.
func (h *PostsHandler) Get(c echo.Context) error {
	switch postsAction(c.Param("action")) {
	case actionPostsByUser:
		return h.ByUser(c)
	case actionPostsSearch:
		return h.Search(c)
	default:
		return domain.ErrRouteNotFound
	}
}

// ByUser handles GET /posts/by_user.
//
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        user     query     string  true   "Owner id"
// @Param        sorting  query     int     false  "-1 newest first, 1 oldest first, 0 natural"  default(-1)
// @Param        skip     query     int     false  "Offset"                                      default(0)
// @Param        length   query     int     false  "Page size"                                   default(10)
// @Success      200      {array}   postResponse
// @Failure      400      {object}  map[string]string
// @Router       /posts/by_user [get]
func (h *PostsHandler) ByUser(c echo.Context) error {
	req := postsByUserRequest{pageRequest: defaultPage()}
	b := bindPage(echo.FormFieldBinder(c).String("user", &req.User), &req.pageRequest, "length")
	if err := check(c, b, &req); err != nil {
		return err
	}

	views, err := h.posts.GetPostsByUser(c.Request().Context(), req.User, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(views))
}

// Search handles GET /posts/posts.
//
// @Summary      Search posts
// @Tags         posts
// @Produce      json
// @Param        tags      query     []string  false  "Any of these tags"
// @Param        min_date  query     string    false  "Earliest post date"
// @Param        max_date  query     string    false  "Latest post date"
// @Param        title     query     string    false  "Case-insensitive title substring"
// @Param        sorting   query     int       false  "-1 newest first, 1 oldest first, 0 natural"  default(-1)
// @Param        skip      query     int       false  "Offset"                                      default(0)
// @Param        length    query     int       false  "Page size"                                   default(10)
// @Success      200       {array}   postResponse
// @Failure      400       {object}  map[string]string
// @Router       /posts/posts [get]
func (h *PostsHandler) Search(c echo.Context) error {
	req := searchPostsRequest{pageRequest: defaultPage()}
	b := bindPage(echo.FormFieldBinder(c).
		Strings("tags", &req.Tags).
		String("min_date", &req.MinDate).
		String("max_date", &req.MaxDate).
		String("title", &req.Title), &req.pageRequest, "length")
	if err := check(c, b, &req); err != nil {
		return err
	}

	views, err := h.posts.GetPosts(c.Request().Context(), toListPostsInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(views))
}

