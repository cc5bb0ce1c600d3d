package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/pkg/coerce"
)

// --- Request types ---
//
// Fields are read from the query string and from urlencoded or multipart
// bodies alike.

type createUserRequest struct {
	Username string `form:"username" validate:"required,alphanum"`
}

type createPostRequest struct {
	User  string   `form:"user" validate:"required,hexadecimal,len=24"`
	Title string   `form:"title" validate:"required"`
	Text  string   `form:"text"`
	Tags  []string `form:"tags"`
}

type createCommentRequest struct {
	User   string `form:"user" validate:"required,hexadecimal,len=24"`
	PostID string `form:"post_id" validate:"required,hexadecimal,len=24"`
	Text   string `form:"text" validate:"required"`
}

type forbidUserRequest struct {
	PostID string   `form:"post_id" validate:"required,hexadecimal,len=24"`
	Users  []string `form:"users"`
}

type getPostRequest struct {
	PostID string `form:"post_id" validate:"required,hexadecimal,len=24"`
}

type pageRequest struct {
	Sorting int `form:"sorting" validate:"oneof=-1 0 1"`
	Skip    int `form:"skip" validate:"min=0"`
	Limit   int `form:"limit" validate:"min=0"`
}

type getCommentsRequest struct {
	PostID string `form:"post_id" validate:"required,hexadecimal,len=24"`
	pageRequest
}

type postsByUserRequest struct {
	User string `form:"user" validate:"required,hexadecimal,len=24"`
	pageRequest
}

type searchPostsRequest struct {
	Tags    []string `form:"tags"`
	MinDate string   `form:"min_date"`
	MaxDate string   `form:"max_date"`
	Title   string   `form:"title"`
	pageRequest
}

func defaultPage() pageRequest {
	return pageRequest{
		Sorting: ports.DefaultPage.Sorting,
		Skip:    ports.DefaultPage.Skip,
		Limit:   ports.DefaultPage.Limit,
	}
}

// bindPage reads pagination; sizeParam is "limit" for comments and "length"
// for post listings.
func bindPage(b *echo.ValueBinder, p *pageRequest, sizeParam string) *echo.ValueBinder {
	return b.CustomFunc("sorting", sortingArg(&p.Sorting)).
		Int("skip", &p.Skip).
		Int(sizeParam, &p.Limit)
}

// sortingArg accepts sorting as a plain or JSON-encoded number ("1", "1.0",
// "\"-1\""). The allowed values are checked by the validator.
func sortingArg(dest *int) func(values []string) []error {
	return func(values []string) []error {
		n, ok := coerce.ToInt(coerce.ParseArgs(values[:1]))
		if !ok {
			return []error{fmt.Errorf("sorting must be one of -1, 0, 1, got %q", values[0])}
		}
		*dest = n
		return nil
	}
}

// check turns binding and validation failures into domain.ErrValidation.
func check(c echo.Context, b *echo.ValueBinder, req any) error {
	if b != nil {
		if err := b.BindError(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func (p pageRequest) toInput() ports.PageInput {
	return ports.PageInput{Sorting: p.Sorting, Skip: p.Skip, Limit: p.Limit}
}
