package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
)

// UserHandler serves /user/:action.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Post dispatches POST /user/:action.
func (h *UserHandler) Post(c echo.Context) error {
	switch userAction(c.Param("action")) {
	case actionCreateUser:
		return h.Create(c)
	default:
		return domain.ErrRouteNotFound
	}
}

// Create handles POST /user/create.
//
// @Summary      Create a user
// @Tags         users
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Latin letters and digits only"
// @Success      200       {string}  string  "new user id"
// @Failure      400       {object}  map[string]string
// @Router       /user/create [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	b := echo.FormFieldBinder(c).String("username", &req.Username)
	if err := check(c, b, &req); err != nil {
		return err
	}

	id, err := h.service.CreateUser(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, id)
}
