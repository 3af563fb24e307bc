package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

// UserHandler serves the user directory endpoints under /api/user.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/user/list.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userViewModel
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/user/list [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserViewModels(users))
}

// Create handles POST /api/user. User creation goes through account
// registration, so this endpoint always answers 501.
//
// @Summary      Create a user (not supported)
// @Tags         user
// @Security     BearerAuth
// @Failure      501  {object}  map[string]string
// @Router       /api/user [post]
func (h *UserHandler) Create(c echo.Context) error {
	return h.service.Create(c.Request().Context(), ports.CreateUserInput{})
}

// Read handles GET /api/user/:id and returns the stored user as is.
//
// @Summary      Get a user by id
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/user/{id} [get]
func (h *UserHandler) Read(c echo.Context) error {
	user, err := h.service.Read(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/user.
//
// @Summary      Update a user profile
// @Tags         user
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Editable user fields"
// @Success      200
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), toUpdateUserInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Delete handles DELETE /api/user?id=. Only administrators reach it.
//
// @Summary      Delete a user
// @Tags         user
// @Security     BearerAuth
// @Param        id   query     string  true  "User id"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// BootstrapRoles handles POST /api/user/roles.
//
// @Summary      Create the fixed roles if missing
// @Tags         user
// @Produce      json
// @Success      200  {object}  bootstrapResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/user/roles [post]
func (h *UserHandler) BootstrapRoles(c echo.Context) error {
	if err := h.service.BootstrapRoles(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bootstrapResponse{Roles: domain.FixedRoles})
}
