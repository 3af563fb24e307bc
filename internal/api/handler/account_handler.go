package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gms2/gms-api/internal/core/domain"
	"github.com/gms2/gms-api/internal/core/ports"
)

// AccountHandler serves /api/account: registration, login and the caller's
// own profile.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register creates a Student account and answers with its id.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      plain
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {string}  string  "user id"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		UserName:     req.UserName,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, user.ID)
}

// Login authenticates by username or email and answers with a bearer token.
//
// @Summary      Login
// @Tags         account
// @Accept       json
// @Produce      plain
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {string}  string  "JWT"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.service.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, token)
}

// Details returns the authenticated caller's profile.
//
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userViewModel
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/account/details [get]
func (h *AccountHandler) Details(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Details(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserViewModel(user))
}
