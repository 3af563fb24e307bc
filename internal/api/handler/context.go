package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gms2/gms-api/internal/core/domain"
)

// ctxUserID extracts the caller id injected by the Auth middleware. An empty
// id means the middleware did not run or the token carried no subject.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
