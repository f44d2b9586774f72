package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/domain"
)

type profileResponse struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Settings renders the profile settings page for whichever portal the
// session belongs to. Changes are submitted through the profile endpoint.
//
// @Summary      Profile settings
// @Tags         admin,customer
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  echo.HTTPError
// @Router       /admin/settings [get]
// @Router       /customer/settings [get]
func (h *AuthHandler) Settings(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		Name:  sess.Name,
		Email: sess.Email,
		Role:  sess.Role,
	})
}
