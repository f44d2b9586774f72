package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/ports"
)

type CustomerHandler struct {
	portal ports.CustomerPortalService
}

func NewCustomerHandler(portal ports.CustomerPortalService) *CustomerHandler {
	return &CustomerHandler{portal: portal}
}

// Dashboard renders the customer portal landing page, scoped to the
// logged-in customer's own policies and reminders.
//
// @Summary      Customer dashboard
// @Tags         customer
// @Produce      json
// @Success      200  {object}  ports.CustomerDashboard
// @Failure      401  {object}  echo.HTTPError
// @Router       /customer/dashboard [get]
func (h *CustomerHandler) Dashboard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	dashboard, err := h.portal.Dashboard(backendCtx(c), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}
