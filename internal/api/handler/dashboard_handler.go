package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Overview renders the admin dashboard: policy counts, alert counts and the
// high-risk customer table. policyType and q narrow the table console-side.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Param        policyType  query  string  false  "Policy type filter (MOTOR, HEALTH)"
// @Param        q           query  string  false  "Customer name search"
// @Success      200  {object}  ports.AdminOverview
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	overview, err := h.dashboards.Overview(backendCtx(c), ports.DashboardFilter{
		PolicyType: c.QueryParam("policyType"),
		Search:     c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
