package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/ports"
)

type PolicyHandler struct {
	policies ports.PolicyService
}

func NewPolicyHandler(policies ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

type policyPageResponse struct {
	Selector string            `json:"selector"`
	Policies []ports.PolicyRow `json:"policies"`
	Meta     pageMeta          `json:"meta"`
}

// List renders one of the admin policy pages. The :type route parameter
// selects the view: all, motor, health, life, travel or expiring.
//
// @Summary      Policy list by category
// @Tags         admin
// @Produce      json
// @Param        type  path   string  true   "all, motor, health, life, travel or expiring"
// @Param        page  query  int     false  "Page number, 1-based"
// @Success      200  {object}  policyPageResponse
// @Failure      404  {object}  echo.HTTPError
// @Router       /admin/policies/{type} [get]
func (h *PolicyHandler) List(c echo.Context) error {
	selector := c.Param("type")
	switch selector {
	case "all", "motor", "health", "life", "travel", "expiring":
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown policy view")
	}

	rows, err := h.policies.ListBySelector(backendCtx(c), selector)
	if err != nil {
		return err
	}

	page := parsePageParam(c)
	lo, hi, meta := paginate(len(rows), page, defaultPerPage)
	return c.JSON(http.StatusOK, policyPageResponse{
		Selector: selector,
		Policies: rows[lo:hi],
		Meta:     meta,
	})
}
