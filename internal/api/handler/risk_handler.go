package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/ports"
)

type RiskHandler struct {
	risks ports.RiskService
}

func NewRiskHandler(risks ports.RiskService) *RiskHandler {
	return &RiskHandler{risks: risks}
}

type riskPageResponse struct {
	Rows    []ports.RiskRow    `json:"rows"`
	Summary *ports.RiskSummary `json:"summary"`
	Meta    pageMeta           `json:"meta"`
}

// List renders the risk management table: predictions enriched with
// customer and policy data, filtered by band/type/search and paginated.
//
// @Summary      Risk management table
// @Tags         admin
// @Produce      json
// @Param        band        query  string  false  "Risk band (HIGH, MEDIUM, LOW)"
// @Param        policyType  query  string  false  "Policy type filter"
// @Param        q           query  string  false  "Customer name or email search"
// @Param        page        query  int     false  "Page number"
// @Success      200  {object}  riskPageResponse
// @Router       /admin/risk [get]
func (h *RiskHandler) List(c echo.Context) error {
	rows, summary, err := h.risks.List(backendCtx(c), ports.RiskFilter{
		Band:       c.QueryParam("band"),
		PolicyType: c.QueryParam("policyType"),
		Search:     c.QueryParam("q"),
	})
	if err != nil {
		return err
	}

	lo, hi, meta := paginate(len(rows), parsePageParam(c), defaultPerPage)
	return c.JSON(http.StatusOK, riskPageResponse{
		Rows:    rows[lo:hi],
		Summary: summary,
		Meta:    meta,
	})
}
