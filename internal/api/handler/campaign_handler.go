package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

type CampaignHandler struct {
	campaigns ports.CampaignService
}

func NewCampaignHandler(campaigns ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

type campaignsResponse struct {
	Campaigns []domain.Campaign      `json:"campaigns"`
	Summary   *ports.CampaignSummary `json:"summary"`
}

// List renders the campaigns page, optionally filtered by status.
//
// @Summary      Campaign list
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "Status filter (ACTIVE, SCHEDULED, COMPLETED, CANCELLED)"
// @Success      200  {object}  campaignsResponse
// @Router       /admin/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, summary, err := h.campaigns.List(backendCtx(c), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaignsResponse{Campaigns: campaigns, Summary: summary})
}
