package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/ports"
)

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview renders the analytics page metrics and chart series.
//
// @Summary      Retention analytics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ports.AnalyticsOverview
// @Router       /admin/analytics [get]
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	overview, err := h.analytics.Overview(backendCtx(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// DownloadReport streams a backend-generated report file to the browser.
//
// @Summary      Download a retention report
// @Tags         admin
// @Param        type  path  string  true  "Report format"  Enums(pdf, excel, csv)
// @Produce      octet-stream
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]string
// @Router       /admin/analytics/report/{type} [get]
func (h *AnalyticsHandler) DownloadReport(c echo.Context) error {
	format := c.Param("type")
	switch format {
	case "pdf", "excel", "csv":
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown report format")
	}

	dl, err := h.analytics.DownloadReport(backendCtx(c), format)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+dl.Filename+`"`)
	return c.Blob(http.StatusOK, dl.ContentType, dl.Body)
}
