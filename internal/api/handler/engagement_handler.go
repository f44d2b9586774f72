package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

type EngagementHandler struct {
	engagement ports.EngagementService
}

func NewEngagementHandler(engagement ports.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

type bulkReminderRequest struct {
	RiskThreshold float64 `json:"riskThreshold" validate:"gte=0,lte=100"`
	DateSent      string  `json:"dateSent" validate:"required"`
	TriggerMsg    string  `json:"triggerMsg" validate:"required"`
	Category      string  `json:"category"`
}

type remindersResponse struct {
	Reminders []domain.Reminder `json:"reminders"`
	Meta      pageMeta          `json:"meta"`
}

// List renders the engagement page's reminder table.
//
// @Summary      Reminder list
// @Tags         admin
// @Produce      json
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  remindersResponse
// @Router       /admin/engage [get]
func (h *EngagementHandler) List(c echo.Context) error {
	reminders, err := h.engagement.Reminders(backendCtx(c))
	if err != nil {
		return err
	}
	lo, hi, meta := paginate(len(reminders), parsePageParam(c), defaultPerPage)
	return c.JSON(http.StatusOK, remindersResponse{Reminders: reminders[lo:hi], Meta: meta})
}

// ByCustomer lists one customer's reminder history.
//
// @Summary      Reminders for one customer
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Customer id"
// @Success      200  {array}  domain.Reminder
// @Router       /admin/engage/customer/{id} [get]
func (h *EngagementHandler) ByCustomer(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	reminders, err := h.engagement.RemindersByCustomer(backendCtx(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminders)
}

// BulkCreate targets reminders at every customer at or above a risk
// threshold, optionally narrowed to one policy category.
//
// @Summary      Bulk-create reminders
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      bulkReminderRequest  true  "Targeting parameters"
// @Success      201   {array}   domain.Reminder
// @Failure      400   {object}  map[string]string
// @Router       /admin/engage/bulk [post]
func (h *EngagementHandler) BulkCreate(c echo.Context) error {
	var req bulkReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.engagement.BulkCreate(backendCtx(c), ports.BulkReminderInput{
		RiskThreshold: req.RiskThreshold,
		DateSent:      req.DateSent,
		TriggerMsg:    req.TriggerMsg,
		Category:      req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
