package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// NextRenewal is the upcoming-renewal card on the customer dashboard.
type NextRenewal struct {
	Product     string              `json:"product"`
	PolicyID    int64               `json:"policyId"`
	RenewalDate string              `json:"renewalDate"`
	Status      domain.PolicyStatus `json:"status"`
}

// Offer is a retention offer shown to the customer, derived from active
// campaigns.
type Offer struct {
	Title       string `json:"title"`
	Chip        string `json:"chip"`
	Description string `json:"description"`
	Conditions  string `json:"conditions"`
}

// CustomerDashboard bundles the customer portal's landing page.
type CustomerDashboard struct {
	NextRenewal *NextRenewal      `json:"nextRenewal,omitempty"`
	Policies    []domain.Policy   `json:"policies"`
	Reminders   []domain.Reminder `json:"reminders"`
	Offers      []Offer           `json:"offers"`
}

// CustomerPortalService builds the customer-facing views, scoped to the
// logged-in customer's own records.
type CustomerPortalService interface {
	Dashboard(ctx context.Context, customerID int64) (*CustomerDashboard, error)
}
