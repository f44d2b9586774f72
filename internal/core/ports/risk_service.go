package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// RiskRow is a prediction enriched with customer and policy data for the
// risk management table.
type RiskRow struct {
	CustomerID         int64               `json:"customerId"`
	CustomerName       string              `json:"customerName"`
	CustomerEmail      string              `json:"customerEmail"`
	CustomerPhone      string              `json:"customerPhone"`
	PolicyID           int64               `json:"policyId"`
	PolicyType         domain.PolicyType   `json:"policyType"`
	PolicyStatus       domain.PolicyStatus `json:"policyStatus"`
	RiskScore          float64             `json:"riskScore"`
	Band               domain.RiskBand     `json:"riskBand"`
	RenewalProbability float64             `json:"renewalProbability"` // percent 0-100
	RenewalDate        string              `json:"renewalDate"`
}

// RiskSummary counts predictions per band.
type RiskSummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// RiskFilter narrows the risk table. Zero values mean "all".
type RiskFilter struct {
	Band       string // "HIGH", "MEDIUM", "LOW"
	PolicyType string // "MOTOR", "HEALTH", ...
	Search     string // case-insensitive match on customer name or email
}

// RiskService builds the risk management view from predictions, customers
// and policies.
type RiskService interface {
	List(ctx context.Context, filter RiskFilter) ([]RiskRow, *RiskSummary, error)
}
