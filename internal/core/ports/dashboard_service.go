package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// PolicySummary is the headline policy counts card on the admin dashboard.
type PolicySummary struct {
	TotalPolicies        int `json:"totalPolicies"`
	MotorPolicies        int `json:"motorPolicies"`
	HealthPolicies       int `json:"healthPolicies"`
	ExpiringSoonPolicies int `json:"expiringSoonPolicies"`
}

// AlertsSummary is the alerts card on the admin dashboard.
type AlertsSummary struct {
	ExpiringIn7Days        int `json:"expiringIn7DaysCount"`
	HighRiskPendingContact int `json:"highRiskPendingContactCount"`
	FailedReminders        int `json:"failedRemindersCount"`
}

// HighRiskRow is one row of the dashboard's high-risk customer table.
type HighRiskRow struct {
	CustomerID         int64             `json:"customerId"`
	CustomerName       string            `json:"customerName"`
	PolicyID           int64             `json:"policyId"`
	PolicyType         domain.PolicyType `json:"policyType"`
	RiskScore          float64           `json:"riskScore"`
	RenewalProbability float64           `json:"renewalProbability"` // percent 0-100
	ExpiryDate         string            `json:"expiryDate"`
}

// DashboardFilter narrows the high-risk table. Zero values mean "all".
type DashboardFilter struct {
	PolicyType string // "MOTOR", "HEALTH", "" for all
	Search     string // case-insensitive match on customer name
}

// AdminOverview bundles everything the admin dashboard page renders.
type AdminOverview struct {
	PolicySummary PolicySummary `json:"policySummary"`
	AlertsSummary AlertsSummary `json:"alertsSummary"`
	HighRisk      []HighRiskRow `json:"highRiskCustomers"`
}

// DashboardService computes the admin dashboard from backend records.
type DashboardService interface {
	Overview(ctx context.Context, filter DashboardFilter) (*AdminOverview, error)
}
