package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

const highRiskThreshold = 70

// DashboardService assembles the admin dashboard from backend records. All
// aggregation and filtering happens console-side; the backend only serves
// flat record lists.
type DashboardService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDashboardService(backend ports.RetentionBackend, logger zerolog.Logger) *DashboardService {
	return &DashboardService{backend: backend, logger: logger, now: time.Now}
}

func (s *DashboardService) Overview(ctx context.Context, filter ports.DashboardFilter) (*ports.AdminOverview, error) {
	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, err
	}
	predictions, err := s.backend.Predictions(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.backend.Reminders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.backend.Customers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overview := &ports.AdminOverview{
		PolicySummary: policySummary(policies, now),
		AlertsSummary: alertsSummary(policies, predictions, reminders, now),
		HighRisk:      highRiskRows(predictions, customers, policies, filter),
	}
	return overview, nil
}

func policySummary(policies []domain.Policy, now time.Time) ports.PolicySummary {
	var sum ports.PolicySummary
	sum.TotalPolicies = len(policies)
	for _, p := range policies {
		switch p.PolicyType {
		case domain.PolicyMotor:
			sum.MotorPolicies++
		case domain.PolicyHealth:
			sum.HealthPolicies++
		}
		if d, ok := daysUntil(p.EndDate, now); ok && d >= 0 && d <= 30 {
			sum.ExpiringSoonPolicies++
		}
	}
	return sum
}

func alertsSummary(policies []domain.Policy, predictions []domain.RenewalPrediction, reminders []domain.Reminder, now time.Time) ports.AlertsSummary {
	var alerts ports.AlertsSummary

	for _, p := range policies {
		if d, ok := daysUntil(p.EndDate, now); ok && d >= 0 && d <= 7 {
			alerts.ExpiringIn7Days++
		}
	}

	contacted := make(map[int64]bool, len(reminders))
	for _, r := range reminders {
		switch r.Status {
		case domain.ReminderSent, domain.ReminderResponded:
			contacted[r.CustomerID] = true
		case domain.ReminderFailed:
			alerts.FailedReminders++
		}
	}
	for _, pr := range predictions {
		if pr.RiskScore >= highRiskThreshold && !contacted[pr.CustomerID] {
			alerts.HighRiskPendingContact++
		}
	}
	return alerts
}

func highRiskRows(predictions []domain.RenewalPrediction, customers []domain.Customer, policies []domain.Policy, filter ports.DashboardFilter) []ports.HighRiskRow {
	customerByID := make(map[int64]domain.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.CustomerID] = c
	}
	policyByID := make(map[int64]domain.Policy, len(policies))
	for _, p := range policies {
		policyByID[p.PolicyID] = p
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	wantType := domain.PolicyType(strings.ToUpper(strings.TrimSpace(filter.PolicyType)))

	rows := make([]ports.HighRiskRow, 0)
	for _, pr := range predictions {
		if pr.RiskScore < highRiskThreshold {
			continue
		}
		cust := customerByID[pr.CustomerID]
		pol := policyByID[pr.PolicyID]

		if wantType != "" && pol.PolicyType != wantType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(cust.Name), search) {
			continue
		}

		rows = append(rows, ports.HighRiskRow{
			CustomerID:         pr.CustomerID,
			CustomerName:       cust.Name,
			PolicyID:           pr.PolicyID,
			PolicyType:         pol.PolicyType,
			RiskScore:          pr.RiskScore,
			RenewalProbability: pr.RenewalProbability * 100,
			ExpiryDate:         pol.EndDate,
		})
	}

	// Most at-risk first.
	sort.Slice(rows, func(i, j int) bool { return rows[i].RiskScore > rows[j].RiskScore })
	return rows
}

// daysUntil returns whole days from now until the yyyy-mm-dd date.
func daysUntil(date string, now time.Time) (int, bool) {
	t, ok := domain.ParseDate(date)
	if !ok {
		return 0, false
	}
	return int(t.Sub(now).Hours() / 24), true
}
