package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// RiskService builds the risk management table: every prediction enriched
// with the customer's contact details and the policy it targets.
type RiskService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
}

func NewRiskService(backend ports.RetentionBackend, logger zerolog.Logger) *RiskService {
	return &RiskService{backend: backend, logger: logger}
}

func (s *RiskService) List(ctx context.Context, filter ports.RiskFilter) ([]ports.RiskRow, *ports.RiskSummary, error) {
	predictions, err := s.backend.Predictions(ctx)
	if err != nil {
		return nil, nil, err
	}
	customers, err := s.backend.Customers(ctx)
	if err != nil {
		return nil, nil, err
	}
	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, nil, err
	}

	customerByID := make(map[int64]domain.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.CustomerID] = c
	}
	policyByID := make(map[int64]domain.Policy, len(policies))
	for _, p := range policies {
		policyByID[p.PolicyID] = p
	}

	summary := &ports.RiskSummary{}
	wantBand := strings.ToUpper(strings.TrimSpace(filter.Band))
	wantType := domain.PolicyType(strings.ToUpper(strings.TrimSpace(filter.PolicyType)))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	rows := make([]ports.RiskRow, 0, len(predictions))
	for _, pr := range predictions {
		band := domain.BandForScore(pr.RiskScore)
		switch band {
		case domain.RiskHigh:
			summary.High++
		case domain.RiskMedium:
			summary.Medium++
		default:
			summary.Low++
		}

		cust := customerByID[pr.CustomerID]
		pol := policyByID[pr.PolicyID]

		if wantBand != "" && string(band) != wantBand {
			continue
		}
		if wantType != "" && pol.PolicyType != wantType {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(cust.Name), search) &&
			!strings.Contains(strings.ToLower(cust.Email), search) {
			continue
		}

		rows = append(rows, ports.RiskRow{
			CustomerID:         pr.CustomerID,
			CustomerName:       cust.Name,
			CustomerEmail:      cust.Email,
			CustomerPhone:      cust.Phone,
			PolicyID:           pr.PolicyID,
			PolicyType:         pol.PolicyType,
			PolicyStatus:       pol.Status,
			RiskScore:          pr.RiskScore,
			Band:               band,
			RenewalProbability: pr.RenewalProbability * 100,
			RenewalDate:        pol.RenewalDate,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].RiskScore > rows[j].RiskScore })
	return rows, summary, nil
}
