package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// PolicyService serves the admin policy list pages, joining each policy with
// its holder's contact details. Filtering is console-side.
type PolicyService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewPolicyService(backend ports.RetentionBackend, logger zerolog.Logger) *PolicyService {
	return &PolicyService{backend: backend, logger: logger, now: time.Now}
}

func (s *PolicyService) ListBySelector(ctx context.Context, selector string) ([]ports.PolicyRow, error) {
	keep, err := policyPredicate(selector, s.now())
	if err != nil {
		return nil, err
	}

	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.backend.Customers(ctx)
	if err != nil {
		return nil, err
	}

	customerByID := make(map[int64]domain.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.CustomerID] = c
	}

	rows := make([]ports.PolicyRow, 0, len(policies))
	for _, p := range policies {
		if !keep(p) {
			continue
		}
		cust := customerByID[p.CustomerID]
		rows = append(rows, ports.PolicyRow{
			Policy:        p,
			CustomerName:  cust.Name,
			CustomerEmail: cust.Email,
			CustomerPhone: cust.Phone,
		})
	}

	// Soonest-ending first, the order the expiring view wants anyway.
	sort.Slice(rows, func(i, j int) bool { return rows[i].EndDate < rows[j].EndDate })
	return rows, nil
}

func policyPredicate(selector string, now time.Time) (func(domain.Policy) bool, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", "all":
		return func(domain.Policy) bool { return true }, nil
	case "motor":
		return byType(domain.PolicyMotor), nil
	case "health":
		return byType(domain.PolicyHealth), nil
	case "life":
		return byType(domain.PolicyLife), nil
	case "travel":
		return byType(domain.PolicyTravel), nil
	case "expiring":
		return func(p domain.Policy) bool {
			d, ok := daysUntil(p.EndDate, now)
			return ok && d >= 0 && d <= 30
		}, nil
	default:
		return nil, fmt.Errorf("unknown policy selector %q", selector)
	}
}

func byType(t domain.PolicyType) func(domain.Policy) bool {
	return func(p domain.Policy) bool { return p.PolicyType == t }
}
