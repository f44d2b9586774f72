package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// CustomerPortalService builds the customer-facing dashboard, scoped to the
// logged-in customer's own policies and reminders. Offers are derived from
// currently active retention campaigns.
type CustomerPortalService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewCustomerPortalService(backend ports.RetentionBackend, logger zerolog.Logger) *CustomerPortalService {
	return &CustomerPortalService{backend: backend, logger: logger, now: time.Now}
}

func (s *CustomerPortalService) Dashboard(ctx context.Context, customerID int64) (*ports.CustomerDashboard, error) {
	if customerID <= 0 {
		return nil, domain.ErrNotAuthenticated
	}

	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.backend.RemindersByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.backend.Campaigns(ctx)
	if err != nil {
		return nil, err
	}

	own := make([]domain.Policy, 0)
	for _, p := range policies {
		if p.CustomerID == customerID {
			own = append(own, p)
		}
	}

	return &ports.CustomerDashboard{
		NextRenewal: nextRenewal(own, s.now()),
		Policies:    own,
		Reminders:   reminders,
		Offers:      offersFromCampaigns(campaigns),
	}, nil
}

// nextRenewal picks the active policy with the earliest upcoming renewal.
func nextRenewal(policies []domain.Policy, now time.Time) *ports.NextRenewal {
	var best *domain.Policy
	var bestDate time.Time
	for i := range policies {
		p := &policies[i]
		if p.Status != domain.PolicyActive {
			continue
		}
		date := p.RenewalDate
		if date == "" {
			date = p.EndDate
		}
		t, ok := domain.ParseDate(date)
		if !ok || t.Before(now) {
			continue
		}
		if best == nil || t.Before(bestDate) {
			best, bestDate = p, t
		}
	}
	if best == nil {
		return nil
	}
	date := best.RenewalDate
	if date == "" {
		date = best.EndDate
	}
	return &ports.NextRenewal{
		Product:     productName(best),
		PolicyID:    best.PolicyID,
		RenewalDate: date,
		Status:      best.Status,
	}
}

func productName(p *domain.Policy) string {
	if p.PolicyName != "" {
		return p.PolicyName
	}
	return fmt.Sprintf("%s policy", p.PolicyType)
}

func offersFromCampaigns(campaigns []domain.Campaign) []ports.Offer {
	offers := make([]ports.Offer, 0, len(campaigns))
	for _, c := range campaigns {
		if c.Status != domain.CampaignActive {
			continue
		}
		chip := "Special offer"
		if c.Discount > 0 {
			chip = fmt.Sprintf("Save %.0f%%", c.Discount)
		}
		offers = append(offers, ports.Offer{
			Title:       c.Name,
			Chip:        chip,
			Description: fmt.Sprintf("Retention offer for %s customers.", c.TargetSegment),
			Conditions:  fmt.Sprintf("Valid %s to %s.", c.StartDate, c.EndDate),
		})
	}
	return offers
}
