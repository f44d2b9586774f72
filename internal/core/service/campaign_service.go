package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// CampaignService lists retention campaigns with console-side status
// filtering and the headline summary card.
type CampaignService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
}

func NewCampaignService(backend ports.RetentionBackend, logger zerolog.Logger) *CampaignService {
	return &CampaignService{backend: backend, logger: logger}
}

func (s *CampaignService) List(ctx context.Context, status string) ([]domain.Campaign, *ports.CampaignSummary, error) {
	campaigns, err := s.backend.Campaigns(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary := &ports.CampaignSummary{Total: len(campaigns)}
	var discountSum float64
	var discountCount int
	for _, c := range campaigns {
		if c.Status == domain.CampaignActive {
			summary.Active++
		}
		if c.Discount > 0 {
			discountSum += c.Discount
			discountCount++
		}
	}
	if discountCount > 0 {
		summary.AvgDiscount = discountSum / float64(discountCount)
	}

	want := strings.ToUpper(strings.TrimSpace(status))
	if want == "" || want == "ALL" {
		return campaigns, summary, nil
	}

	filtered := make([]domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if string(c.Status) == want {
			filtered = append(filtered, c)
		}
	}
	return filtered, summary, nil
}
