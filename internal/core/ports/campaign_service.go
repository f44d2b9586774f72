package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// CampaignSummary is the headline card on the campaigns page.
type CampaignSummary struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	AvgDiscount float64 `json:"avgDiscount"`
}

// CampaignService lists retention campaigns with client-side status
// filtering.
type CampaignService interface {
	List(ctx context.Context, status string) ([]domain.Campaign, *CampaignSummary, error)
}
