package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// PolicyRow is a policy joined with its holder's contact details.
type PolicyRow struct {
	domain.Policy
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

// PolicyService lists policies for the admin policy pages. The selector is
// the route parameter: "all", "motor", "health", "life", "travel" or
// "expiring" (ends within 30 days).
type PolicyService interface {
	ListBySelector(ctx context.Context, selector string) ([]PolicyRow, error)
}
