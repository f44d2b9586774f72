package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// EngagementService surfaces reminder activity and drives bulk reminder
// creation for at-risk customers.
type EngagementService interface {
	Reminders(ctx context.Context) ([]domain.Reminder, error)
	RemindersByCustomer(ctx context.Context, customerID int64) ([]domain.Reminder, error)
	// BulkCreate targets every customer whose latest prediction meets the
	// risk threshold, optionally narrowed by policy category, and returns
	// the reminders the backend created.
	BulkCreate(ctx context.Context, input BulkReminderInput) ([]domain.Reminder, error)
}
