package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// EngagementService drives the reminder views and bulk reminder creation.
// The backend performs the actual targeting; the console validates the
// request and normalizes the category filter.
type EngagementService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
}

func NewEngagementService(backend ports.RetentionBackend, logger zerolog.Logger) *EngagementService {
	return &EngagementService{backend: backend, logger: logger}
}

func (s *EngagementService) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	return s.backend.Reminders(ctx)
}

func (s *EngagementService) RemindersByCustomer(ctx context.Context, customerID int64) ([]domain.Reminder, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("invalid customer id %d", customerID)
	}
	return s.backend.RemindersByCustomer(ctx, customerID)
}

// BulkCreate validates and forwards a bulk reminder request. Category "ANY"
// (or empty) targets every policy type; it narrows targeting only, the
// created reminders carry their policy's own category.
func (s *EngagementService) BulkCreate(ctx context.Context, input ports.BulkReminderInput) ([]domain.Reminder, error) {
	if input.RiskThreshold < 0 || input.RiskThreshold > 100 {
		return nil, fmt.Errorf("risk threshold must be between 0 and 100")
	}
	if strings.TrimSpace(input.TriggerMsg) == "" {
		return nil, fmt.Errorf("trigger message is required")
	}
	if _, ok := domain.ParseDate(input.DateSent); !ok {
		return nil, fmt.Errorf("invalid send date %q", input.DateSent)
	}

	category := strings.ToUpper(strings.TrimSpace(input.Category))
	switch category {
	case "", "ANY":
		category = "ANY"
	case string(domain.PolicyHealth), string(domain.PolicyMotor), string(domain.PolicyLife), string(domain.PolicyTravel):
	default:
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}
	input.Category = category

	created, err := s.backend.BulkCreateReminders(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Float64("risk_threshold", input.RiskThreshold).
		Str("category", category).
		Int("created", len(created)).
		Msg("bulk reminders created")
	return created, nil
}
