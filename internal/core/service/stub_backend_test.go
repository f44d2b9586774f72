package service

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// stubBackend is an in-memory ports.RetentionBackend for service tests.
// Fixed record lists are returned as-is; per-call hooks override individual
// operations when set.
type stubBackend struct {
	loginFn    func(ctx context.Context, input ports.LoginInput) (*ports.LoginResponse, error)
	profileFn  func(ctx context.Context, input ports.ProfileUpdateInput) (*ports.ProfileResponse, error)
	bulkFn     func(ctx context.Context, input ports.BulkReminderInput) ([]domain.Reminder, error)
	downloadFn func(ctx context.Context, format string) (*ports.ReportDownload, error)

	registerErr error

	customers   []domain.Customer
	policies    []domain.Policy
	predictions []domain.RenewalPrediction
	campaigns   []domain.Campaign
	reminders   []domain.Reminder
	reports     []domain.RetentionReport

	byCustomer map[int64][]domain.Reminder
}

func (b *stubBackend) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResponse, error) {
	if b.loginFn != nil {
		return b.loginFn(ctx, input)
	}
	return nil, domain.ErrInvalidCredentials
}

func (b *stubBackend) Register(context.Context, ports.RegisterInput) error {
	return b.registerErr
}

func (b *stubBackend) UpdateProfile(ctx context.Context, input ports.ProfileUpdateInput) (*ports.ProfileResponse, error) {
	if b.profileFn != nil {
		return b.profileFn(ctx, input)
	}
	return &ports.ProfileResponse{Name: input.Name, Email: input.Email}, nil
}

func (b *stubBackend) Customers(context.Context) ([]domain.Customer, error) {
	return b.customers, nil
}

func (b *stubBackend) Policies(context.Context) ([]domain.Policy, error) {
	return b.policies, nil
}

func (b *stubBackend) Predictions(context.Context) ([]domain.RenewalPrediction, error) {
	return b.predictions, nil
}

func (b *stubBackend) Campaigns(context.Context) ([]domain.Campaign, error) {
	return b.campaigns, nil
}

func (b *stubBackend) Reminders(context.Context) ([]domain.Reminder, error) {
	return b.reminders, nil
}

func (b *stubBackend) RemindersByCustomer(_ context.Context, customerID int64) ([]domain.Reminder, error) {
	return b.byCustomer[customerID], nil
}

func (b *stubBackend) BulkCreateReminders(ctx context.Context, input ports.BulkReminderInput) ([]domain.Reminder, error) {
	if b.bulkFn != nil {
		return b.bulkFn(ctx, input)
	}
	return nil, nil
}

func (b *stubBackend) Reports(context.Context) ([]domain.RetentionReport, error) {
	return b.reports, nil
}

func (b *stubBackend) DownloadReport(ctx context.Context, format string) (*ports.ReportDownload, error) {
	if b.downloadFn != nil {
		return b.downloadFn(ctx, format)
	}
	return &ports.ReportDownload{Body: []byte("report-" + format)}, nil
}
