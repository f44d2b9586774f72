package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// LoginInput carries the credentials forwarded to the backend login endpoint.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResponse is the backend's answer to a successful login. Role and
// UserID duplicate claims already encoded in Token; they serve as a fallback
// when claim decoding yields nothing.
type LoginResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
}

// RegisterInput carries a new account registration.
type RegisterInput struct {
	FullName      string
	Email         string
	Password      string
	ContactNumber string
}

// ProfileUpdateInput carries the fields sent to the profile endpoint.
type ProfileUpdateInput struct {
	Name  string
	Email string
}

// ProfileResponse is the backend-confirmed state of the profile after an
// update.
type ProfileResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// BulkReminderInput targets reminder creation at every customer whose latest
// risk score meets the threshold. Category narrows targeting to one policy
// type; it filters, it is not stored on the created reminders.
type BulkReminderInput struct {
	RiskThreshold float64 `json:"riskThreshold"`
	DateSent      string  `json:"dateSent"`
	TriggerMsg    string  `json:"triggerMsg"`
	Category      string  `json:"category"`
}

// RetentionBackend is the REST gateway to the insurance-retention platform.
// Authenticated calls read the console session id from the request context so
// the transport can attach the right bearer credential.
type RetentionBackend interface {
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
	Register(ctx context.Context, input RegisterInput) error
	UpdateProfile(ctx context.Context, input ProfileUpdateInput) (*ProfileResponse, error)

	Customers(ctx context.Context) ([]domain.Customer, error)
	Policies(ctx context.Context) ([]domain.Policy, error)
	Predictions(ctx context.Context) ([]domain.RenewalPrediction, error)
	Campaigns(ctx context.Context) ([]domain.Campaign, error)
	Reminders(ctx context.Context) ([]domain.Reminder, error)
	RemindersByCustomer(ctx context.Context, customerID int64) ([]domain.Reminder, error)
	BulkCreateReminders(ctx context.Context, input BulkReminderInput) ([]domain.Reminder, error)
	Reports(ctx context.Context) ([]domain.RetentionReport, error)
	DownloadReport(ctx context.Context, format string) (*ReportDownload, error)
}
