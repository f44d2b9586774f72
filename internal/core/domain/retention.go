package domain

import "time"

// PolicyType enumerates the backend's insurance product categories.
type PolicyType string

const (
	PolicyHealth PolicyType = "HEALTH"
	PolicyMotor  PolicyType = "MOTOR"
	PolicyLife   PolicyType = "LIFE"
	PolicyTravel PolicyType = "TRAVEL"
)

// PolicyStatus represents the lifecycle state of a policy.
type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "ACTIVE"
	PolicyExpired   PolicyStatus = "EXPIRED"
	PolicyRenewed   PolicyStatus = "RENEWED"
	PolicyCancelled PolicyStatus = "CANCELLED"
)

// Customer is a flat customer record as served by the retention backend.
type Customer struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"contactNumber"`
	CreatedAt  string `json:"createdAt,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
}

// Policy is a flat policy record. Dates are yyyy-mm-dd strings, as the
// backend serves them; use ParseDate for arithmetic.
type Policy struct {
	PolicyID    int64        `json:"policyId"`
	CustomerID  int64        `json:"customerId"`
	PolicyType  PolicyType   `json:"policyType"`
	PolicyName  string       `json:"policyName,omitempty"`
	Premium     float64      `json:"premium,omitempty"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	RenewalDate string       `json:"renewalDate,omitempty"`
	Status      PolicyStatus `json:"status"`
}

// RenewalPrediction is one row of the risk model's output.
type RenewalPrediction struct {
	PredictionID       int64   `json:"predictionId"`
	CustomerID         int64   `json:"customerId"`
	PolicyID           int64   `json:"policyId"`
	RenewalProbability float64 `json:"renewalProbability"` // 0..1
	RiskScore          float64 `json:"riskScore"`          // 0..100
	PredictionDate     string  `json:"predictionDate"`
}

// RiskBand buckets a risk score for dashboard display.
type RiskBand string

const (
	RiskLow    RiskBand = "LOW"    // score < 40
	RiskMedium RiskBand = "MEDIUM" // 40 <= score < 70
	RiskHigh   RiskBand = "HIGH"   // score >= 70
)

// BandForScore maps a 0..100 risk score onto its band.
func BandForScore(score float64) RiskBand {
	switch {
	case score >= 70:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CampaignStatus represents the lifecycle state of a retention campaign.
type CampaignStatus string

const (
	CampaignScheduled CampaignStatus = "SCHEDULED"
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

// Campaign is a flat retention-campaign record.
type Campaign struct {
	CampaignID    int64          `json:"campaignId"`
	Name          string         `json:"name"`
	TargetSegment string         `json:"targetSegment"`
	Discount      float64        `json:"discount,omitempty"`
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate"`
	Status        CampaignStatus `json:"status"`
}

// ReminderStatus represents the delivery state of an engagement reminder.
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "SCHEDULED"
	ReminderSent      ReminderStatus = "SENT"
	ReminderResponded ReminderStatus = "RESPONDED"
	ReminderFailed    ReminderStatus = "FAILED"
)

// Reminder is a flat engagement-reminder record.
type Reminder struct {
	ReminderID int64          `json:"reminderId"`
	CustomerID int64          `json:"customerId"`
	PolicyID   int64          `json:"policyId"`
	Message    string         `json:"message"`
	SentDate   string         `json:"sentDate"`
	Status     ReminderStatus `json:"status"`
	Category   PolicyType     `json:"category,omitempty"`
	RiskScore  *float64       `json:"riskScore,omitempty"`
}

// RetentionReport is a periodic aggregate produced by the backend.
type RetentionReport struct {
	ReportID              int64   `json:"reportId"`
	RenewalRate           float64 `json:"renewalRate"`
	ChurnRate             float64 `json:"churnRate"`
	CampaignEffectiveness float64 `json:"campaignEffectiveness"`
	GeneratedDate         string  `json:"generatedDate"`
}

// ParseDate parses a backend yyyy-mm-dd date. The zero time and false are
// returned for empty or malformed values.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
