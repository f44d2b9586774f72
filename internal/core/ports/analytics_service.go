package ports

import "context"

// TypeChurn is the churn percentage for one policy type.
type TypeChurn struct {
	PolicyType string  `json:"policyType"`
	ChurnPct   float64 `json:"churnPct"`
}

// BandCount is the number of predictions in one risk band.
type BandCount struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// AnalyticsOverview bundles the derived metrics and chart series the
// analytics page renders. Months and RenewalRateSeries form the per-month
// renewal chart; the series is keyed by report month, with the current month
// carrying the latest report's rate when no report dates parse.
type AnalyticsOverview struct {
	RenewalRatePct         float64     `json:"renewalRatePct"`
	ChurnRatePct           float64     `json:"churnRatePct"`
	HighRiskCustomers      int         `json:"highRiskCustomers"`
	PredictionsRunToday    int         `json:"predictionsRunToday"`
	PredictionsTotal       int         `json:"predictionsTotal"`
	EngagementResponsePct  float64     `json:"engagementResponseRatePct"`
	CampaignROIPct         float64     `json:"campaignRoiPct"`
	UpcomingExpiries30Days int         `json:"upcomingExpiries30Days"`
	AverageRiskScore       float64     `json:"averageRiskScore"`
	Months                 []string    `json:"months"`
	RenewalRateSeries      []float64   `json:"renewalRateSeries"`
	ChurnByPolicyType      []TypeChurn `json:"churnByPolicyType"`
	RiskBands              []BandCount `json:"riskBands"`
}

// ReportDownload is a backend-generated report file relayed to the browser
// as-is.
type ReportDownload struct {
	ContentType string
	Filename    string
	Body        []byte
}

// AnalyticsService derives retention metrics from backend reports,
// predictions, policies, campaigns and reminders, and relays report file
// downloads.
type AnalyticsService interface {
	Overview(ctx context.Context) (*AnalyticsOverview, error)
	DownloadReport(ctx context.Context, format string) (*ReportDownload, error)
}
