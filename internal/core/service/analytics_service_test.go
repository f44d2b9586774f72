package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

func TestAnalyticsService_Overview(t *testing.T) {
	backend := retentionFixture()
	backend.reports = []domain.RetentionReport{
		{ReportID: 1, RenewalRate: 78, ChurnRate: 22, CampaignEffectiveness: 12.4, GeneratedDate: "2026-05-01"},
		{ReportID: 2, RenewalRate: 81, ChurnRate: 19, CampaignEffectiveness: 14.6, GeneratedDate: "2026-05-28"},
	}
	svc := NewAnalyticsService(backend, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	// Rates come from the most recent report.
	if overview.RenewalRatePct != 81 || overview.ChurnRatePct != 19 {
		t.Fatalf("rates should come from the latest report: %+v", overview)
	}
	if overview.CampaignROIPct != 15 {
		t.Fatalf("campaign effectiveness should be rounded, got %v", overview.CampaignROIPct)
	}

	// Both reports were generated in May; the later one wins the bucket.
	if len(overview.Months) != 12 || overview.Months[4] != "May" {
		t.Fatalf("month labels: %v", overview.Months)
	}
	if len(overview.RenewalRateSeries) != 12 {
		t.Fatalf("series length: %d", len(overview.RenewalRateSeries))
	}
	for i, v := range overview.RenewalRateSeries {
		want := float64(0)
		if i == 4 {
			want = 81
		}
		if v != want {
			t.Fatalf("series[%d] = %v, want %v", i, v, want)
		}
	}

	if overview.PredictionsTotal != 3 {
		t.Fatalf("predictions total: %d", overview.PredictionsTotal)
	}
	if overview.PredictionsRunToday != 1 {
		t.Fatalf("predictions run today: %d", overview.PredictionsRunToday)
	}
	if overview.HighRiskCustomers != 2 {
		t.Fatalf("high risk customers: %d", overview.HighRiskCustomers)
	}
	// (85 + 55 + 72) / 3 rounds to 71.
	if overview.AverageRiskScore != 71 {
		t.Fatalf("average risk score: %v", overview.AverageRiskScore)
	}
	if overview.UpcomingExpiries30Days != 2 {
		t.Fatalf("upcoming expiries: %d", overview.UpcomingExpiries30Days)
	}

	wantBands := map[string]int{"LOW": 0, "MEDIUM": 1, "HIGH": 2}
	for _, b := range overview.RiskBands {
		if wantBands[b.Band] != b.Count {
			t.Fatalf("band %s: got %d, want %d", b.Band, b.Count, wantBands[b.Band])
		}
	}

	// One of the two reminders has responded status in this variant.
	backend.reminders[0].Status = domain.ReminderResponded
	overview, err = svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.EngagementResponsePct != 50 {
		t.Fatalf("engagement response rate: %v", overview.EngagementResponsePct)
	}
}

func TestAnalyticsService_Overview_ChurnByType(t *testing.T) {
	backend := &stubBackend{
		policies: []domain.Policy{
			{PolicyID: 1, PolicyType: domain.PolicyMotor, Status: domain.PolicyExpired},
			{PolicyID: 2, PolicyType: domain.PolicyMotor, Status: domain.PolicyActive},
			{PolicyID: 3, PolicyType: domain.PolicyHealth, Status: domain.PolicyActive},
		},
	}
	svc := NewAnalyticsService(backend, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(overview.ChurnByPolicyType) != 2 {
		t.Fatalf("only types present in the data should appear: %+v", overview.ChurnByPolicyType)
	}
	for _, tc := range overview.ChurnByPolicyType {
		switch tc.PolicyType {
		case "MOTOR":
			if tc.ChurnPct != 50 {
				t.Fatalf("motor churn: %v", tc.ChurnPct)
			}
		case "HEALTH":
			if tc.ChurnPct != 0 {
				t.Fatalf("health churn: %v", tc.ChurnPct)
			}
		default:
			t.Fatalf("unexpected type %s", tc.PolicyType)
		}
	}
}

func TestAnalyticsService_Overview_RatesRounded(t *testing.T) {
	backend := &stubBackend{reports: []domain.RetentionReport{
		{ReportID: 1, RenewalRate: 80.6, ChurnRate: 19.4, GeneratedDate: "2026-05-28"},
	}}
	svc := NewAnalyticsService(backend, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.RenewalRatePct != 81 {
		t.Fatalf("renewal rate should round to 81, got %v", overview.RenewalRatePct)
	}
	if overview.ChurnRatePct != 19 {
		t.Fatalf("churn rate should round to 19, got %v", overview.ChurnRatePct)
	}
}

func TestAnalyticsService_Overview_ChurnByTypeKeepsOneDecimal(t *testing.T) {
	backend := &stubBackend{
		policies: []domain.Policy{
			{PolicyID: 1, PolicyType: domain.PolicyMotor, Status: domain.PolicyExpired},
			{PolicyID: 2, PolicyType: domain.PolicyMotor, Status: domain.PolicyActive},
			{PolicyID: 3, PolicyType: domain.PolicyMotor, Status: domain.PolicyActive},
		},
	}
	svc := NewAnalyticsService(backend, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	// 1 of 3 expired is 33.333..., kept at one decimal.
	if got := overview.ChurnByPolicyType[0].ChurnPct; got != 33.3 {
		t.Fatalf("motor churn: %v, want 33.3", got)
	}
}

func TestAnalyticsService_Overview_SeriesFallsBackToCurrentMonth(t *testing.T) {
	backend := &stubBackend{reports: []domain.RetentionReport{
		{ReportID: 1, RenewalRate: 77.6, GeneratedDate: "not-a-date"},
	}}
	svc := NewAnalyticsService(backend, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	// fixedNow is June; an otherwise empty series carries the latest rate
	// on the current month.
	for i, v := range overview.RenewalRateSeries {
		want := float64(0)
		if i == 5 {
			want = 78
		}
		if v != want {
			t.Fatalf("series[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestAnalyticsService_DownloadReport_Defaults(t *testing.T) {
	backend := &stubBackend{downloadFn: func(_ context.Context, format string) (*ports.ReportDownload, error) {
		return &ports.ReportDownload{Body: []byte("%PDF-1.7")}, nil
	}}
	svc := NewAnalyticsService(backend, zerolog.Nop())

	dl, err := svc.DownloadReport(context.Background(), "pdf")
	if err != nil {
		t.Fatalf("DownloadReport: %v", err)
	}
	if dl.Filename != "retention-report.pdf" {
		t.Fatalf("fallback filename: %q", dl.Filename)
	}
	if dl.ContentType != "application/octet-stream" {
		t.Fatalf("fallback content type: %q", dl.ContentType)
	}
	if string(dl.Body) != "%PDF-1.7" {
		t.Fatalf("body should pass through unchanged: %q", dl.Body)
	}
}

func TestAnalyticsService_DownloadReport_KeepsBackendMetadata(t *testing.T) {
	backend := &stubBackend{downloadFn: func(context.Context, string) (*ports.ReportDownload, error) {
		return &ports.ReportDownload{ContentType: "text/csv", Filename: "may.csv", Body: []byte("a,b")}, nil
	}}
	svc := NewAnalyticsService(backend, zerolog.Nop())

	dl, err := svc.DownloadReport(context.Background(), "csv")
	if err != nil {
		t.Fatalf("DownloadReport: %v", err)
	}
	if dl.ContentType != "text/csv" || dl.Filename != "may.csv" {
		t.Fatalf("backend metadata should win: %+v", dl)
	}
}

func TestAnalyticsService_Overview_EmptyData(t *testing.T) {
	svc := NewAnalyticsService(&stubBackend{}, zerolog.Nop())
	svc.now = fixedNow

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.RenewalRatePct != 0 || overview.AverageRiskScore != 0 || overview.EngagementResponsePct != 0 {
		t.Fatalf("empty data should yield zero metrics: %+v", overview)
	}
}
