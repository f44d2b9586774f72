package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// AnalyticsService derives the retention metrics the analytics page renders.
// Rates come from the latest backend report; everything else is computed
// console-side from the raw record lists.
type AnalyticsService struct {
	backend ports.RetentionBackend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewAnalyticsService(backend ports.RetentionBackend, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{backend: backend, logger: logger, now: time.Now}
}

func (s *AnalyticsService) Overview(ctx context.Context) (*ports.AnalyticsOverview, error) {
	reports, err := s.backend.Reports(ctx)
	if err != nil {
		return nil, err
	}
	predictions, err := s.backend.Predictions(ctx)
	if err != nil {
		return nil, err
	}
	policies, err := s.backend.Policies(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.backend.Reminders(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	overview := &ports.AnalyticsOverview{
		PredictionsTotal: len(predictions),
	}

	latest := latestReport(reports)
	if latest != nil {
		overview.RenewalRatePct = math.Round(latest.RenewalRate)
		overview.ChurnRatePct = math.Round(latest.ChurnRate)
		overview.CampaignROIPct = math.Round(latest.CampaignEffectiveness)
	}
	overview.Months = monthLabels
	overview.RenewalRateSeries = renewalSeries(reports, latest, now)

	today := now.Format(time.DateOnly)
	var scoreSum float64
	bands := map[domain.RiskBand]int{}
	for _, pr := range predictions {
		scoreSum += pr.RiskScore
		bands[domain.BandForScore(pr.RiskScore)]++
		if pr.PredictionDate == today {
			overview.PredictionsRunToday++
		}
	}
	overview.HighRiskCustomers = bands[domain.RiskHigh]
	if len(predictions) > 0 {
		overview.AverageRiskScore = math.Round(scoreSum / float64(len(predictions)))
	}
	overview.RiskBands = []ports.BandCount{
		{Band: string(domain.RiskLow), Count: bands[domain.RiskLow]},
		{Band: string(domain.RiskMedium), Count: bands[domain.RiskMedium]},
		{Band: string(domain.RiskHigh), Count: bands[domain.RiskHigh]},
	}

	for _, p := range policies {
		if d, ok := daysUntil(p.EndDate, now); ok && d >= 0 && d <= 30 {
			overview.UpcomingExpiries30Days++
		}
	}
	overview.ChurnByPolicyType = churnByType(policies)

	if len(reminders) > 0 {
		responded := 0
		for _, r := range reminders {
			if r.Status == domain.ReminderResponded {
				responded++
			}
		}
		overview.EngagementResponsePct = math.Round(float64(responded) / float64(len(reminders)) * 100)
	}

	return overview, nil
}

var reportFilenames = map[string]string{
	"pdf":   "retention-report.pdf",
	"excel": "retention-report.xlsx",
	"csv":   "retention-report.csv",
}

// DownloadReport relays a backend-generated report file. The filename falls
// back to a format-specific default when the backend names nothing.
func (s *AnalyticsService) DownloadReport(ctx context.Context, format string) (*ports.ReportDownload, error) {
	dl, err := s.backend.DownloadReport(ctx, format)
	if err != nil {
		return nil, err
	}
	if dl.Filename == "" {
		dl.Filename = reportFilenames[format]
	}
	if dl.ContentType == "" {
		dl.ContentType = "application/octet-stream"
	}
	s.logger.Debug().Str("format", format).Int("bytes", len(dl.Body)).Msg("report download relayed")
	return dl, nil
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// renewalSeries buckets report renewal rates by generation month. A month
// with several reports keeps the last one in input order. When every bucket
// stays zero the latest report's rate lands on the current month, so the
// chart is never blank while data exists.
func renewalSeries(reports []domain.RetentionReport, latest *domain.RetentionReport, now time.Time) []float64 {
	series := make([]float64, 12)
	for _, r := range reports {
		d, err := time.Parse(time.DateOnly, r.GeneratedDate)
		if err != nil {
			continue
		}
		series[int(d.Month())-1] = math.Round(r.RenewalRate)
	}
	allZero := true
	for _, v := range series {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero && latest != nil {
		series[int(now.Month())-1] = math.Round(latest.RenewalRate)
	}
	return series
}

// latestReport picks the report with the greatest generated date. Dates are
// yyyy-mm-dd so string ordering matches chronological ordering.
func latestReport(reports []domain.RetentionReport) *domain.RetentionReport {
	var latest *domain.RetentionReport
	for i := range reports {
		if latest == nil || reports[i].GeneratedDate > latest.GeneratedDate {
			latest = &reports[i]
		}
	}
	return latest
}

// churnByType computes the expired share per policy type, for the types that
// actually appear in the data.
func churnByType(policies []domain.Policy) []ports.TypeChurn {
	totals := map[domain.PolicyType]int{}
	expired := map[domain.PolicyType]int{}
	for _, p := range policies {
		totals[p.PolicyType]++
		if p.Status == domain.PolicyExpired {
			expired[p.PolicyType]++
		}
	}

	order := []domain.PolicyType{domain.PolicyHealth, domain.PolicyMotor, domain.PolicyLife, domain.PolicyTravel}
	out := make([]ports.TypeChurn, 0, len(totals))
	for _, t := range order {
		total := totals[t]
		if total == 0 {
			continue
		}
		pct := float64(expired[t]) / float64(total) * 100
		// One decimal, enough granularity for the per-type chart.
		out = append(out, ports.TypeChurn{PolicyType: string(t), ChurnPct: math.Round(pct*10) / 10})
	}
	return out
}
