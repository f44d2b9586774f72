package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
)

func TestPolicyService_ListBySelector_All(t *testing.T) {
	svc := NewPolicyService(retentionFixture(), zerolog.Nop())
	svc.now = fixedNow

	rows, err := svc.ListBySelector(context.Background(), "all")
	if err != nil {
		t.Fatalf("ListBySelector: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected all policies, got %d", len(rows))
	}
	// Soonest-ending first.
	if rows[0].EndDate > rows[1].EndDate || rows[1].EndDate > rows[2].EndDate {
		t.Fatalf("rows not sorted by end date: %+v", rows)
	}
	// Holder details are joined in.
	for _, r := range rows {
		if r.CustomerName == "" || r.CustomerEmail == "" {
			t.Fatalf("missing holder details: %+v", r)
		}
	}
}

func TestPolicyService_ListBySelector_ByType(t *testing.T) {
	svc := NewPolicyService(retentionFixture(), zerolog.Nop())
	svc.now = fixedNow

	rows, err := svc.ListBySelector(context.Background(), "motor")
	if err != nil {
		t.Fatalf("ListBySelector: %v", err)
	}
	if len(rows) != 1 || rows[0].PolicyType != domain.PolicyMotor {
		t.Fatalf("type selector failed: %+v", rows)
	}
}

func TestPolicyService_ListBySelector_Expiring(t *testing.T) {
	svc := NewPolicyService(retentionFixture(), zerolog.Nop())
	svc.now = fixedNow

	rows, err := svc.ListBySelector(context.Background(), "expiring")
	if err != nil {
		t.Fatalf("ListBySelector: %v", err)
	}
	// The expired January policy is in the past, not "expiring".
	if len(rows) != 2 {
		t.Fatalf("expected 2 expiring policies, got %d", len(rows))
	}
	for _, r := range rows {
		if r.EndDate < "2026-06-01" {
			t.Fatalf("past policy leaked into expiring view: %+v", r)
		}
	}
}

func TestPolicyService_ListBySelector_Unknown(t *testing.T) {
	svc := NewPolicyService(retentionFixture(), zerolog.Nop())
	svc.now = fixedNow

	if _, err := svc.ListBySelector(context.Background(), "boat"); err == nil {
		t.Fatalf("expected error for unknown selector")
	}
}
