package instruction

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

func TestApplyDefaultsDebitLeadTime(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	d := &Draft{}
	ApplyDefaults(d, entity.TypeDebit, clock)
	if d.RequestedDate == nil {
		t.Fatal("requested_date not filled")
	}
	if want := now.Add(172800 * time.Second); !d.RequestedDate.Equal(want) {
		t.Fatalf("requested_date=%v want %v", d.RequestedDate, want)
	}
}

func TestApplyDefaultsCreditImmediate(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	d := &Draft{}
	ApplyDefaults(d, entity.TypeCredit, clock)
	if d.RequestedDate == nil || !d.RequestedDate.Equal(now) {
		t.Fatalf("requested_date=%v want %v", d.RequestedDate, now)
	}
}

func TestApplyDefaultsKeepsCallerDate(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	supplied := time.Unix(1800000000, 0)
	d := &Draft{RequestedDate: &supplied}
	ApplyDefaults(d, entity.TypeDebit, clock)
	if !d.RequestedDate.Equal(supplied) {
		t.Fatalf("caller-supplied requested_date was overwritten: %v", d.RequestedDate)
	}
}
