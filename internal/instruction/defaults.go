package instruction

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

// debitLeadTime is the minimum lead time before a direct debit can be
// presented: two calendar days.
const debitLeadTime = 172800 * time.Second

// ApplyDefaults fills the requested execution date when the payload left it
// out. Debits default to the earliest presentable date, credits to immediate
// execution. The clock is read once; a caller-supplied date is never touched.
func ApplyDefaults(d *Draft, typ entity.Type, clock clockwork.Clock) {
	if d.RequestedDate != nil {
		return
	}
	now := clock.Now()
	switch typ {
	case entity.TypeDebit:
		t := now.Add(debitLeadTime)
		d.RequestedDate = &t
	default:
		d.RequestedDate = &now
	}
}
