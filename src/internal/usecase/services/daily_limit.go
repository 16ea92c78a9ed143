package services

import (
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/commons"
	"github.com/api-sage/temporal-ledger/src/internal/domain"
)

// withdrawnSameDay sums the debit-kind amounts (Withdraw and the debit side
// of Transfer) that fall on the same calendar day as asOf.
func withdrawnSameDay(events []domain.Event, asOf time.Time) domain.Money {
	var total domain.Money
	for _, e := range events {
		if e.Kind.IsDebit() && commons.SameDay(e.EffectiveAt, asOf) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func checkDailyLimit(events []domain.Event, proposed domain.Money, asOf time.Time, limit domain.Money) error {
	if withdrawnSameDay(events, asOf).Add(proposed).Cmp(limit) > 0 {
		return domain.ErrDailyLimitExceeded
	}
	return nil
}
