package services

import (
	"sort"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/domain"
)

// projectAccount folds an account's events into its state at asOf. Events
// are replayed in (EffectiveAt, Sequence) order so equal timestamps resolve
// by log position. The fold is pure: running it twice over the same events
// yields the same state.
//
// The second return is false when the account has no state at asOf, i.e.
// no event qualifies or the earliest qualifying event is not a Create. A
// log whose replay would drive the balance negative also yields false;
// debits are validated against the whole timeline before they are
// appended, so that cannot happen through the service.
func projectAccount(events []domain.Event, asOf time.Time) (domain.AccountState, bool) {
	applicable := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !e.EffectiveAt.After(asOf) {
			applicable = append(applicable, e)
		}
	}
	if len(applicable) == 0 {
		return domain.AccountState{}, false
	}

	sortByEffectiveTime(applicable)

	if applicable[0].Kind != domain.EventKindCreate {
		return domain.AccountState{}, false
	}

	var state domain.AccountState
	for _, e := range applicable {
		switch e.Kind {
		case domain.EventKindCreate:
			state = domain.AccountState{
				AccountID: e.AccountID,
				Owner:     e.Owner,
				Balance:   e.Amount,
				Status:    domain.AccountStatusActive,
				CreatedAt: e.EffectiveAt,
			}
		case domain.EventKindDeposit, domain.EventKindTransferIn:
			state.Balance = state.Balance.Add(e.Amount)
		case domain.EventKindWithdraw, domain.EventKindTransferOut:
			next, err := state.Balance.Sub(e.Amount)
			if err != nil {
				return domain.AccountState{}, false
			}
			state.Balance = next
		case domain.EventKindFreeze:
			state.Status = domain.AccountStatusFrozen
		case domain.EventKindUnfreeze:
			state.Status = domain.AccountStatusActive
		}
	}

	return state, true
}

// debitKeepsBalancesNonNegative replays the account's whole timeline with
// the candidate debit inserted at its effective time and reports whether
// every projection from that instant on stays at or above zero. A debit
// that only fits the balance at its own instant can still overdraw a later
// one when it is backdated between existing events.
func debitKeepsBalancesNonNegative(events []domain.Event, candidate domain.Event) bool {
	all := make([]domain.Event, 0, len(events)+1)
	all = append(all, events...)
	candidate.Sequence = maxSequence(events) + 1
	all = append(all, candidate)

	sortByEffectiveTime(all)

	var balance domain.Money
	for _, e := range all {
		switch e.Kind {
		case domain.EventKindCreate:
			balance = e.Amount
		case domain.EventKindDeposit, domain.EventKindTransferIn:
			balance = balance.Add(e.Amount)
		case domain.EventKindWithdraw, domain.EventKindTransferOut:
			next, err := balance.Sub(e.Amount)
			if err != nil {
				return false
			}
			balance = next
		}
	}

	return true
}

func sortByEffectiveTime(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].EffectiveAt.Equal(events[j].EffectiveAt) {
			return events[i].Sequence < events[j].Sequence
		}
		return events[i].EffectiveAt.Before(events[j].EffectiveAt)
	})
}

func maxSequence(events []domain.Event) uint64 {
	var max uint64
	for _, e := range events {
		if e.Sequence > max {
			max = e.Sequence
		}
	}
	return max
}
