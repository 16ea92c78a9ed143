package domain

import "time"

type EventKind string

const (
	EventKindCreate      EventKind = "CREATE"
	EventKindDeposit     EventKind = "DEPOSIT"
	EventKindWithdraw    EventKind = "WITHDRAW"
	EventKindTransferOut EventKind = "TRANSFER_OUT"
	EventKindTransferIn  EventKind = "TRANSFER_IN"
	EventKindFreeze      EventKind = "FREEZE"
	EventKindUnfreeze    EventKind = "UNFREEZE"
)

// IsDebit reports whether the kind removes funds from its account and
// therefore counts toward the daily withdrawal ceiling.
func (k EventKind) IsDebit() bool {
	return k == EventKindWithdraw || k == EventKindTransferOut
}

// Event is a write-once record in the ledger. Sequence is the log position
// assigned on append and breaks ties between equal effective times.
type Event struct {
	ID             string
	Kind           EventKind
	AccountID      string
	Owner          string
	Amount         Money
	CounterpartyID string
	EffectiveAt    time.Time
	Sequence       uint64
}
