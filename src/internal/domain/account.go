package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
)

// AccountState is the materialized view of one account at some instant,
// derived by folding the account's events. It is never stored.
type AccountState struct {
	AccountID string
	Owner     string
	Balance   Money
	Status    AccountStatus
	CreatedAt time.Time
}

func (s AccountState) Active() bool {
	return s.Status == AccountStatusActive
}
