package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/domain"
)

// EventLog is the append-only source of truth. Append takes every event of
// one operation in a single call so a transfer's debit and credit land
// together or not at all.
type EventLog interface {
	Append(ctx context.Context, events ...domain.Event) error
	EventsFor(ctx context.Context, accountID string) ([]domain.Event, error)
	EventsUpTo(ctx context.Context, asOf time.Time) ([]domain.Event, error)
	Known(ctx context.Context, accountID string) (bool, error)
	TruncateAfter(ctx context.Context, cutoff time.Time) (int, error)
}
