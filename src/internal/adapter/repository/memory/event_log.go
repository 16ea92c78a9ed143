package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/domain"
)

// EventLog is the in-memory event store: a single append-only slice, a
// per-account index and a uniqueness index over created account ids.
type EventLog struct {
	mu        sync.Mutex
	events    []domain.Event
	byAccount map[string][]int
	created   map[string]struct{}
	nextSeq   uint64
}

func NewEventLog() *EventLog {
	return &EventLog{
		byAccount: make(map[string][]int),
		created:   make(map[string]struct{}),
	}
}

func (l *EventLog) Append(_ context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	for _, e := range events {
		if e.AccountID == "" {
			return fmt.Errorf("event is missing an account id")
		}
		if e.Kind == "" {
			return fmt.Errorf("event is missing a kind")
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range events {
		l.nextSeq++
		e.Sequence = l.nextSeq
		l.byAccount[e.AccountID] = append(l.byAccount[e.AccountID], len(l.events))
		l.events = append(l.events, e)
		if e.Kind == domain.EventKindCreate {
			l.created[e.AccountID] = struct{}{}
		}
	}

	return nil
}

func (l *EventLog) EventsFor(_ context.Context, accountID string) ([]domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	indexes := l.byAccount[accountID]
	out := make([]domain.Event, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, l.events[i])
	}
	return out, nil
}

func (l *EventLog) EventsUpTo(_ context.Context, asOf time.Time) ([]domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Event, 0, len(l.events))
	for _, e := range l.events {
		if !e.EffectiveAt.After(asOf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *EventLog) Known(_ context.Context, accountID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.created[accountID]
	return ok, nil
}

// TruncateAfter drops every event with an effective time strictly after the
// cutoff and rebuilds both indexes. An account whose Create event is dropped
// becomes unknown again.
func (l *EventLog) TruncateAfter(_ context.Context, cutoff time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := make([]domain.Event, 0, len(l.events))
	for _, e := range l.events {
		if !e.EffectiveAt.After(cutoff) {
			kept = append(kept, e)
		}
	}

	removed := len(l.events) - len(kept)
	l.events = kept
	l.byAccount = make(map[string][]int)
	l.created = make(map[string]struct{})
	for i, e := range l.events {
		l.byAccount[e.AccountID] = append(l.byAccount[e.AccountID], i)
		if e.Kind == domain.EventKindCreate {
			l.created[e.AccountID] = struct{}{}
		}
	}

	return removed, nil
}
