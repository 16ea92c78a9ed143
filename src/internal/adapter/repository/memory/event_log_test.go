package memory

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/domain"
)

func mkTime(hour int) time.Time {
	return time.Date(2024, 1, 15, hour, 0, 0, 0, time.UTC)
}

func TestEventLogAppendAssignsIncreasingSequences(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	if err := log.Append(ctx, domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC001", EffectiveAt: mkTime(9)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := log.Append(ctx,
		domain.Event{Kind: domain.EventKindTransferOut, AccountID: "ACC001", EffectiveAt: mkTime(10)},
		domain.Event{Kind: domain.EventKindTransferIn, AccountID: "ACC002", EffectiveAt: mkTime(10)},
	); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := log.EventsFor(ctx, "ACC001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for ACC001, got %d", len(events))
	}
	if events[0].Sequence != 1 || events[1].Sequence != 2 {
		t.Fatalf("expected sequences 1 and 2, got %d and %d", events[0].Sequence, events[1].Sequence)
	}

	others, _ := log.EventsFor(ctx, "ACC002")
	if len(others) != 1 || others[0].Sequence != 3 {
		t.Fatalf("expected ACC002 to hold sequence 3, got %+v", others)
	}
}

func TestEventLogAppendRejectsMalformedEvents(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	if err := log.Append(ctx, domain.Event{Kind: domain.EventKindCreate}); err == nil {
		t.Fatal("expected error for event without account id")
	}
	if err := log.Append(ctx, domain.Event{AccountID: "ACC001"}); err == nil {
		t.Fatal("expected error for event without kind")
	}

	events, _ := log.EventsFor(ctx, "ACC001")
	if len(events) != 0 {
		t.Fatalf("rejected append must leave the log unchanged, found %d events", len(events))
	}
}

func TestEventLogKnownTracksCreates(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	known, _ := log.Known(ctx, "ACC001")
	if known {
		t.Fatal("empty log should not know any account")
	}

	_ = log.Append(ctx, domain.Event{Kind: domain.EventKindDeposit, AccountID: "ACC001", EffectiveAt: mkTime(9)})
	known, _ = log.Known(ctx, "ACC001")
	if known {
		t.Fatal("a non-Create event must not make an account known")
	}

	_ = log.Append(ctx, domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC001", EffectiveAt: mkTime(10)})
	known, _ = log.Known(ctx, "ACC001")
	if !known {
		t.Fatal("account should be known after its Create event")
	}
}

func TestEventLogEventsUpToFiltersInclusive(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	_ = log.Append(ctx,
		domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC001", EffectiveAt: mkTime(9)},
		domain.Event{Kind: domain.EventKindDeposit, AccountID: "ACC001", EffectiveAt: mkTime(10)},
		domain.Event{Kind: domain.EventKindWithdraw, AccountID: "ACC001", EffectiveAt: mkTime(11)},
	)

	upTo, err := log.EventsUpTo(ctx, mkTime(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upTo) != 2 {
		t.Fatalf("expected 2 events up to 10:00 inclusive, got %d", len(upTo))
	}
}

func TestEventLogTruncateAfterRebuildsIndexes(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	_ = log.Append(ctx,
		domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC001", EffectiveAt: mkTime(9)},
		domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC002", EffectiveAt: mkTime(11)},
		domain.Event{Kind: domain.EventKindDeposit, AccountID: "ACC001", EffectiveAt: mkTime(12)},
	)

	removed, err := log.TruncateAfter(ctx, mkTime(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 events removed, got %d", removed)
	}

	known, _ := log.Known(ctx, "ACC002")
	if known {
		t.Fatal("ACC002's Create was truncated, account must be unknown again")
	}
	known, _ = log.Known(ctx, "ACC001")
	if !known {
		t.Fatal("ACC001's Create predates the cutoff and must survive")
	}

	events, _ := log.EventsFor(ctx, "ACC001")
	if len(events) != 1 {
		t.Fatalf("expected 1 surviving event for ACC001, got %d", len(events))
	}
}

func TestEventLogReturnsCopies(t *testing.T) {
	log := NewEventLog()
	ctx := context.Background()

	_ = log.Append(ctx, domain.Event{Kind: domain.EventKindCreate, AccountID: "ACC001", EffectiveAt: mkTime(9)})

	first, _ := log.EventsFor(ctx, "ACC001")
	first[0].AccountID = "tampered"

	second, _ := log.EventsFor(ctx, "ACC001")
	if second[0].AccountID != "ACC001" {
		t.Fatal("mutating a returned slice must not affect the log")
	}
}
