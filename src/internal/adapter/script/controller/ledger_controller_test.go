package controller

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/temporal-ledger/src/internal/domain"
	"github.com/api-sage/temporal-ledger/src/internal/usecase/services"
)

func newController() *LedgerController {
	clock := func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	service := services.NewLedgerService(memory.NewEventLog(), domain.MustParseMoney("5000.00"), clock)
	return NewLedgerController(service)
}

func TestParseLineSplitsQuotedFields(t *testing.T) {
	got := ParseLine(`CREATE_ACCOUNT ACC001 "John Doe" 1000.00`)
	want := []string{"CREATE_ACCOUNT", "ACC001", "John Doe", "1000.00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLine: got %v, want %v", got, want)
	}

	if got := ParseLine("   "); got != nil {
		t.Fatalf("ParseLine on blank input: got %v, want nil", got)
	}
}

func TestExecuteUnknownOperation(t *testing.T) {
	ctrl := newController()
	got := ctrl.Execute(context.Background(), []string{"BULK_TRANSFER", "ACC001"})
	if got != "error: unknown operation BULK_TRANSFER" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestExecuteArgumentCountMismatch(t *testing.T) {
	ctrl := newController()
	got := ctrl.Execute(context.Background(), []string{"DEPOSIT", "ACC001"})
	if got != "error: DEPOSIT expects 2 arguments, got 1" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestExecuteEmptyOperation(t *testing.T) {
	ctrl := newController()
	if got := ctrl.Execute(context.Background(), nil); got != "error: empty operation" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestExecuteAllRunsInOrder(t *testing.T) {
	ctrl := newController()
	got := ctrl.ExecuteAll(context.Background(), [][]string{
		{"CREATE_ACCOUNT", "ACC001", "John Doe", "1000.00"},
		{"GET_BALANCE", "ACC001"},
		{"GET_BALANCE", "ACC999"},
	})
	want := []string{
		"created account ACC001 for John Doe with balance $1000.00",
		"balance $1000.00",
		"account not found",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExecuteAll: got %v, want %v", got, want)
	}
}
