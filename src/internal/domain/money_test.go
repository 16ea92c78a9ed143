package domain

import "testing"

func TestParseMoneyRendersTwoDecimals(t *testing.T) {
	cases := map[string]string{
		"1000.00": "$1000.00",
		"0.01":    "$0.01",
		"5000":    "$5000.00",
		"12.5":    "$12.50",
		"0":       "$0.00",
	}

	for input, want := range cases {
		m, err := ParseMoney(input)
		if err != nil {
			t.Fatalf("ParseMoney(%q): unexpected error %v", input, err)
		}
		if got := m.String(); got != want {
			t.Fatalf("ParseMoney(%q).String() = %q, want %q", input, got, want)
		}
	}
}

func TestParseMoneyRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "  ", "-5.00", "1.234", "abc", "10,00", "0.001"} {
		if _, err := ParseMoney(input); err == nil {
			t.Fatalf("ParseMoney(%q): expected error", input)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustParseMoney("10.00")
	b := MustParseMoney("2.50")

	if got := a.Add(b).String(); got != "$12.50" {
		t.Fatalf("Add: got %q, want $12.50", got)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: unexpected error %v", err)
	}
	if got := diff.String(); got != "$7.50" {
		t.Fatalf("Sub: got %q, want $7.50", got)
	}

	if _, err := b.Sub(a); err == nil {
		t.Fatal("Sub below zero: expected error")
	}

	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Fatal("Cmp: unexpected ordering")
	}
	if !MustParseMoney("0.00").IsZero() {
		t.Fatal("IsZero: expected true for 0.00")
	}
	if !b.IsPositive() || MustParseMoney("0").IsPositive() {
		t.Fatal("IsPositive: unexpected result")
	}
}

func TestEventKindIsDebit(t *testing.T) {
	debits := map[EventKind]bool{
		EventKindWithdraw:    true,
		EventKindTransferOut: true,
		EventKindCreate:      false,
		EventKindDeposit:     false,
		EventKindTransferIn:  false,
		EventKindFreeze:      false,
		EventKindUnfreeze:    false,
	}
	for kind, want := range debits {
		if kind.IsDebit() != want {
			t.Fatalf("%s.IsDebit() = %v, want %v", kind, !want, want)
		}
	}
}
