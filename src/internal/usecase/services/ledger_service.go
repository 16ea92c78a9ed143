package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/temporal-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/temporal-ledger/src/internal/adapter/script/models"
	"github.com/api-sage/temporal-ledger/src/internal/commons"
	"github.com/api-sage/temporal-ledger/src/internal/domain"
	"github.com/api-sage/temporal-ledger/src/internal/logger"
	"github.com/google/uuid"
)

// LedgerService validates, sequences and appends ledger events, and answers
// current and point-in-time balance queries. One mutex serializes every
// operation, reads included, so no caller observes a half-appended transfer.
type LedgerService struct {
	mu         sync.Mutex
	log        repo_interfaces.EventLog
	dailyLimit domain.Money
	now        func() time.Time
}

func NewLedgerService(log repo_interfaces.EventLog, dailyLimit domain.Money, clock func() time.Time) *LedgerService {
	if clock == nil {
		clock = time.Now
	}
	return &LedgerService{log: log, dailyLimit: dailyLimit, now: clock}
}

func (s *LedgerService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error) {
	logger.Info("ledger service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.CreateAccountResponse](err), err
	}

	amount, err := domain.ParseMoney(req.Amount)
	if err != nil {
		return failure[models.CreateAccountResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	effectiveAt, timestamped, err := s.effectiveTime(req.Timestamp)
	if err != nil {
		return failure[models.CreateAccountResponse](err), err
	}

	accountID := strings.TrimSpace(req.AccountID)
	known, err := s.log.Known(ctx, accountID)
	if err != nil {
		return failure[models.CreateAccountResponse](err), err
	}
	if known {
		err := domain.DuplicateAccountError{AccountID: accountID}
		logger.Error("ledger service create account duplicate id", err, logger.Fields{
			"accountId": accountID,
		})
		return failure[models.CreateAccountResponse](err), err
	}

	owner := strings.TrimSpace(req.Owner)
	event := domain.Event{
		ID:          uuid.NewString(),
		Kind:        domain.EventKindCreate,
		AccountID:   accountID,
		Owner:       owner,
		Amount:      amount,
		EffectiveAt: effectiveAt,
	}
	if err := s.log.Append(ctx, event); err != nil {
		return failure[models.CreateAccountResponse](err), err
	}

	message := fmt.Sprintf("created account %s for %s with balance %s", accountID, owner, amount)
	if timestamped {
		message = fmt.Sprintf("created account at %s for %s with balance %s at %s",
			accountID, owner, amount, commons.FormatTimestamp(effectiveAt))
	}

	return commons.SuccessResponse(message, models.CreateAccountResponse{
		AccountID: accountID,
		Owner:     owner,
		Balance:   amount.Decimal(),
		Status:    string(domain.AccountStatusActive),
		CreatedAt: commons.FormatTimestamp(effectiveAt),
	}), nil
}

func (s *LedgerService) GetBalance(ctx context.Context, req models.GetBalanceRequest) (commons.Response[models.GetBalanceResponse], error) {
	logger.Info("ledger service get balance request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.GetBalanceResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asOf, timestamped, err := s.effectiveTime(req.Timestamp)
	if err != nil {
		return failure[models.GetBalanceResponse](err), err
	}

	state, err := s.stateOf(ctx, strings.TrimSpace(req.AccountID), asOf)
	if err != nil {
		return failure[models.GetBalanceResponse](err), err
	}

	message := fmt.Sprintf("balance %s", state.Balance)
	if timestamped {
		message = fmt.Sprintf("balance at %s", state.Balance)
	}

	return commons.SuccessResponse(message, models.GetBalanceResponse{
		AccountID: state.AccountID,
		Balance:   state.Balance.Decimal(),
		AsOf:      commons.FormatTimestamp(asOf),
	}), nil
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.DepositResponse](err), err
	}

	amount, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return failure[models.DepositResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	effectiveAt, timestamped, err := s.effectiveTime(req.Timestamp)
	if err != nil {
		return failure[models.DepositResponse](err), err
	}

	accountID := strings.TrimSpace(req.AccountID)
	state, err := s.stateOf(ctx, accountID, effectiveAt)
	if err != nil {
		return failure[models.DepositResponse](err), err
	}
	if !state.Active() {
		err := domain.ErrAccountInactive
		return failure[models.DepositResponse](err), err
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		Kind:        domain.EventKindDeposit,
		AccountID:   accountID,
		Amount:      amount,
		EffectiveAt: effectiveAt,
	}
	if err := s.log.Append(ctx, event); err != nil {
		return failure[models.DepositResponse](err), err
	}

	newBalance := state.Balance.Add(amount)
	message := fmt.Sprintf("deposited %s to %s, new balance %s", amount, accountID, newBalance)
	if timestamped {
		message = fmt.Sprintf("deposited at %s to %s, new balance %s", amount, accountID, newBalance)
	}

	return commons.SuccessResponse(message, models.DepositResponse{
		AccountID:  accountID,
		Amount:     amount.Decimal(),
		NewBalance: newBalance.Decimal(),
	}), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.WithdrawResponse], error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	amount, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	effectiveAt, timestamped, err := s.effectiveTime(req.Timestamp)
	if err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	accountID := strings.TrimSpace(req.AccountID)
	events, err := s.log.EventsFor(ctx, accountID)
	if err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	state, ok := projectAccount(events, effectiveAt)
	if !ok {
		err := domain.ErrAccountNotFound
		return failure[models.WithdrawResponse](err), err
	}
	if !state.Active() {
		err := domain.ErrAccountInactive
		return failure[models.WithdrawResponse](err), err
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		Kind:        domain.EventKindWithdraw,
		AccountID:   accountID,
		Amount:      amount,
		EffectiveAt: effectiveAt,
	}
	// The balance must cover the debit at its own instant and at every
	// later one: a backdated withdrawal may not overdraw the account's
	// already-recorded future.
	if !debitKeepsBalancesNonNegative(events, event) {
		err := domain.ErrInsufficientFunds
		return failure[models.WithdrawResponse](err), err
	}
	if err := checkDailyLimit(events, amount, effectiveAt, s.dailyLimit); err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	if err := s.log.Append(ctx, event); err != nil {
		return failure[models.WithdrawResponse](err), err
	}

	newBalance, _ := state.Balance.Sub(amount)
	message := fmt.Sprintf("withdrew %s from %s, new balance %s", amount, accountID, newBalance)
	if timestamped {
		message = fmt.Sprintf("withdrew at %s from %s, new balance %s", amount, accountID, newBalance)
	}

	return commons.SuccessResponse(message, models.WithdrawResponse{
		AccountID:  accountID,
		Amount:     amount.Decimal(),
		NewBalance: newBalance.Decimal(),
	}), nil
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.TransferResponse](err), err
	}

	amount, err := parsePositiveAmount(req.Amount)
	if err != nil {
		return failure[models.TransferResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	effectiveAt, timestamped, err := s.effectiveTime(req.Timestamp)
	if err != nil {
		return failure[models.TransferResponse](err), err
	}

	sourceID := strings.TrimSpace(req.SourceID)
	destinationID := strings.TrimSpace(req.DestinationID)

	sourceEvents, err := s.log.EventsFor(ctx, sourceID)
	if err != nil {
		return failure[models.TransferResponse](err), err
	}
	source, ok := projectAccount(sourceEvents, effectiveAt)
	if !ok {
		err := domain.ErrAccountNotFound
		return failure[models.TransferResponse](err), err
	}

	destination, err := s.stateOf(ctx, destinationID, effectiveAt)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			err = domain.ErrDestinationNotFound
		}
		return failure[models.TransferResponse](err), err
	}

	if !source.Active() || !destination.Active() {
		err := domain.ErrAccountInactive
		return failure[models.TransferResponse](err), err
	}

	debit := domain.Event{
		ID:             uuid.NewString(),
		Kind:           domain.EventKindTransferOut,
		AccountID:      sourceID,
		Amount:         amount,
		CounterpartyID: destinationID,
		EffectiveAt:    effectiveAt,
	}
	// Same timeline rule as Withdraw: the source must cover the debit at
	// its instant and at every later one.
	if !debitKeepsBalancesNonNegative(sourceEvents, debit) {
		err := domain.ErrInsufficientFunds
		return failure[models.TransferResponse](err), err
	}
	if err := checkDailyLimit(sourceEvents, amount, effectiveAt, s.dailyLimit); err != nil {
		return failure[models.TransferResponse](err), err
	}

	// Debit and credit go to the log in one append; a failure leaves the
	// log untouched.
	credit := domain.Event{
		ID:             uuid.NewString(),
		Kind:           domain.EventKindTransferIn,
		AccountID:      destinationID,
		Amount:         amount,
		CounterpartyID: sourceID,
		EffectiveAt:    effectiveAt,
	}
	if err := s.log.Append(ctx, debit, credit); err != nil {
		return failure[models.TransferResponse](err), err
	}

	message := fmt.Sprintf("transferred %s from %s to %s", amount, sourceID, destinationID)
	if timestamped {
		message = fmt.Sprintf("transferred at %s from %s to %s", amount, sourceID, destinationID)
	}

	return commons.SuccessResponse(message, models.TransferResponse{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        amount.Decimal(),
	}), nil
}

func (s *LedgerService) FreezeAccount(ctx context.Context, req models.FreezeAccountRequest) (commons.Response[models.FreezeAccountResponse], error) {
	logger.Info("ledger service freeze account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.FreezeAccountResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.appendLifecycle(ctx, domain.EventKindFreeze, req.Timestamp, req.AccountID)
	return resp, err
}

func (s *LedgerService) UnfreezeAccount(ctx context.Context, req models.UnfreezeAccountRequest) (commons.Response[models.FreezeAccountResponse], error) {
	logger.Info("ledger service unfreeze account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.FreezeAccountResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.appendLifecycle(ctx, domain.EventKindUnfreeze, req.Timestamp, req.AccountID)
	return resp, err
}

// Rollback truncates the log after the cutoff instant. Accounts created
// after the cutoff become unknown again.
func (s *LedgerService) Rollback(ctx context.Context, req models.RollbackRequest) (commons.Response[models.RollbackResponse], error) {
	logger.Info("ledger service rollback request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.RollbackResponse](err), err
	}

	cutoff, err := commons.ParseTimestamp(req.Timestamp)
	if err != nil {
		return failure[models.RollbackResponse](err), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.log.TruncateAfter(ctx, cutoff)
	if err != nil {
		return failure[models.RollbackResponse](err), err
	}

	formatted := commons.FormatTimestamp(cutoff)
	return commons.SuccessResponse(fmt.Sprintf("rolled back to %s", formatted), models.RollbackResponse{
		Cutoff:  formatted,
		Removed: removed,
	}), nil
}

func (s *LedgerService) appendLifecycle(ctx context.Context, kind domain.EventKind, timestamp, rawAccountID string) (commons.Response[models.FreezeAccountResponse], error) {
	effectiveAt, timestamped, err := s.effectiveTime(timestamp)
	if err != nil {
		return failure[models.FreezeAccountResponse](err), err
	}

	accountID := strings.TrimSpace(rawAccountID)
	if _, err := s.stateOf(ctx, accountID, effectiveAt); err != nil {
		return failure[models.FreezeAccountResponse](err), err
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		AccountID:   accountID,
		EffectiveAt: effectiveAt,
	}
	if err := s.log.Append(ctx, event); err != nil {
		return failure[models.FreezeAccountResponse](err), err
	}

	verb := "froze"
	status := domain.AccountStatusFrozen
	if kind == domain.EventKindUnfreeze {
		verb = "unfroze"
		status = domain.AccountStatusActive
	}

	message := fmt.Sprintf("%s account %s", verb, accountID)
	if timestamped {
		message = fmt.Sprintf("%s account at %s", verb, accountID)
	}

	return commons.SuccessResponse(message, models.FreezeAccountResponse{
		AccountID: accountID,
		Status:    string(status),
	}), nil
}

// effectiveTime resolves an operation's instant: the parsed wire timestamp
// for the _AT variants, the engine clock otherwise.
func (s *LedgerService) effectiveTime(raw string) (time.Time, bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return s.now(), false, nil
	}
	ts, err := commons.ParseTimestamp(trimmed)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts, true, nil
}

func (s *LedgerService) stateOf(ctx context.Context, accountID string, asOf time.Time) (domain.AccountState, error) {
	events, err := s.log.EventsFor(ctx, accountID)
	if err != nil {
		return domain.AccountState{}, err
	}
	state, ok := projectAccount(events, asOf)
	if !ok {
		return domain.AccountState{}, domain.ErrAccountNotFound
	}
	return state, nil
}

func parsePositiveAmount(raw string) (domain.Money, error) {
	amount, err := domain.ParseMoney(raw)
	if err != nil {
		return domain.Money{}, err
	}
	if !amount.IsPositive() {
		return domain.Money{}, fmt.Errorf("amount must be greater than zero")
	}
	return amount, nil
}

func failure[T any](err error) commons.Response[T] {
	return commons.ErrorResponse[T](wireMessage(err), err.Error())
}

// wireMessage maps an error to its single result line. Domain errors are
// their own line; anything else is reported with an "error: " prefix,
// matching the duplicate-account wording.
func wireMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrDestinationNotFound),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrDailyLimitExceeded):
		return err.Error()
	default:
		return "error: " + err.Error()
	}
}
